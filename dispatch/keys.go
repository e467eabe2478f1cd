package dispatch

// Status registry keys
const (
	KeyCursesInitialized     = "curses_initialized"
	KeyTermHasXN             = "term_has_xn"
	KeyCanSetTitle           = "can_set_title"
	KeyUsePosixSpawn         = "use_posix_spawn"
	KeyReadByteLimit         = "read_byte_limit"
	KeyColorSupport          = "color_support"
	KeyEmojiWidth            = "emoji_width"
	KeyAmbiguousWidth        = "ambiguous_width"
	KeyEscapeDelayMs         = "escape_delay_ms"
	KeyAutosuggestionEnabled = "autosuggestion_enabled"
	KeyTraceEnabled          = "trace_enabled"
	KeyMidnightCommander     = "midnight_commander"
	KeyCursorSelectionMode   = "cursor_selection_mode"
	KeyHistorySession        = "history_session"
	KeyTimezone              = "timezone"
	KeyFallbackTerm          = "fallback_term"
)

// Defaults
const (
	DefaultReadByteLimit  = 100 * 1024 * 1024
	DefaultEscapeDelayMs  = 30
	DefaultHistorySession = "fish"
)

// Variables that re-run the locale initializer
var localeVariables = []string{
	"LANG", "LANGUAGE", "LC_ALL",
	"LC_COLLATE", "LC_CTYPE", "LC_MESSAGES",
	"LC_NUMERIC", "LC_TIME", "LOCPATH",
	"fish_allow_singlebyte_locale",
}

// Variables that re-run the curses initializer
var cursesVariables = []string{"TERM", "TERMINFO", "TERMINFO_DIRS"}

// Locales tried in order when the environment selects a single-byte encoding
var utf8Locales = []string{"C.UTF-8", "en_US.UTF-8", "en_GB.UTF-8", "de_DE.UTF-8", "C.utf8", "UTF-8"}

// CursorSelectionMode controls whether the character under the cursor is part of a selection
type CursorSelectionMode uint8

const (
	CursorExclusive CursorSelectionMode = iota
	CursorInclusive
)

func (m CursorSelectionMode) String() string {
	if m == CursorInclusive {
		return "inclusive"
	}
	return "exclusive"
}
