package dispatch

import (
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/lixenwraith/shellcore/config"
	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/locale"
	"github.com/lixenwraith/shellcore/logging"
	"github.com/lixenwraith/shellcore/status"
	"github.com/lixenwraith/shellcore/terminal"
)

// Options configures a Dispatcher. Zero values select the process-wide defaults
type Options struct {
	Store        *terminal.Store      // terminal.Term() when nil
	Locale       locale.System        // locale.NewProcess() when nil
	Translations *locale.Translations // built from the current LC_MESSAGES when nil
	Registry     *status.Registry     // fresh registry when nil
	Hooks        Hooks
	Logger       *logging.Logger // logging.NewNop() when nil
	Config       *config.Config  // config.Default() when nil
	Patches      []Patch         // embedded patch table when nil

	// Interactive enables user-facing warnings
	Interactive bool

	// Output is the terminal the store is set up against, os.Stdout when nil
	Output *os.File

	// TTYName names the controlling terminal for the title heuristic, stdin's tty when nil
	TTYName func() (string, error)

	// GOOS gates platform patches and posix_spawn, runtime.GOOS when empty
	GOOS string
}

// Dispatcher owns the variable table of the shell and the state its handlers derive
type Dispatcher struct {
	store       *terminal.Store
	loc         locale.System
	tr          *locale.Translations
	reg         *status.Registry
	hooks       Hooks
	log         *logging.Logger
	cfg         *config.Config
	patches     []Patch
	interactive bool
	fd          int
	ttyName     func() (string, error)
	goos        string

	dbg     *zap.Logger
	termLog *zap.Logger
	locLog  *zap.Logger

	table *Table

	// Cached registry pointers
	cursesInitialized *atomic.Bool
	termHasXN         *atomic.Bool
	canSetTitle       *atomic.Bool
	usePosixSpawn     *atomic.Bool
	autosuggestion    *atomic.Bool
	trace             *atomic.Bool
	midnightCommander *atomic.Bool
	readByteLimit     *atomic.Int64
	colorSupport      *atomic.Int64
	emojiWidth        *atomic.Int64
	ambiguousWidth    *atomic.Int64
	escapeDelayMs     *atomic.Int64
	cursorMode        *status.AtomicString
	historySession    *status.AtomicString
	timezone          *status.AtomicString
	fallbackTerm      *status.AtomicString

	location  atomic.Pointer[time.Location]
	widthCond atomic.Pointer[runewidth.Condition]
}

// New creates a dispatcher and builds its variable table
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		store:       opts.Store,
		loc:         opts.Locale,
		tr:          opts.Translations,
		reg:         opts.Registry,
		hooks:       opts.Hooks,
		log:         opts.Logger,
		cfg:         opts.Config,
		patches:     opts.Patches,
		interactive: opts.Interactive,
		ttyName:     opts.TTYName,
		goos:        opts.GOOS,
	}
	if d.store == nil {
		d.store = terminal.Term()
	}
	if d.loc == nil {
		d.loc = locale.NewProcess()
	}
	if d.tr == nil {
		d.tr = locale.NewTranslations(d.loc.Query(locale.LCMessages))
	}
	if d.reg == nil {
		d.reg = status.NewRegistry()
	}
	if d.log == nil {
		d.log = logging.NewNop()
	}
	if d.cfg == nil {
		d.cfg = config.Default()
	}
	if d.patches == nil {
		d.patches = DefaultPatches()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	d.fd = int(out.Fd())
	if d.ttyName == nil {
		d.ttyName = func() (string, error) { return terminal.TTYName(int(os.Stdin.Fd())) }
	}
	if d.goos == "" {
		d.goos = runtime.GOOS
	}

	d.dbg = d.log.Category(logging.EnvDispatch)
	d.termLog = d.log.Category(logging.TermSupport)
	d.locLog = d.log.Category(logging.EnvLocale)

	d.cursesInitialized = d.reg.Bools.Get(KeyCursesInitialized)
	d.termHasXN = d.reg.Bools.Get(KeyTermHasXN)
	d.canSetTitle = d.reg.Bools.Get(KeyCanSetTitle)
	d.usePosixSpawn = d.reg.Bools.Get(KeyUsePosixSpawn)
	d.autosuggestion = d.reg.Bools.Get(KeyAutosuggestionEnabled)
	d.trace = d.reg.Bools.Get(KeyTraceEnabled)
	d.midnightCommander = d.reg.Bools.Get(KeyMidnightCommander)
	d.readByteLimit = d.reg.Ints.Get(KeyReadByteLimit)
	d.colorSupport = d.reg.Ints.Get(KeyColorSupport)
	d.emojiWidth = d.reg.Ints.Get(KeyEmojiWidth)
	d.ambiguousWidth = d.reg.Ints.Get(KeyAmbiguousWidth)
	d.escapeDelayMs = d.reg.Ints.Get(KeyEscapeDelayMs)
	d.cursorMode = d.reg.Strings.Get(KeyCursorSelectionMode)
	d.historySession = d.reg.Strings.Get(KeyHistorySession)
	d.timezone = d.reg.Strings.Get(KeyTimezone)
	d.fallbackTerm = d.reg.Strings.Get(KeyFallbackTerm)

	// Values in effect before the first handler runs
	d.readByteLimit.Store(DefaultReadByteLimit)
	d.escapeDelayMs.Store(DefaultEscapeDelayMs)
	d.emojiWidth.Store(1)
	d.ambiguousWidth.Store(1)
	d.autosuggestion.Store(true)
	d.cursorMode.Store(CursorExclusive.String())
	d.historySession.Store(DefaultHistorySession)
	d.location.Store(time.Local)
	d.timezone.Store(time.Local.String())
	d.widthCond.Store(newWidthCondition(1))

	d.table = d.buildTable()
	return d
}

func (d *Dispatcher) buildTable() *Table {
	b := NewBuilder()
	for _, name := range localeVariables {
		b.Add(name, d.handleLocaleChange)
	}
	for _, name := range cursesVariables {
		b.Add(name, d.handleCursesChange)
	}
	b.AddNamed("TZ", d.handleTimezone)
	b.Add("fish_term256", d.handleColorChange)
	b.Add("fish_term24bit", d.handleColorChange)
	b.Add("fish_escape_delay_ms", d.updateEscapeDelay)
	b.Add("fish_emoji_width", d.guessEmojiWidth)
	b.Add("fish_ambiguous_width", d.handleAmbiguousWidth)
	b.Add("LINES", d.handleTermSize)
	b.Add("COLUMNS", d.handleTermSize)
	b.Add("fish_complete_path", d.handleCompletePath)
	b.Add("fish_function_path", d.handleFunctionPath)
	b.Add("fish_read_limit", d.handleReadLimit)
	b.Add("fish_history", d.handleHistory)
	b.Add("fish_autosuggestion_enabled", d.handleAutosuggestion)
	b.Add("fish_use_posix_spawn", d.handlePosixSpawn)
	b.Add("fish_trace", d.handleTrace)
	b.Add("fish_cursor_selection_mode", d.handleCursorSelectionMode)
	return b.MustBuild()
}

// Init runs the handlers needed before the first prompt
func (d *Dispatcher) Init(vars env.Environment) {
	d.dbg.Debug("init")
	d.initLocale(vars)
	d.initCurses(vars)
	d.guessEmojiWidth(vars)
	d.updateEscapeDelay(vars)
	d.handleReadLimit(vars)
	d.handlePosixSpawn(vars)
	d.handleTrace(vars)
}

// VarChange reacts to a mutation of name
func (d *Dispatcher) VarChange(name string, vars env.Environment) {
	if d.table.Observes(name) {
		d.dbg.Debug("variable changed", zap.String("name", name))
	}
	d.table.Dispatch(name, vars)
}

// warnf reports an invalid value or a setup failure, interactive sessions only
func (d *Dispatcher) warnf(format string, args ...any) {
	if !d.interactive {
		return
	}
	d.log.Warnf("%s", d.tr.Sprintf(format, args...))
}

// mirror copies an exported, non-empty shell variable into the process environment, or removes it
func (d *Dispatcher) mirror(name string, vars env.Environment, log *zap.Logger) {
	if v, ok := env.GetExported(vars, name); ok {
		value := v.AsString()
		log.Debug("mirror variable", zap.String("name", name), zap.String("value", value))
		if err := os.Setenv(name, value); err != nil {
			log.Debug("setenv failed", zap.String("name", name), zap.Error(err))
		}
		return
	}
	log.Debug("variable missing or empty", zap.String("name", name))
	_ = os.Unsetenv(name)
}

// Table returns the variable table
func (d *Dispatcher) Table() *Table { return d.table }

// Store returns the terminal capability store
func (d *Dispatcher) Store() *terminal.Store { return d.store }

// Registry returns the derived values
func (d *Dispatcher) Registry() *status.Registry { return d.reg }

// CursesInitialized reports whether terminal setup has completed at least once
func (d *Dispatcher) CursesInitialized() bool { return d.cursesInitialized.Load() }

// TermHasXN reports the eat_newline_glitch flag of the terminal
func (d *Dispatcher) TermHasXN() bool { return d.termHasXN.Load() }

// CanSetTitle reports whether title escape sequences are believed to work
func (d *Dispatcher) CanSetTitle() bool { return d.canSetTitle.Load() }

// UsePosixSpawn reports whether external commands should be started with posix_spawn
func (d *Dispatcher) UsePosixSpawn() bool { return d.usePosixSpawn.Load() }

// ReadByteLimit is the most the read builtin consumes
func (d *Dispatcher) ReadByteLimit() int64 { return d.readByteLimit.Load() }

// ColorSupport returns the resolved colour capabilities
func (d *Dispatcher) ColorSupport() terminal.ColorSupport {
	return terminal.ColorSupport(d.colorSupport.Load())
}

// EmojiWidth is the cell width assumed for emoji, 1 or 2
func (d *Dispatcher) EmojiWidth() int { return int(d.emojiWidth.Load()) }

// AmbiguousWidth is the cell width of East Asian ambiguous characters, 1 or 2
func (d *Dispatcher) AmbiguousWidth() int { return int(d.ambiguousWidth.Load()) }

// EscapeDelay is how long input waits after an escape for the rest of a sequence
func (d *Dispatcher) EscapeDelay() time.Duration {
	return time.Duration(d.escapeDelayMs.Load()) * time.Millisecond
}

// AutosuggestionEnabled reports whether the line editor offers autosuggestions
func (d *Dispatcher) AutosuggestionEnabled() bool { return d.autosuggestion.Load() }

// TraceEnabled reports whether fish_trace asks for command tracing
func (d *Dispatcher) TraceEnabled() bool { return d.trace.Load() }

// MidnightCommander reports whether the shell runs inside Midnight Commander (MC_SID set)
func (d *Dispatcher) MidnightCommander() bool { return d.midnightCommander.Load() }

// HistorySession names the history file in use; empty means history is not saved
func (d *Dispatcher) HistorySession() string { return d.historySession.Load() }

// CursorSelectionMode returns the configured selection mode
func (d *Dispatcher) CursorSelectionMode() CursorSelectionMode {
	if d.cursorMode.Load() == CursorInclusive.String() {
		return CursorInclusive
	}
	return CursorExclusive
}

// Location is the zone selected by TZ
func (d *Dispatcher) Location() *time.Location { return d.location.Load() }

// StringWidth measures s in cells with the configured ambiguous width
func (d *Dispatcher) StringWidth(s string) int {
	return d.widthCond.Load().StringWidth(s)
}

var principal atomic.Pointer[Dispatcher]

// Principal returns the dispatcher of the process, creating a default one on first use
func Principal() *Dispatcher {
	if d := principal.Load(); d != nil {
		return d
	}
	principal.CompareAndSwap(nil, New(Options{}))
	return principal.Load()
}

// SetPrincipal replaces the dispatcher of the process
func SetPrincipal(d *Dispatcher) {
	principal.Store(d)
}

// Init runs the startup handlers of the principal dispatcher
func Init(vars env.Environment) {
	Principal().Init(vars)
}

// VarChange forwards a mutation to the principal dispatcher
func VarChange(name string, vars env.Environment) {
	Principal().VarChange(name, vars)
}
