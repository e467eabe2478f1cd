package dispatch

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/terminal"
)

func (d *Dispatcher) handleLocaleChange(vars env.Environment) {
	d.initLocale(vars)
	// A multibyte locale may change how emoji measure
	d.guessEmojiWidth(vars)
}

func (d *Dispatcher) handleCursesChange(vars env.Environment) {
	d.guessEmojiWidth(vars)
	d.initCurses(vars)
}

func (d *Dispatcher) handleColorChange(vars env.Environment) {
	d.updateColorSupport(vars)
	fire(d.hooks.SchedulePromptRepaint)
}

func (d *Dispatcher) handleTermSize(vars env.Environment) {
	fire1(d.hooks.TermSizeChanged, vars)
}

func (d *Dispatcher) handleCompletePath(env.Environment) {
	fire(d.hooks.InvalidateCompletePath)
}

func (d *Dispatcher) handleFunctionPath(env.Environment) {
	fire(d.hooks.InvalidateFunctionPath)
}

// parseInt accepts surrounding blanks and a sign
func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func clampWidth(n int64) int64 {
	return min(max(n, 1), 2)
}

func (d *Dispatcher) guessEmojiWidth(vars env.Environment) {
	if v, ok := vars.Get("fish_emoji_width"); ok {
		n, valid := parseInt(v.AsString())
		if !valid {
			d.warnf("Ignoring invalid $fish_emoji_width: %s", v.AsString())
			n = 1
		}
		d.emojiWidth.Store(clampWidth(n))
		return
	}

	program, _ := env.Lookup(vars, "TERM_PROGRAM")
	var version int64
	if s, ok := env.Lookup(vars, "TERM_PROGRAM_VERSION"); ok {
		// Apple_Terminal reports versions like 400.1
		if head, _, _ := strings.Cut(s, "."); head != "" {
			version, _ = parseInt(head)
		}
	}

	switch {
	case program == "Apple_Terminal" && version >= 400:
		d.emojiWidth.Store(2)
		d.termLog.Debug("default emoji width 2", zap.String("term_program", program))
	case program == "iTerm.app":
		d.emojiWidth.Store(2)
		d.termLog.Debug("default emoji width 2 for iTerm2")
	default:
		w := clampWidth(int64(runewidth.RuneWidth('😃')))
		d.emojiWidth.Store(w)
		d.termLog.Debug("default emoji width", zap.Int64("width", w))
	}
}

func newWidthCondition(ambiguous int64) *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = ambiguous == 2
	return c
}

func (d *Dispatcher) handleAmbiguousWidth(vars env.Environment) {
	w := int64(1)
	if v, ok := vars.Get("fish_ambiguous_width"); ok {
		n, valid := parseInt(v.AsString())
		if !valid {
			d.warnf("Ignoring invalid $fish_ambiguous_width: %s", v.AsString())
			n = 1
		}
		w = clampWidth(n)
	}
	d.ambiguousWidth.Store(w)
	d.widthCond.Store(newWidthCondition(w))
}

func (d *Dispatcher) updateEscapeDelay(vars env.Environment) {
	v, ok := env.GetUnlessEmpty(vars, "fish_escape_delay_ms")
	if !ok {
		d.escapeDelayMs.Store(DefaultEscapeDelayMs)
		fire1(d.hooks.EscapeDelayChanged, d.EscapeDelay())
		return
	}
	n, valid := parseInt(v.AsString())
	if !valid || n < 10 || n >= 5000 {
		d.warnf("ignoring fish_escape_delay_ms: value '%s' is not an integer or is < 10 or >= 5000 ms", v.AsString())
		return
	}
	d.escapeDelayMs.Store(n)
	fire1(d.hooks.EscapeDelayChanged, d.EscapeDelay())
}

func (d *Dispatcher) handleReadLimit(vars env.Environment) {
	limit := int64(DefaultReadByteLimit)
	if v, ok := env.GetUnlessEmpty(vars, "fish_read_limit"); ok {
		n, err := strconv.ParseUint(v.AsString(), 10, 63)
		if err != nil {
			d.warnf("Ignoring invalid $fish_read_limit")
		} else {
			limit = int64(n)
		}
	}
	d.readByteLimit.Store(limit)
}

// posixSpawnAllowed is false where posix_spawn is known to misbehave
func (d *Dispatcher) posixSpawnAllowed() bool {
	return d.goos != "openbsd"
}

func (d *Dispatcher) handlePosixSpawn(vars env.Environment) {
	switch v, ok := vars.Get("fish_use_posix_spawn"); {
	case !d.posixSpawnAllowed():
		d.usePosixSpawn.Store(false)
	case !ok:
		d.usePosixSpawn.Store(true)
	default:
		d.usePosixSpawn.Store(v.IsEmpty() || terminal.BoolFromString(v.AsString()))
	}
}

func (d *Dispatcher) handleTrace(vars env.Environment) {
	_, enabled := env.GetUnlessEmpty(vars, "fish_trace")
	d.trace.Store(enabled)
	fire1(d.hooks.TraceChanged, enabled)
}

func (d *Dispatcher) handleCursorSelectionMode(vars env.Environment) {
	mode := CursorExclusive
	if v, ok := env.Lookup(vars, "fish_cursor_selection_mode"); ok && v == "inclusive" {
		mode = CursorInclusive
	}
	d.cursorMode.Store(mode.String())
	fire1(d.hooks.CursorSelectionModeChanged, mode)
}

func validSessionID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// historySessionID maps $fish_history to a session; empty means history is not persisted
func (d *Dispatcher) historySessionID(vars env.Environment) string {
	v, ok := env.Lookup(vars, "fish_history")
	if !ok {
		return DefaultHistorySession
	}
	if v == "" || validSessionID(v) {
		return v
	}
	d.warnf("History session ID '%s' is not a valid variable name. Falling back to `%s`.", v, DefaultHistorySession)
	return DefaultHistorySession
}

func (d *Dispatcher) handleHistory(vars env.Environment) {
	session := d.historySessionID(vars)
	d.historySession.Store(session)
	fire1(d.hooks.HistoryChanged, session)
}

func (d *Dispatcher) handleAutosuggestion(vars env.Environment) {
	enabled := true
	if v, ok := env.Lookup(vars, "fish_autosuggestion_enabled"); ok {
		enabled = v != "0"
	}
	d.autosuggestion.Store(enabled)
	fire1(d.hooks.AutosuggestionChanged, enabled)
}

func (d *Dispatcher) handleTimezone(name string, vars env.Environment) {
	v, ok := env.GetUnlessEmpty(vars, name)
	value := v.AsString()
	d.dbg.Debug("timezone variable", zap.String("name", name), zap.String("value", value), zap.Bool("set", ok))
	if ok {
		_ = os.Setenv(name, value)
	} else {
		_ = os.Unsetenv(name)
	}

	loc := time.Local
	if ok {
		var err error
		loc, err = time.LoadLocation(strings.TrimPrefix(value, ":"))
		if err != nil {
			d.dbg.Debug("unknown timezone, using UTC", zap.String("value", value), zap.Error(err))
			loc = time.UTC
		}
	}
	d.location.Store(loc)
	d.timezone.Store(loc.String())
	fire1(d.hooks.TimezoneChanged, loc)
}
