package dispatch

import (
	"time"

	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/terminal"
)

// Hooks are the parts of the shell notified when derived state changes. Nil hooks are skipped
type Hooks struct {
	ColorSupportChanged        func(terminal.ColorSupport)
	SchedulePromptRepaint      func()
	ClearLayoutCache           func()
	TranslationsChanged        func(messagesLocale string)
	MidnightCommanderHack      func()
	TermSizeChanged            func(vars env.Environment)
	InvalidateFunctionPath     func()
	InvalidateCompletePath     func()
	HistoryChanged             func(session string)
	AutosuggestionChanged      func(enabled bool)
	TraceChanged               func(enabled bool)
	EscapeDelayChanged         func(time.Duration)
	CursorSelectionModeChanged func(CursorSelectionMode)
	TimezoneChanged            func(*time.Location)
}

func fire(f func()) {
	if f != nil {
		f()
	}
}

func fire1[T any](f func(T), v T) {
	if f != nil {
		f(v)
	}
}
