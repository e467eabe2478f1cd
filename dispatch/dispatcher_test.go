package dispatch

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/shellcore/capability"
	"github.com/lixenwraith/shellcore/locale"
	"github.com/lixenwraith/shellcore/terminal"
)

func withTTY(name string) fixtureOpt {
	return func(o *Options) {
		o.TTYName = func() (string, error) { return name, nil }
	}
}

func withLocale(l locale.System) fixtureOpt {
	return func(o *Options) { o.Locale = l }
}

func TestInitSetsUpTerminal(t *testing.T) {
	f := newFixture(t, map[string]*fakeDB{"xterm-256color": xtermDB("xterm-256color")}, interactive)
	f.vars.Export("TERM", "xterm-256color")

	f.d.Init(f.vars)

	assert.Equal(t, []string{"xterm-256color"}, f.loader.requested)
	assert.Equal(t, "xterm-256color", os.Getenv("TERM"))
	assert.True(t, f.d.CursesInitialized())
	assert.True(t, f.d.TermHasXN())
	assert.True(t, f.d.CanSetTitle())
	assert.Equal(t, terminal.Color256, f.d.ColorSupport())
	assert.Contains(t, f.events, "clear-layout")
	assert.Empty(t, f.warnings())

	assert.Equal(t, int64(DefaultReadByteLimit), f.d.ReadByteLimit())
	assert.Equal(t, 30*time.Millisecond, f.d.EscapeDelay())
	assert.True(t, f.d.UsePosixSpawn())
	assert.False(t, f.d.TraceEnabled())
	assert.Contains(t, []int{1, 2}, f.d.EmojiWidth())

	snap := f.d.Registry().Snapshot()
	assert.Equal(t, "true", snap[KeyCursesInitialized])
	assert.Equal(t, "1", snap[KeyColorSupport])
	assert.Equal(t, "", snap[KeyFallbackTerm])
}

func TestInitFallbackSkipsCurrentTerm(t *testing.T) {
	f := newFixture(t, map[string]*fakeDB{"xterm": xtermDB("xterm")}, interactive)
	f.vars.Export("TERM", "xterm-256color")

	f.d.Init(f.vars)

	// The failed name is never retried
	assert.Equal(t, []string{"xterm-256color", "xterm"}, f.loader.requested)
	assert.Equal(t, []string{
		"Could not set up terminal.",
		"TERM environment variable set to: xterm-256color",
		"Check that this terminal type is supported on this system.",
		"Using fallback terminal type: xterm",
	}, f.warnings())
	assert.True(t, f.store.IsInitialized())
	assert.Equal(t, "xterm", f.d.Registry().Strings.Get(KeyFallbackTerm).Load())

	// $TERM keeps the value the shell was given
	assert.Equal(t, "xterm-256color", os.Getenv("TERM"))
}

func TestInitAllFallbacksFail(t *testing.T) {
	f := newFixture(t, nil, interactive)
	f.vars.Export("TERM", "foo")

	f.d.Init(f.vars)

	assert.Equal(t, []string{"foo", "xterm-256color", "xterm", "ansi", "dumb"}, f.loader.requested)
	assert.Contains(t, f.warnings(), "Could not set up terminal using the fallback terminal type: dumb")
	assert.False(t, f.store.IsInitialized())
	assert.True(t, f.d.CursesInitialized())
	assert.False(t, f.d.TermHasXN())
	assert.Equal(t, terminal.ColorSupport(0), f.d.ColorSupport())

	_, ok := f.store.String(capability.EnterBoldMode)
	assert.False(t, ok)
}

func TestInitWithoutTERM(t *testing.T) {
	f := newFixture(t, nil, interactive)

	f.d.Init(f.vars)

	warnings := f.warnings()
	require.GreaterOrEqual(t, len(warnings), 2)
	assert.Equal(t, "Could not set up terminal.", warnings[0])
	assert.Equal(t, "TERM environment variable not set.", warnings[1])
	assert.Equal(t, []string{"xterm-256color", "xterm", "ansi", "dumb"}, f.loader.requested)
	assert.False(t, f.d.CanSetTitle())
}

func TestNonInteractiveIsSilent(t *testing.T) {
	f := newFixture(t, nil)
	f.vars.Export("TERM", "foo")
	f.vars.Set("fish_read_limit", "lots")

	f.d.Init(f.vars)

	assert.Empty(t, f.warnings())
	assert.Equal(t, int64(DefaultReadByteLimit), f.d.ReadByteLimit())
}

func TestUnexportedTermIsRemovedFromProcess(t *testing.T) {
	f := newFixture(t, map[string]*fakeDB{"xterm-256color": xtermDB("xterm-256color")})
	require.NoError(t, os.Setenv("TERM", "stale"))
	f.vars.Set("TERM", "xterm-256color")

	f.d.Init(f.vars)

	_, present := os.LookupEnv("TERM")
	assert.False(t, present)
	assert.NotContains(t, f.loader.requested, "xterm-256color")
	assert.NotContains(t, f.loader.requested, "stale")
}

func TestCursesChangeReinitializes(t *testing.T) {
	f := newFixture(t, map[string]*fakeDB{
		"xterm-256color": xtermDB("xterm-256color"),
		"vt100":          {name: "vt100"},
	})
	f.vars.Export("TERM", "xterm-256color")
	f.d.Init(f.vars)
	require.NoError(t, f.store.Set(capability.EnterItalicsMode, "\x1b[3m"))
	gen := f.store.Generation()

	f.vars.Export("TERM", "vt100")
	f.d.VarChange("TERM", f.vars)

	assert.Equal(t, "vt100", f.store.TermName())
	assert.NotEqual(t, gen, f.store.Generation())
	_, ok := f.store.String(capability.EnterItalicsMode)
	assert.False(t, ok)
	assert.False(t, f.d.TermHasXN())
	assert.False(t, f.d.CanSetTitle())
	assert.Equal(t, terminal.ColorSupport(0), f.d.ColorSupport())
}

func TestColorOverrideVariables(t *testing.T) {
	f := newFixture(t, map[string]*fakeDB{"xterm-256color": xtermDB("xterm-256color")})
	f.vars.Export("TERM", "xterm-256color")
	f.d.Init(f.vars)
	f.events = nil

	f.vars.Set("fish_term24bit", "1")
	f.d.VarChange("fish_term24bit", f.vars)
	assert.Equal(t, terminal.Color256|terminal.Color24Bit, f.d.ColorSupport())
	assert.Equal(t, []string{"repaint"}, f.events)

	f.vars.Set("fish_term256", "no")
	f.d.VarChange("fish_term256", f.vars)
	assert.Equal(t, terminal.Color24Bit, f.d.ColorSupport())
}

func TestColorFromTerminfoMaxColors(t *testing.T) {
	direct := xtermDB("foo-direct")
	direct.numbers[capability.MaxColors] = 1 << 24
	f := newFixture(t, map[string]*fakeDB{"foo-direct": direct})
	f.vars.Export("TERM", "foo-direct")

	f.d.Init(f.vars)
	assert.Equal(t, terminal.Color256|terminal.Color24Bit, f.d.ColorSupport())
}

func TestUnknownVariableIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	assert.NotPanics(t, func() { f.d.VarChange("NOT_OBSERVED", f.vars) })
	assert.Empty(t, f.events)
	assert.False(t, f.d.CursesInitialized())
}

func TestMidnightCommanderHack(t *testing.T) {
	f := newFixture(t, map[string]*fakeDB{"xterm-256color": xtermDB("xterm-256color")})
	f.vars.Export("TERM", "xterm-256color")
	f.vars.Export("MC_SID", "4242")

	f.d.Init(f.vars)
	assert.True(t, f.d.MidnightCommander())
	assert.Contains(t, f.events, "mc")
}

func TestTitleSupportFromTTYName(t *testing.T) {
	dbs := map[string]*fakeDB{"foot": xtermDB("foot")}

	f := newFixture(t, dbs, withTTY("/dev/tty1"))
	f.vars.Export("TERM", "foot")
	f.d.Init(f.vars)
	assert.False(t, f.d.CanSetTitle())

	f = newFixture(t, dbs, withTTY("/dev/pts/7"))
	f.vars.Export("TERM", "foot")
	f.d.Init(f.vars)
	assert.True(t, f.d.CanSetTitle())
}

func TestPatchesAppliedOnDarwin(t *testing.T) {
	db := xtermDB("xterm-256color")
	db.strings[capability.EnterDimMode] = "DIM"
	f := newFixture(t, map[string]*fakeDB{"xterm-256color": db}, onGOOS("darwin"))
	f.vars.Export("TERM", "xterm-256color")
	f.vars.Export("TERM_PROGRAM", "iTerm.app")

	f.d.Init(f.vars)

	v, ok := f.store.String(capability.EnterItalicsMode)
	require.True(t, ok)
	assert.Equal(t, "\x1b[3m", v)
	v, _ = f.store.String(capability.ExitItalicsMode)
	assert.Equal(t, "\x1b[23m", v)

	// Present capabilities are not replaced
	v, _ = f.store.String(capability.EnterDimMode)
	assert.Equal(t, "DIM", v)
}

func TestPatchesGated(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		program string
	}{
		{"linux", "linux", "iTerm.app"},
		{"other terminal", "darwin", "WezTerm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]*fakeDB{"xterm-256color": xtermDB("xterm-256color")}, onGOOS(tt.goos))
			f.vars.Export("TERM", "xterm-256color")
			f.vars.Export("TERM_PROGRAM", tt.program)

			f.d.Init(f.vars)
			_, ok := f.store.String(capability.EnterItalicsMode)
			assert.False(t, ok)
		})
	}
}

func TestLocaleProbeSkippedForMultibyte(t *testing.T) {
	f := newFixture(t, nil)
	f.vars.Export("LANG", "en_US.UTF-8")

	f.d.Init(f.vars)

	assert.Empty(t, f.loc.ctypeSets)
	assert.Equal(t, "en_US.UTF-8", f.loc.Query(locale.LCCtype))
	assert.Equal(t, "en_US.UTF-8", os.Getenv("LANG"))
}

func TestLocaleProbeSkippedForEastAsianMultibyte(t *testing.T) {
	for _, name := range []string{"ja_JP.eucJP", "ja_JP.EUC-JP", "ja_JP.SJIS", "ko_KR.euckr", "zh_CN.GB18030"} {
		t.Run(name, func(t *testing.T) {
			l := newCountingLocale(name, "C.UTF-8")
			f := newFixture(t, nil, withLocale(l))
			f.vars.Export("LANG", name)

			f.d.Init(f.vars)

			assert.Empty(t, l.ctypeSets)
			assert.Equal(t, name, l.Query(locale.LCCtype))
			assert.Greater(t, l.MaxCharBytes(), 1)
		})
	}
}

func TestLocaleProbeFixesSingleByte(t *testing.T) {
	f := newFixture(t, nil)

	f.d.Init(f.vars)

	assert.Equal(t, []string{"C.UTF-8"}, f.loc.ctypeSets)
	assert.Equal(t, "C.UTF-8", f.loc.Query(locale.LCCtype))
	assert.Greater(t, f.loc.MaxCharBytes(), 1)
}

func TestLocaleProbeOrder(t *testing.T) {
	l := newCountingLocale("de_DE.UTF-8")
	f := newFixture(t, nil, withLocale(l))

	f.d.Init(f.vars)

	assert.Equal(t, []string{"C.UTF-8", "en_US.UTF-8", "en_GB.UTF-8", "de_DE.UTF-8"}, l.ctypeSets)
	assert.Equal(t, "de_DE.UTF-8", l.Query(locale.LCCtype))
}

func TestLocaleSingleByteAllowed(t *testing.T) {
	f := newFixture(t, nil)
	f.vars.Set("fish_allow_singlebyte_locale", "1")

	f.d.Init(f.vars)

	assert.Empty(t, f.loc.ctypeSets)
	assert.Equal(t, 1, f.loc.MaxCharBytes())
}

func TestLocaleNumericForcedToC(t *testing.T) {
	f := newFixture(t, nil)
	f.vars.Export("LANG", "en_US.UTF-8")
	f.vars.Export("LC_NUMERIC", "de_DE.UTF-8")

	f.d.Init(f.vars)
	assert.Equal(t, "C", f.loc.Query(locale.LCNumeric))
	assert.Equal(t, "de_DE.UTF-8", os.Getenv("LC_NUMERIC"))
}

func TestLocaleMessagesChangeInvalidatesTranslations(t *testing.T) {
	f := newFixture(t, nil)
	f.vars.Export("LANG", "en_US.UTF-8")
	f.d.Init(f.vars)
	f.events = nil

	f.vars.Export("LC_MESSAGES", "de_DE.UTF-8")
	f.d.VarChange("LC_MESSAGES", f.vars)
	assert.Equal(t, []string{"translations:de_DE.UTF-8"}, f.events)

	// Unrelated change leaves translations alone
	f.events = nil
	f.vars.Export("LC_TIME", "de_DE.UTF-8")
	f.d.VarChange("LC_TIME", f.vars)
	assert.Empty(t, f.events)
}
