package dispatch

import (
	"fmt"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/shellcore/capability"
	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/locale"
	"github.com/lixenwraith/shellcore/logging"
	"github.com/lixenwraith/shellcore/terminal"
)

type fakeDB struct {
	name    string
	strings map[capability.StringCap]string
	numbers map[capability.NumberCap]int
	flags   map[capability.FlagCap]bool
}

func (d *fakeDB) Name() string { return d.name }

func (d *fakeDB) String(c capability.StringCap) (string, bool) {
	v, ok := d.strings[c]
	return v, ok
}

func (d *fakeDB) Number(c capability.NumberCap) (int, bool) {
	v, ok := d.numbers[c]
	return v, ok
}

func (d *fakeDB) Flag(c capability.FlagCap) bool { return d.flags[c] }

func xtermDB(name string) *fakeDB {
	return &fakeDB{
		name:    name,
		strings: map[capability.StringCap]string{capability.EnterBoldMode: "\x1b[1m"},
		numbers: map[capability.NumberCap]int{capability.MaxColors: 256},
		flags:   map[capability.FlagCap]bool{capability.EatNewlineGlitch: true},
	}
}

type fakeLoader struct {
	dbs       map[string]*fakeDB
	requested []string
}

func (l *fakeLoader) load(name string) (terminal.Database, error) {
	l.requested = append(l.requested, name)
	if db, ok := l.dbs[name]; ok {
		return db, nil
	}
	return nil, fmt.Errorf("%s: %w", name, terminal.ErrNotFound)
}

// countingLocale records LC_CTYPE changes made by the UTF-8 probe
type countingLocale struct {
	*locale.Process
	ctypeSets []string
}

func (c *countingLocale) Set(cat locale.Category, name string) (string, bool) {
	if cat == locale.LCCtype {
		c.ctypeSets = append(c.ctypeSets, name)
	}
	return c.Process.Set(cat, name)
}

func newCountingLocale(available ...string) *countingLocale {
	p := locale.NewProcess()
	set := map[string]bool{}
	for _, n := range available {
		set[n] = true
	}
	p.Available = func(name string, _ func(string) string) bool {
		return name == "C" || name == "POSIX" || set[name]
	}
	return &countingLocale{Process: p}
}

type fixture struct {
	d      *Dispatcher
	loader *fakeLoader
	store  *terminal.Store
	loc    *countingLocale
	warns  *observer.ObservedLogs
	vars   *env.Vars
	events []string
}

func (f *fixture) warnings() []string {
	var out []string
	for _, e := range f.warns.All() {
		out = append(out, e.Message)
	}
	return out
}

// processVars are mirrored into the process environment by the initializers
var processVars = []string{
	"TERM", "TERMINFO", "TERMINFO_DIRS", "TZ",
	"LANG", "LANGUAGE", "LC_ALL", "LC_COLLATE", "LC_CTYPE", "LC_MESSAGES",
	"LC_NUMERIC", "LC_TIME", "LC_MONETARY", "LOCPATH", "fish_allow_singlebyte_locale",
}

type fixtureOpt func(*Options)

func interactive(o *Options) { o.Interactive = true }

func onGOOS(goos string) fixtureOpt {
	return func(o *Options) { o.GOOS = goos }
}

func newFixture(t *testing.T, dbs map[string]*fakeDB, opts ...fixtureOpt) *fixture {
	t.Helper()
	for _, name := range processVars {
		t.Setenv(name, "")
	}

	warnCore, warns := observer.New(zapcore.WarnLevel)
	f := &fixture{
		loader: &fakeLoader{dbs: dbs},
		loc:    newCountingLocale("C.UTF-8", "en_US.UTF-8", "de_DE.UTF-8"),
		warns:  warns,
		vars:   env.NewVars(),
	}
	f.store = terminal.NewStore(f.loader.load)

	o := Options{
		Store:   f.store,
		Locale:  f.loc,
		Logger:  logging.NewFromCores(zapcore.NewNopCore(), warnCore),
		TTYName: func() (string, error) { return "/dev/pts/3", nil },
		GOOS:    "linux",
		Hooks: Hooks{
			ClearLayoutCache:       func() { f.events = append(f.events, "clear-layout") },
			SchedulePromptRepaint:  func() { f.events = append(f.events, "repaint") },
			MidnightCommanderHack:  func() { f.events = append(f.events, "mc") },
			TranslationsChanged:    func(l string) { f.events = append(f.events, "translations:"+l) },
			InvalidateCompletePath: func() { f.events = append(f.events, "complete-path") },
			InvalidateFunctionPath: func() { f.events = append(f.events, "function-path") },
			TermSizeChanged:        func(env.Environment) { f.events = append(f.events, "term-size") },
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	f.d = New(o)
	return f
}
