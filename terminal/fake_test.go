package terminal

import (
	"fmt"

	"github.com/lixenwraith/shellcore/capability"
)

// fakeDatabase counts lookups so tests can observe caching
type fakeDatabase struct {
	name        string
	strings     map[capability.StringCap]string
	numbers     map[capability.NumberCap]int
	flags       map[capability.FlagCap]bool
	stringCalls int
}

func (d *fakeDatabase) Name() string { return d.name }

func (d *fakeDatabase) String(c capability.StringCap) (string, bool) {
	d.stringCalls++
	v, ok := d.strings[c]
	return v, ok
}

func (d *fakeDatabase) Number(c capability.NumberCap) (int, bool) {
	v, ok := d.numbers[c]
	return v, ok
}

func (d *fakeDatabase) Flag(c capability.FlagCap) bool { return d.flags[c] }

// fakeLoader serves a fixed set of descriptions and records requested names
type fakeLoader struct {
	dbs       map[string]*fakeDatabase
	requested []string
}

func (l *fakeLoader) load(name string) (Database, error) {
	l.requested = append(l.requested, name)
	db, ok := l.dbs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return db, nil
}

func newXterm() *fakeDatabase {
	return &fakeDatabase{
		name: "xterm-256color",
		strings: map[capability.StringCap]string{
			capability.EnterBoldMode:  "\x1b[1m",
			capability.SetAForeground: "\x1b[38;5;%p1%dm",
		},
		numbers: map[capability.NumberCap]int{
			capability.MaxColors: 256,
			capability.Columns:   80,
			capability.Lines:     -1,
		},
		flags: map[capability.FlagCap]bool{
			capability.EatNewlineGlitch: true,
			capability.AutoRightMargin:  true,
		},
	}
}
