package dispatch

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lixenwraith/shellcore/env"
)

// ErrDuplicateHandler is returned when a variable is registered twice for the same callback shape
var ErrDuplicateHandler = errors.New("variable already observed")

// NamedCallback receives the name of the variable that changed, for handlers shared by several names
type NamedCallback func(name string, vars env.Environment)

// Callback receives only the variable snapshot
type Callback func(vars env.Environment)

// Builder collects registrations for a Table
type Builder struct {
	named map[string]NamedCallback
	anon  map[string]Callback
	errs  []error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		named: make(map[string]NamedCallback),
		anon:  make(map[string]Callback),
	}
}

// AddNamed registers a named callback for name
func (b *Builder) AddNamed(name string, cb NamedCallback) *Builder {
	if _, exists := b.named[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("named callback for %s: %w", name, ErrDuplicateHandler))
		return b
	}
	b.named[name] = cb
	return b
}

// Add registers an anonymous callback for name
func (b *Builder) Add(name string, cb Callback) *Builder {
	if _, exists := b.anon[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("callback for %s: %w", name, ErrDuplicateHandler))
		return b
	}
	b.anon[name] = cb
	return b
}

// Build freezes the registrations. Any failed registration means no table at all
func (b *Builder) Build() (*Table, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	t := &Table{
		named: make(map[string]NamedCallback, len(b.named)),
		anon:  make(map[string]Callback, len(b.anon)),
	}
	for k, v := range b.named {
		t.named[k] = v
	}
	for k, v := range b.anon {
		t.anon[k] = v
	}
	return t, nil
}

// MustBuild is Build for tables fixed at compile time; a duplicate is a programming error
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dispatch: %v", err))
	}
	return t
}

// Table maps variable names to callbacks. Read-only after Build
type Table struct {
	named map[string]NamedCallback
	anon  map[string]Callback
}

// Observes reports whether any callback is registered for name
func (t *Table) Observes(name string) bool {
	_, named := t.named[name]
	_, anon := t.anon[name]
	return named || anon
}

// Dispatch runs the named callback, then the anonymous one. Unknown names are ignored
func (t *Table) Dispatch(name string, vars env.Environment) {
	if cb, ok := t.named[name]; ok {
		cb(name, vars)
	}
	if cb, ok := t.anon[name]; ok {
		cb(vars)
	}
}

// Names returns every observed variable, sorted
func (t *Table) Names() []string {
	seen := make(map[string]bool, len(t.named)+len(t.anon))
	for k := range t.named {
		seen[k] = true
	}
	for k := range t.anon {
		seen[k] = true
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
