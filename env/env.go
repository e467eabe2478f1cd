// Package env is the read side of the shell's variable engine as seen by the dispatcher.
package env

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// Var is a snapshot of one shell variable
type Var struct {
	Values   []string
	Exported bool
	PathVar  bool // joined with ':' instead of ' '
}

// AsString joins the values the way the shell expands the variable in a string context
func (v Var) AsString() string {
	sep := " "
	if v.PathVar {
		sep = ":"
	}
	return strings.Join(v.Values, sep)
}

// IsEmpty reports whether the variable has no elements or a single empty element
func (v Var) IsEmpty() bool {
	return len(v.Values) == 0 || (len(v.Values) == 1 && v.Values[0] == "")
}

// Environment is the variable snapshot handed to dispatch callbacks
type Environment interface {
	Get(name string) (Var, bool)
}

// Lookup returns the string value of a set variable
func Lookup(e Environment, name string) (string, bool) {
	v, ok := e.Get(name)
	if !ok {
		return "", false
	}
	return v.AsString(), true
}

// GetUnlessEmpty returns the variable only when it is set and non-empty
func GetUnlessEmpty(e Environment, name string) (Var, bool) {
	v, ok := e.Get(name)
	if !ok || v.IsEmpty() {
		return Var{}, false
	}
	return v, true
}

// GetExported returns the variable only when it is exported and non-empty
func GetExported(e Environment, name string) (Var, bool) {
	v, ok := GetUnlessEmpty(e, name)
	if !ok || !v.Exported {
		return Var{}, false
	}
	return v, true
}

// Vars is a mutable, concurrency-safe Environment
type Vars struct {
	mu   sync.RWMutex
	vars map[string]Var
}

// NewVars creates an empty variable set
func NewVars() *Vars {
	return &Vars{vars: make(map[string]Var)}
}

// FromOS snapshots the process environment as exported variables
func FromOS() *Vars {
	vs := NewVars()
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vs.vars[name] = Var{Values: []string{value}, Exported: true, PathVar: isPathName(name)}
	}
	return vs
}

// Get implements Environment
func (vs *Vars) Get(name string) (Var, bool) {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	v, ok := vs.vars[name]
	if !ok {
		return Var{}, false
	}
	v.Values = append([]string(nil), v.Values...)
	return v, true
}

// Set assigns a shell-local variable
func (vs *Vars) Set(name string, values ...string) {
	vs.set(name, Var{Values: values})
}

// Export assigns an exported variable
func (vs *Vars) Export(name string, values ...string) {
	vs.set(name, Var{Values: values, Exported: true})
}

func (vs *Vars) set(name string, v Var) {
	v.Values = append([]string(nil), v.Values...)
	v.PathVar = isPathName(name)
	vs.mu.Lock()
	vs.vars[name] = v
	vs.mu.Unlock()
}

// Unset removes a variable
func (vs *Vars) Unset(name string) {
	vs.mu.Lock()
	delete(vs.vars, name)
	vs.mu.Unlock()
}

// Names returns the sorted variable names
func (vs *Vars) Names() []string {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	names := make([]string, 0, len(vs.vars))
	for name := range vs.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isPathName follows the shell convention that variables ending in PATH are colon lists
func isPathName(name string) bool {
	return strings.HasSuffix(name, "PATH") || name == "TERMINFO_DIRS"
}
