package dispatch

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/shellcore/capability"
	"github.com/lixenwraith/shellcore/terminal"
)

//go:embed patches.toml
var patchesTOML []byte

// Patch injects string capabilities for matching terminals
type Patch struct {
	Name        string            `toml:"name"`
	GOOS        []string          `toml:"goos"`
	TermProgram []string          `toml:"term_program"`
	Term        []string          `toml:"term"`
	Values      map[string]string `toml:"capabilities"`

	caps []patchValue
}

type patchValue struct {
	cap   capability.StringCap
	value string
}

type patchFile struct {
	Patches []Patch `toml:"patch"`
}

// ParsePatches decodes a patch table. Every key must name a known string capability
func ParsePatches(data []byte) ([]Patch, error) {
	var f patchFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse patch table: %w", err)
	}
	for i := range f.Patches {
		p := &f.Patches[i]
		codes := make([]string, 0, len(p.Values))
		for code := range p.Values {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			info, ok := capability.Lookup(code)
			if !ok || info.ID.Kind != capability.KindString {
				return nil, fmt.Errorf("patch %s: %q is not a known string capability", p.Name, code)
			}
			p.caps = append(p.caps, patchValue{cap: capability.StringCap(info.ID.Code), value: p.Values[code]})
		}
	}
	return f.Patches, nil
}

// DefaultPatches returns the embedded patch table
func DefaultPatches() []Patch {
	patches, err := ParsePatches(patchesTOML)
	if err != nil {
		panic(err)
	}
	return patches
}

func matches(list []string, v string) bool {
	return len(list) == 0 || slices.Contains(list, v)
}

// Applies reports whether the patch selects this platform and terminal
func (p Patch) Applies(goos, termProgram, term string) bool {
	return matches(p.GOOS, goos) && matches(p.TermProgram, termProgram) && matches(p.Term, term)
}

// Apply sets every capability the store has no value for and returns how many were injected
func (p Patch) Apply(store *terminal.Store) int {
	n := 0
	for _, pv := range p.caps {
		if _, ok := store.String(pv.cap); ok {
			continue
		}
		if err := store.Set(pv.cap, pv.value); err == nil {
			n++
		}
	}
	return n
}
