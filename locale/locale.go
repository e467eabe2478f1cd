// Package locale tracks the process locale categories the shell cares about.
//
// Go has no setlocale; Process keeps the per-category selection, resolves names from the
// environment the way POSIX setlocale(cat, "") does, and derives the maximum bytes per
// character from the codeset so callers can tell single-byte locales from multi-byte ones.
package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Category is a locale category
type Category int

const (
	LCAll Category = iota
	LCCtype
	LCNumeric
	LCTime
	LCCollate
	LCMonetary
	LCMessages
)

// categories lists every category LCAll covers, in glibc composite order
var categories = []Category{LCCtype, LCNumeric, LCTime, LCCollate, LCMonetary, LCMessages}

func (c Category) String() string {
	switch c {
	case LCAll:
		return "LC_ALL"
	case LCCtype:
		return "LC_CTYPE"
	case LCNumeric:
		return "LC_NUMERIC"
	case LCTime:
		return "LC_TIME"
	case LCCollate:
		return "LC_COLLATE"
	case LCMonetary:
		return "LC_MONETARY"
	case LCMessages:
		return "LC_MESSAGES"
	default:
		return fmt.Sprintf("LC_%d", int(c))
	}
}

// System is the locale surface the dispatcher drives
type System interface {
	// Query returns the current locale name of a category
	Query(cat Category) string

	// Set selects a locale for a category, resolving from the environment when name is empty.
	// Returns the resulting name and false when the locale is unavailable; nothing changes then.
	Set(cat Category, name string) (string, bool)

	// MaxCharBytes is the longest character encoding of the current LC_CTYPE codeset
	MaxCharBytes() int
}

// Process is the default System, one selection per category
type Process struct {
	// Getenv reads the process environment, os.Getenv when nil
	Getenv func(string) string

	// Available reports whether a locale can be loaded, SystemAvailable when nil
	Available func(name string, getenv func(string) string) bool

	mu      sync.Mutex
	current map[Category]string
}

// NewProcess starts every category in the C locale
func NewProcess() *Process {
	p := &Process{current: make(map[Category]string, len(categories))}
	for _, c := range categories {
		p.current[c] = "C"
	}
	return p
}

func (p *Process) getenv(name string) string {
	if p.Getenv != nil {
		return p.Getenv(name)
	}
	return os.Getenv(name)
}

func (p *Process) available(name string) bool {
	if p.Available != nil {
		return p.Available(name, p.getenv)
	}
	return SystemAvailable(name, p.getenv)
}

// resolve applies LC_ALL > LC_<cat> > LANG > C
func (p *Process) resolve(cat Category) string {
	if v := p.getenv("LC_ALL"); v != "" {
		return v
	}
	if v := p.getenv(cat.String()); v != "" {
		return v
	}
	if v := p.getenv("LANG"); v != "" {
		return v
	}
	return "C"
}

// Query implements System. LCAll returns a composite name when categories differ
func (p *Process) Query(cat Category) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queryLocked(cat)
}

func (p *Process) queryLocked(cat Category) string {
	if cat != LCAll {
		return p.current[cat]
	}
	first := p.current[categories[0]]
	same := true
	for _, c := range categories[1:] {
		if p.current[c] != first {
			same = false
			break
		}
	}
	if same {
		return first
	}
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, c.String()+"="+p.current[c])
	}
	return strings.Join(parts, ";")
}

// Set implements System. LCAll changes all categories or none
func (p *Process) Set(cat Category, name string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	targets := []Category{cat}
	if cat == LCAll {
		targets = categories
	}

	chosen := make(map[Category]string, len(targets))
	for _, c := range targets {
		n := name
		if n == "" {
			n = p.resolve(c)
		}
		if !p.available(n) {
			return "", false
		}
		chosen[c] = n
	}
	for c, n := range chosen {
		p.current[c] = n
	}
	return p.queryLocked(cat), true
}

// MaxCharBytes implements System
func (p *Process) MaxCharBytes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return CodesetWidth(Codeset(p.current[LCCtype]))
}

// IsPortable reports the locales every system provides
func IsPortable(name string) bool {
	switch name {
	case "C", "POSIX", "C.UTF-8", "C.utf8":
		return true
	}
	return false
}

// SystemAvailable looks for a compiled locale under LOCPATH and the system locale directories.
// With a glibc locale archive present, any well-formed language_TERRITORY.codeset name is accepted.
func SystemAvailable(name string, getenv func(string) string) bool {
	if IsPortable(name) {
		return true
	}
	if name == "" || strings.ContainsRune(name, '/') || strings.HasPrefix(name, ".") {
		return false
	}

	var dirs []string
	if lp := getenv("LOCPATH"); lp != "" {
		dirs = append(dirs, filepath.SplitList(lp)...)
	}
	dirs = append(dirs, "/usr/lib/locale")
	if runtime.GOOS == "darwin" || runtime.GOOS == "freebsd" {
		dirs = append(dirs, "/usr/share/locale")
	}

	candidates := []string{name, normalizeName(name)}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, c := range candidates {
			if fi, err := os.Stat(filepath.Join(dir, c)); err == nil && fi.IsDir() {
				return true
			}
		}
	}

	if _, err := os.Stat("/usr/lib/locale/locale-archive"); err == nil {
		return wellFormed(name)
	}
	return false
}

// normalizeName rewrites the codeset the way localedef names directories: en_US.UTF-8 -> en_US.utf8
func normalizeName(name string) string {
	base, mod, _ := strings.Cut(name, "@")
	lang, cs, ok := strings.Cut(base, ".")
	if !ok {
		return name
	}
	out := lang + "." + normalizeCodeset(cs)
	if mod != "" {
		out += "@" + mod
	}
	return out
}

func wellFormed(name string) bool {
	if !knownEncoding(Codeset(name)) {
		return false
	}
	_, err := language.Parse(Tag(name))
	return err == nil
}

// Codeset extracts the codeset of a locale name, ANSI_X3.4-1968 for C and POSIX
func Codeset(name string) string {
	if name == "C" || name == "POSIX" || name == "" {
		return "ANSI_X3.4-1968"
	}
	base, _, _ := strings.Cut(name, "@")
	if _, cs, ok := strings.Cut(base, "."); ok {
		return cs
	}
	if knownEncoding(base) {
		return base
	}
	return "ISO-8859-1"
}

// Tag converts a POSIX locale name to a BCP 47 string: de_DE.UTF-8@euro -> de-DE
func Tag(name string) string {
	base, _, _ := strings.Cut(name, "@")
	base, _, _ = strings.Cut(base, ".")
	if base == "C" || base == "POSIX" || base == "" {
		return "und"
	}
	return strings.ReplaceAll(base, "_", "-")
}
