package terminal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xo/terminfo"

	"github.com/lixenwraith/shellcore/capability"
)

// systemDirs are the compiled-in terminfo locations, in ncurses order
var systemDirs = []string{
	"/etc/terminfo",
	"/lib/terminfo",
	"/usr/share/terminfo",
	"/usr/lib/terminfo",
	"/usr/share/lib/terminfo",
}

var (
	xoStrings = map[capability.StringCap]int{
		capability.EnterItalicsMode:   terminfo.EnterItalicsMode,
		capability.ExitItalicsMode:    terminfo.ExitItalicsMode,
		capability.EnterDimMode:       terminfo.EnterDimMode,
		capability.EnterBoldMode:      terminfo.EnterBoldMode,
		capability.ExitAttributeMode:  terminfo.ExitAttributeMode,
		capability.EnterUnderlineMode: terminfo.EnterUnderlineMode,
		capability.EnterReverseMode:   terminfo.EnterReverseMode,
		capability.SetAForeground:     terminfo.SetAForeground,
		capability.SetABackground:     terminfo.SetABackground,
		capability.ClearScreen:        terminfo.ClearScreen,
		capability.Bell:               terminfo.Bell,
		capability.ToStatusLine:       terminfo.ToStatusLine,
		capability.FromStatusLine:     terminfo.FromStatusLine,
	}
	xoNumbers = map[capability.NumberCap]int{
		capability.MaxColors: terminfo.MaxColors,
		capability.Columns:   terminfo.Columns,
		capability.Lines:     terminfo.Lines,
	}
	xoFlags = map[capability.FlagCap]int{
		capability.EatNewlineGlitch: terminfo.EatNewlineGlitch,
		capability.AutoRightMargin:  terminfo.AutoRightMargin,
		capability.HasStatusLine:    terminfo.HasStatusLine,
	}
)

// SearchPath returns the terminfo directories in lookup order, read from the process environment
// An empty element of TERMINFO_DIRS stands for the system directories
func SearchPath() []string {
	var dirs []string
	if dir := os.Getenv("TERMINFO"); dir != "" {
		dirs = append(dirs, dir)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".terminfo"))
	}
	if list := os.Getenv("TERMINFO_DIRS"); list != "" {
		for _, dir := range strings.Split(list, ":") {
			if dir == "" {
				dirs = append(dirs, systemDirs...)
				continue
			}
			dirs = append(dirs, dir)
		}
	}
	dirs = append(dirs, systemDirs...)

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, dir := range dirs {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

// SystemLoader opens a compiled terminfo file found on SearchPath
func SystemLoader(name string) (Database, error) {
	if name == "" || strings.ContainsRune(name, '/') || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid terminal name %q: %w", name, ErrNotFound)
	}
	for _, dir := range SearchPath() {
		ti, err := terminfo.Open(dir, name)
		if err != nil {
			continue
		}
		return &systemDatabase{name: name, ti: ti}, nil
	}
	return nil, fmt.Errorf("terminfo %s: %w", name, ErrNotFound)
}

type systemDatabase struct {
	name string
	ti   *terminfo.Terminfo
}

func (d *systemDatabase) Name() string {
	if len(d.ti.Names) > 0 {
		return d.ti.Names[0]
	}
	return d.name
}

func (d *systemDatabase) String(c capability.StringCap) (string, bool) {
	idx, ok := xoStrings[c]
	if !ok {
		return "", false
	}
	v, ok := d.ti.Strings[idx]
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (d *systemDatabase) Number(c capability.NumberCap) (int, bool) {
	idx, ok := xoNumbers[c]
	if !ok {
		return 0, false
	}
	v, ok := d.ti.Nums[idx]
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

func (d *systemDatabase) Flag(c capability.FlagCap) bool {
	idx, ok := xoFlags[c]
	if !ok {
		return false
	}
	return d.ti.Bools[idx]
}
