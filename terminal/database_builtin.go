package terminal

import (
	"fmt"

	tinfo "github.com/gdamore/tcell/v2/terminfo"
	_ "github.com/gdamore/tcell/v2/terminfo/extended" // registers the compiled-in descriptions

	"github.com/lixenwraith/shellcore/capability"
)

// BuiltinLoader returns a compiled-in description, for systems without terminfo files
func BuiltinLoader(name string) (Database, error) {
	ti, err := tinfo.LookupTerminfo(name)
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, ErrNotFound)
	}
	return &builtinDatabase{ti: ti}, nil
}

type builtinDatabase struct {
	ti *tinfo.Terminfo
}

func (d *builtinDatabase) Name() string {
	return d.ti.Name
}

func (d *builtinDatabase) String(c capability.StringCap) (string, bool) {
	var v string
	switch c {
	case capability.EnterItalicsMode:
		v = d.ti.Italic
	case capability.EnterDimMode:
		v = d.ti.Dim
	case capability.EnterBoldMode:
		v = d.ti.Bold
	case capability.ExitAttributeMode:
		v = d.ti.AttrOff
	case capability.EnterUnderlineMode:
		v = d.ti.Underline
	case capability.EnterReverseMode:
		v = d.ti.Reverse
	case capability.SetAForeground:
		v = d.ti.SetFg
	case capability.SetABackground:
		v = d.ti.SetBg
	case capability.ClearScreen:
		v = d.ti.Clear
	}
	return v, v != ""
}

func (d *builtinDatabase) Number(c capability.NumberCap) (int, bool) {
	var v int
	switch c {
	case capability.MaxColors:
		v = d.ti.Colors
	case capability.Columns:
		v = d.ti.Columns
	case capability.Lines:
		v = d.ti.Lines
	}
	return v, v > 0
}

func (d *builtinDatabase) Flag(c capability.FlagCap) bool {
	if c == capability.AutoRightMargin {
		return d.ti.AutoMargin
	}
	return false
}
