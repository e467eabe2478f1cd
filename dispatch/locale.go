package dispatch

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/locale"
	"github.com/lixenwraith/shellcore/terminal"
)

// initLocale re-resolves the process locale from the shell's view of the locale variables
func (d *Dispatcher) initLocale(vars env.Environment) {
	oldMessages := d.loc.Query(locale.LCMessages)

	for _, name := range localeVariables {
		d.mirror(name, vars, d.locLog)
	}

	resolved, ok := d.loc.Set(locale.LCAll, "")
	if !ok {
		d.locLog.Debug("locale from environment unavailable, keeping previous")
		resolved = d.loc.Query(locale.LCAll)
	}

	fix := true
	if v, ok := env.GetUnlessEmpty(vars, "fish_allow_singlebyte_locale"); ok {
		fix = !terminal.BoolFromString(v.AsString())
	}

	// Single-byte encodings break wide character handling, try hard to get a UTF-8 one
	if fix && d.loc.MaxCharBytes() == 1 {
		d.locLog.Debug("have singlebyte locale, trying to fix")
		for _, name := range utf8Locales {
			d.loc.Set(locale.LCCtype, name)
			if d.loc.MaxCharBytes() > 1 {
				d.locLog.Debug("fixed locale", zap.String("locale", name))
				break
			}
		}
		if d.loc.MaxCharBytes() == 1 {
			d.locLog.Debug("failed to fix locale")
		}
	}

	// Numbers always use '.' as the decimal separator
	d.loc.Set(locale.LCNumeric, "C")

	newMessages := d.loc.Query(locale.LCMessages)
	d.locLog.Debug("locale initialized",
		zap.String("setlocale", resolved),
		zap.String("old_messages", oldMessages),
		zap.String("new_messages", newMessages))

	if oldMessages != newMessages {
		d.tr.Invalidate(newMessages)
		fire1(d.hooks.TranslationsChanged, newMessages)
	}
}
