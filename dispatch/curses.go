package dispatch

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/shellcore/capability"
	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/terminal"
)

var defaultFallbackTerms = []string{"xterm-256color", "xterm", "ansi", "dumb"}

// initCurses sets up the capability store and recomputes everything derived from it
func (d *Dispatcher) initCurses(vars env.Environment) {
	for _, name := range cursesVariables {
		d.mirror(name, vars, d.termLog)
	}
	d.fallbackTerm.Store("")

	if !d.store.Setup("", d.fd) {
		if d.interactive {
			d.warnf("Could not set up terminal.")
			if term, ok := env.GetUnlessEmpty(vars, "TERM"); ok {
				d.warnf("TERM environment variable set to: %s", term.AsString())
				d.warnf("Check that this terminal type is supported on this system.")
			} else {
				d.warnf("TERM environment variable not set.")
			}
		}
		d.setupFallbacks(vars)
	}

	d.applyTermHacks(vars)

	term := ""
	if v, ok := env.GetUnlessEmpty(vars, "TERM"); ok {
		term = v.AsString()
	}
	d.canSetTitle.Store(terminal.SupportsTitle(term, d.ttyName))

	if d.store.IsInitialized() {
		d.termHasXN.Store(d.store.Flag(capability.EatNewlineGlitch))
	}

	d.updateColorSupport(vars)
	fire(d.hooks.ClearLayoutCache)
	d.cursesInitialized.Store(true)
}

// setupFallbacks tries the fallback terminal types without touching $TERM,
// so child processes still see the value the shell was given
func (d *Dispatcher) setupFallbacks(vars env.Environment) {
	current := ""
	if v, ok := env.GetUnlessEmpty(vars, "TERM"); ok {
		current = v.AsString()
	}

	fallbacks := d.cfg.Terminal.FallbackTerms
	if len(fallbacks) == 0 {
		fallbacks = defaultFallbackTerms
	}

	for _, name := range fallbacks {
		if name == current {
			continue
		}
		ok := d.store.Setup(name, d.fd)
		if ok {
			d.warnf("Using fallback terminal type: %s", name)
			d.fallbackTerm.Store(name)
			d.termLog.Debug("fallback terminal", zap.String("term", name))
			return
		}
		d.warnf("Could not set up terminal using the fallback terminal type: %s", name)
	}
}

func (d *Dispatcher) applyTermHacks(vars env.Environment) {
	// Midnight Commander breaks on the carriage return after the prompt
	_, mc := vars.Get("MC_SID")
	d.midnightCommander.Store(mc)
	if mc {
		fire(d.hooks.MidnightCommanderHack)
	}

	if !d.store.IsInitialized() {
		return
	}

	program, _ := env.Lookup(vars, "TERM_PROGRAM")
	term, _ := env.Lookup(vars, "TERM")
	for _, p := range d.patches {
		if !p.Applies(d.goos, program, term) {
			continue
		}
		n := p.Apply(d.store)
		d.termLog.Debug("applied capability patch", zap.String("patch", p.Name), zap.Int("injected", n))
	}
}

// updateColorSupport recomputes the colour capabilities and publishes them
func (d *Dispatcher) updateColorSupport(vars env.Environment) {
	in := terminal.ColorInput{
		Get: func(name string) (string, bool) { return env.Lookup(vars, name) },
	}
	in.MaxColors, in.HasMaxColors = d.store.Number(capability.MaxColors)

	support256, rule256 := terminal.EvalRules(terminal.Rules256, in)
	support24, rule24 := terminal.EvalRules(terminal.Rules24Bit, in)
	d.termLog.Debug("color support",
		zap.Bool("256", support256), zap.String("rule_256", rule256),
		zap.Bool("24bit", support24), zap.String("rule_24bit", rule24))

	var cs terminal.ColorSupport
	if support256 {
		cs |= terminal.Color256
	}
	if support24 {
		cs |= terminal.Color24Bit
	}
	d.colorSupport.Store(int64(cs))
	fire1(d.hooks.ColorSupportChanged, cs)
}
