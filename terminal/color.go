package terminal

import (
	"strconv"
	"strings"
)

// ColorSupport is the pair of colour capabilities exposed to the renderer
type ColorSupport uint8

const (
	Color256   ColorSupport = 1 << iota // xterm-256 palette
	Color24Bit                          // 24-bit RGB
)

// Has reports whether every bit of flag is set
func (c ColorSupport) Has(flag ColorSupport) bool {
	return c&flag == flag
}

func (c ColorSupport) String() string {
	switch c {
	case 0:
		return "none"
	case Color256:
		return "256"
	case Color24Bit:
		return "24bit"
	default:
		return "256|24bit"
	}
}

// ColorInput is everything the colour cascades look at
type ColorInput struct {
	// Get returns a shell variable as a single string, false when unset
	Get func(name string) (string, bool)

	// MaxColors is the terminfo colors number, meaningful when HasMaxColors is set
	MaxColors    int
	HasMaxColors bool
}

func (in ColorInput) lookup(name string) (string, bool) {
	if in.Get == nil {
		return "", false
	}
	return in.Get(name)
}

func (in ColorInput) term() string {
	v, _ := in.lookup("TERM")
	return v
}

// ColorRule is one step of a cascade. Match returns the decision and whether the rule applied
type ColorRule struct {
	Name  string
	Match func(in ColorInput) (supported bool, matched bool)
}

// BoolFromString follows the shell convention: true iff the first character is one of YTyt1
func BoolFromString(s string) bool {
	return s != "" && strings.ContainsRune("YTyt1", rune(s[0]))
}

func overrideRule(name string) ColorRule {
	return ColorRule{
		Name: name,
		Match: func(in ColorInput) (bool, bool) {
			v, ok := in.lookup(name)
			if !ok {
				return false, false
			}
			return BoolFromString(v), true
		},
	}
}

func termContains(sub string) ColorRule {
	return ColorRule{
		Name: "TERM contains " + sub,
		Match: func(in ColorInput) (bool, bool) {
			if strings.Contains(in.term(), sub) {
				return true, true
			}
			return false, false
		},
	}
}

// Rules256 decides 256-colour support, first match wins
var Rules256 = []ColorRule{
	overrideRule("fish_term256"),
	termContains("256color"),
	termContains("xterm"),
	{
		Name: "max colors",
		Match: func(in ColorInput) (bool, bool) {
			if !in.HasMaxColors {
				return false, false
			}
			return in.MaxColors >= 256, true
		},
	},
}

// Rules24Bit decides 24-bit colour support, first match wins
var Rules24Bit = []ColorRule{
	overrideRule("fish_term24bit"),
	{
		// screen and eterm swallow or garble truecolor sequences
		Name: "screen or eterm",
		Match: func(in ColorInput) (bool, bool) {
			if _, ok := in.lookup("STY"); ok || strings.HasPrefix(in.term(), "eterm") {
				return false, true
			}
			return false, false
		},
	},
	{
		Name: "max colors",
		Match: func(in ColorInput) (bool, bool) {
			if in.HasMaxColors && in.MaxColors > 32767 {
				return true, true
			}
			return false, false
		},
	},
	{
		Name: "COLORTERM",
		Match: func(in ColorInput) (bool, bool) {
			v, ok := in.lookup("COLORTERM")
			if !ok {
				return false, false
			}
			return v == "truecolor" || v == "24bit", true
		},
	},
	{
		Name: "konsole",
		Match: func(in ColorInput) (bool, bool) {
			_, version := in.lookup("KONSOLE_VERSION")
			_, profile := in.lookup("KONSOLE_PROFILE_NAME")
			if version || profile {
				return true, true
			}
			return false, false
		},
	},
	{
		// Only session ids without a colon enable truecolor
		Name: "iterm",
		Match: func(in ColorInput) (bool, bool) {
			v, ok := in.lookup("ITERM_SESSION_ID")
			if !ok {
				return false, false
			}
			return !strings.Contains(v, ":"), true
		},
	},
	{
		Name: "TERM prefix st-",
		Match: func(in ColorInput) (bool, bool) {
			if strings.HasPrefix(in.term(), "st-") {
				return true, true
			}
			return false, false
		},
	},
	{
		Name: "VTE_VERSION",
		Match: func(in ColorInput) (bool, bool) {
			v, ok := in.lookup("VTE_VERSION")
			if !ok {
				return false, false
			}
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return false, false
			}
			if n > 3600 {
				return true, true
			}
			return false, false
		},
	},
}

// EvalRules runs a cascade and returns the decision with the name of the rule that made it.
// The name is empty when no rule matched and the answer defaulted to false.
func EvalRules(rules []ColorRule, in ColorInput) (bool, string) {
	for _, r := range rules {
		if v, ok := r.Match(in); ok {
			return v, r.Name
		}
	}
	return false, ""
}

// ResolveColorSupport evaluates both cascades
func ResolveColorSupport(in ColorInput) ColorSupport {
	var cs ColorSupport
	if ok, _ := EvalRules(Rules256, in); ok {
		cs |= Color256
	}
	if ok, _ := EvalRules(Rules24Bit, in); ok {
		cs |= Color24Bit
	}
	return cs
}
