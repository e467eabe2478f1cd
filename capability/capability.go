// Package capability identifies terminal capabilities by their two-character termcap code.
//
// A capability is one of three kinds: a string (usually an escape sequence), a number
// (a limit such as the colour count) or a flag. The kind is carried by the Go type so a
// lookup can only be issued against the matching query of the terminal store.
package capability

import "fmt"

// Kind tags a capability as String, Number or Flag
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindFlag
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindFlag:
		return "flag"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Code is a two-byte termcap code packed big-endian, so integer ordering matches byte ordering
type Code uint16

// NewCode packs a two-character code. It panics on any other length
func NewCode(s string) Code {
	if len(s) != 2 {
		panic(fmt.Sprintf("capability: invalid termcap code %q", s))
	}
	return Code(uint16(s[0])<<8 | uint16(s[1]))
}

// ParseCode is NewCode without the panic
func ParseCode(s string) (Code, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("capability: termcap code %q must be two characters", s)
	}
	return NewCode(s), nil
}

func (c Code) String() string {
	return string([]byte{byte(c >> 8), byte(c)})
}

// StringCap identifies a string capability
type StringCap Code

// NumberCap identifies a numeric capability
type NumberCap Code

// FlagCap identifies a boolean capability
type FlagCap Code

func (c StringCap) Code() Code     { return Code(c) }
func (c StringCap) String() string { return Code(c).String() }
func (c NumberCap) Code() Code     { return Code(c) }
func (c NumberCap) String() string { return Code(c).String() }
func (c FlagCap) Code() Code       { return Code(c) }
func (c FlagCap) String() string   { return Code(c).String() }

// ID is the kind-tagged dynamic form of a capability
type ID struct {
	Code Code
	Kind Kind
}

func (id ID) String() string {
	return id.Code.String() + "/" + id.Kind.String()
}

// Less orders identifiers by code bytes only
func (id ID) Less(other ID) bool {
	return id.Code < other.Code
}
