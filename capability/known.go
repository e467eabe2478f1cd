package capability

import "sort"

// String capabilities
const (
	EnterItalicsMode   StringCap = 'Z'<<8 | 'H' // sitm
	ExitItalicsMode    StringCap = 'Z'<<8 | 'R' // ritm
	EnterDimMode       StringCap = 'm'<<8 | 'h' // dim
	EnterBoldMode      StringCap = 'm'<<8 | 'd' // bold
	ExitAttributeMode  StringCap = 'm'<<8 | 'e' // sgr0
	EnterUnderlineMode StringCap = 'u'<<8 | 's' // smul
	EnterReverseMode   StringCap = 'm'<<8 | 'r' // rev
	SetAForeground     StringCap = 'A'<<8 | 'F' // setaf
	SetABackground     StringCap = 'A'<<8 | 'B' // setab
	ClearScreen        StringCap = 'c'<<8 | 'l' // clear
	Bell               StringCap = 'b'<<8 | 'l' // bel
	ToStatusLine       StringCap = 't'<<8 | 's' // tsl
	FromStatusLine     StringCap = 'f'<<8 | 's' // fsl
)

// Number capabilities
const (
	MaxColors NumberCap = 'C'<<8 | 'o' // colors
	Columns   NumberCap = 'c'<<8 | 'o' // cols
	Lines     NumberCap = 'l'<<8 | 'i' // lines
)

// Flag capabilities
const (
	EatNewlineGlitch FlagCap = 'x'<<8 | 'n' // xenl
	AutoRightMargin  FlagCap = 'a'<<8 | 'm' // am
	HasStatusLine    FlagCap = 'h'<<8 | 's' // hs
)

// Info describes a known capability
type Info struct {
	ID      ID
	Name    string // terminfo long name
	Capname string // terminfo short name
}

var known = []Info{
	{ID{EnterItalicsMode.Code(), KindString}, "enter_italics_mode", "sitm"},
	{ID{ExitItalicsMode.Code(), KindString}, "exit_italics_mode", "ritm"},
	{ID{EnterDimMode.Code(), KindString}, "enter_dim_mode", "dim"},
	{ID{EnterBoldMode.Code(), KindString}, "enter_bold_mode", "bold"},
	{ID{ExitAttributeMode.Code(), KindString}, "exit_attribute_mode", "sgr0"},
	{ID{EnterUnderlineMode.Code(), KindString}, "enter_underline_mode", "smul"},
	{ID{EnterReverseMode.Code(), KindString}, "enter_reverse_mode", "rev"},
	{ID{SetAForeground.Code(), KindString}, "set_a_foreground", "setaf"},
	{ID{SetABackground.Code(), KindString}, "set_a_background", "setab"},
	{ID{ClearScreen.Code(), KindString}, "clear_screen", "clear"},
	{ID{Bell.Code(), KindString}, "bell", "bel"},
	{ID{ToStatusLine.Code(), KindString}, "to_status_line", "tsl"},
	{ID{FromStatusLine.Code(), KindString}, "from_status_line", "fsl"},
	{ID{MaxColors.Code(), KindNumber}, "max_colors", "colors"},
	{ID{Columns.Code(), KindNumber}, "columns", "cols"},
	{ID{Lines.Code(), KindNumber}, "lines", "lines"},
	{ID{EatNewlineGlitch.Code(), KindFlag}, "eat_newline_glitch", "xenl"},
	{ID{AutoRightMargin.Code(), KindFlag}, "auto_right_margin", "am"},
	{ID{HasStatusLine.Code(), KindFlag}, "has_status_line", "hs"},
}

func init() {
	sort.Slice(known, func(i, j int) bool { return known[i].ID.Less(known[j].ID) })
}

// Lookup resolves a two-character code to a known capability
func Lookup(code string) (Info, bool) {
	c, err := ParseCode(code)
	if err != nil {
		return Info{}, false
	}
	i := sort.Search(len(known), func(i int) bool { return known[i].ID.Code >= c })
	if i < len(known) && known[i].ID.Code == c {
		return known[i], true
	}
	return Info{}, false
}

// Known returns all known capabilities ordered by code
func Known() []Info {
	out := make([]Info, len(known))
	copy(out, known)
	return out
}
