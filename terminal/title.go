package terminal

import "strings"

var (
	titleAllow = map[string]bool{
		"xterm":     true,
		"screen":    true,
		"tmux":      true,
		"nxterm":    true,
		"rxvt":      true,
		"alacritty": true,
		"wezterm":   true,
	}
	titleAllowPrefixes = []string{"xterm-", "screen-", "tmux-"}
	titleDeny          = map[string]bool{
		"linux":  true,
		"dumb":   true,
		"vt100":  true,
		"wsvt25": true,
	}
)

// SupportsTitle guesses whether the terminal accepts title escape sequences.
// Names on neither list fall back to the controlling tty name: virtual consoles don't.
func SupportsTitle(term string, ttyName func() (string, error)) bool {
	if term == "" {
		return false
	}
	if titleAllow[term] {
		return true
	}
	for _, p := range titleAllowPrefixes {
		if strings.HasPrefix(term, p) {
			return true
		}
	}
	if titleDeny[term] {
		return false
	}

	if ttyName == nil {
		return false
	}
	name, err := ttyName()
	if err != nil {
		return false
	}
	return !strings.Contains(name, "tty") && !strings.Contains(name, "/vc/")
}
