package terminal

import (
	"errors"
	"runtime"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ttyIs(name string) func() (string, error) {
	return func() (string, error) { return name, nil }
}

func TestSupportsTitle(t *testing.T) {
	tests := []struct {
		term     string
		tty      func() (string, error)
		expected bool
	}{
		{"xterm-256color", nil, true},
		{"xterm", nil, true},
		{"tmux-256color", nil, true},
		{"alacritty", nil, true},
		{"dumb", ttyIs("/dev/pts/0"), false},
		{"vt100", ttyIs("/dev/pts/0"), false},
		{"linux", nil, false},
		{"", ttyIs("/dev/pts/0"), false},
		{"foot", ttyIs("/dev/tty1"), false},
		{"foot", ttyIs("/dev/vc/1"), false},
		{"foot", ttyIs("/dev/pts/3"), true},
		{"foot", func() (string, error) { return "", errors.New("no tty") }, false},
		{"foot", nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SupportsTitle(tt.term, tt.tty), tt.term)
	}
}

func TestTTYNameOnPty(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no pty support")
	}
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	name, err := TTYName(int(tty.Fd()))
	require.NoError(t, err)
	assert.Equal(t, tty.Name(), name)

	if runtime.GOOS == "linux" {
		assert.True(t, SupportsTitle("foot", func() (string, error) { return TTYName(int(tty.Fd())) }))
	}
}

func TestTTYNameNotTerminal(t *testing.T) {
	_, err := TTYName(-1)
	assert.ErrorIs(t, err, ErrNotTTY)
}
