//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTTY is returned by TTYName for descriptors not attached to a terminal
var ErrNotTTY = errors.New("not a terminal")

// TTYName returns the device path of the terminal open on fd
func TTYName(fd int) (string, error) {
	if !term.IsTerminal(fd) {
		return "", ErrNotTTY
	}
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return "", fmt.Errorf("fstat fd %d: %w", fd, err)
	}

	for _, link := range []string{"/proc/self/fd/", "/dev/fd/"} {
		path, err := os.Readlink(link + strconv.Itoa(fd))
		if err == nil && sameDevice(path, &st) {
			return path, nil
		}
	}

	for _, dir := range []string{"/dev/pts", "/dev"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if sameDevice(path, &st) {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("fd %d: %w", fd, ErrNotTTY)
}

func sameDevice(path string, want *unix.Stat_t) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFCHR && uint64(st.Rdev) == uint64(want.Rdev)
}

// windowSize returns the kernel's idea of the terminal dimensions
func windowSize(fd int) (cols, rows int, ok bool) {
	if fd < 0 {
		return 0, 0, false
	}
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 0, 0, false
	}
	return int(ws.Col), int(ws.Row), true
}
