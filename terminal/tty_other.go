//go:build !unix

package terminal

import "errors"

// ErrNotTTY is returned by TTYName for descriptors not attached to a terminal
var ErrNotTTY = errors.New("not a terminal")

// TTYName is unsupported off unix
func TTYName(fd int) (string, error) {
	return "", ErrNotTTY
}

func windowSize(fd int) (cols, rows int, ok bool) {
	return 0, 0, false
}
