package terminal

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/shellcore/capability"
)

// ErrNotFound is returned by a Loader that has no entry for the terminal name
var ErrNotFound = errors.New("terminal type not found")

// Database abstracts one opened terminal description.
// Implementations exist for compiled terminfo files and for compiled-in descriptions.
type Database interface {
	// Name returns the primary name of the opened entry
	Name() string

	// String returns a string capability, false when undefined
	String(c capability.StringCap) (string, bool)

	// Number returns a numeric capability, false when undefined
	Number(c capability.NumberCap) (int, bool)

	// Flag returns a boolean capability
	Flag(c capability.FlagCap) bool
}

// Loader opens the database entry for a terminal name
type Loader func(name string) (Database, error)

// ChainLoader tries each loader in order and returns the first success
func ChainLoader(loaders ...Loader) Loader {
	return func(name string) (Database, error) {
		var errs []error
		for _, load := range loaders {
			if load == nil {
				continue
			}
			db, err := load(name)
			if err == nil {
				return db, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, errors.Join(errs...)
	}
}

// DefaultLoader reads the system terminfo database, then the compiled-in descriptions when builtin is set
func DefaultLoader(builtin bool) Loader {
	if builtin {
		return ChainLoader(SystemLoader, BuiltinLoader)
	}
	return SystemLoader
}
