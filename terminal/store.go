package terminal

import (
	"errors"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/shellcore/capability"
	"github.com/lixenwraith/shellcore/logging"
)

// ErrNotInitialized is returned by Set when no terminal database is loaded
var ErrNotInitialized = errors.New("terminal store not initialized")

type override struct {
	cap   capability.StringCap
	value string
}

// Store caches capabilities of one opened terminal description.
// String lookups fill a sorted override table; numbers and flags are read live.
// All values are returned by copy, so nothing outlives the generation that produced it.
type Store struct {
	mu         sync.RWMutex
	loader     Loader
	configured bool // loader follows config rather than the caller
	log        *zap.Logger
	db         Database
	fd         int
	overrides  []override
	generation uint64
}

// NewStore creates an uninitialized store reading descriptions through loader
// A nil loader selects the default databases, which the terminal service may reconfigure
func NewStore(loader Loader) *Store {
	configured := loader == nil
	if configured {
		loader = DefaultLoader(true)
	}
	return &Store{
		loader:     loader,
		configured: configured,
		log:        zap.NewNop(),
		fd:         -1,
	}
}

// SetLogger routes loader diagnostics to the term_support debug category
func (s *Store) SetLogger(l *logging.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		s.log = zap.NewNop()
		return
	}
	s.log = l.Category(logging.TermSupport)
}

// SetLoader replaces the database loader used by subsequent Setup calls
func (s *Store) SetLoader(loader Loader) {
	if loader == nil {
		return
	}
	s.mu.Lock()
	s.loader = loader
	s.mu.Unlock()
}

// Setup opens the description for name, or $TERM when name is empty.
// The previous description is released first; on failure the store stays uninitialized.
func (s *Store) Setup(name string, fd int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()

	if name == "" {
		name = os.Getenv("TERM")
	}
	if name == "" {
		s.log.Debug("setup skipped, no terminal name")
		return false
	}

	db, err := s.loader(name)
	if err != nil {
		s.log.Debug("setup failed", zap.String("term", name), zap.Error(err))
		return false
	}

	s.db = db
	s.fd = fd
	s.overrides = nil
	s.generation++
	s.log.Debug("setup complete",
		zap.String("term", name),
		zap.String("entry", db.Name()),
		zap.Uint64("generation", s.generation))
	return true
}

// Reset releases the current description. Safe to call when uninitialized
func (s *Store) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

func (s *Store) resetLocked() {
	if s.db == nil {
		return
	}
	s.db = nil
	s.fd = -1
	s.overrides = nil
	s.generation++
}

// IsInitialized reports whether a description is loaded
func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// Generation changes on every Setup and every Reset that released a description
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// TermName returns the primary name of the loaded description
func (s *Store) TermName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ""
	}
	return s.db.Name()
}

func (s *Store) search(c capability.StringCap) (int, bool) {
	i := sort.Search(len(s.overrides), func(i int) bool { return s.overrides[i].cap >= c })
	return i, i < len(s.overrides) && s.overrides[i].cap == c
}

// String returns a string capability, consulting overrides before the database.
// A database hit is cached as an override.
func (s *Store) String(c capability.StringCap) (string, bool) {
	s.mu.RLock()
	if s.db == nil {
		s.mu.RUnlock()
		return "", false
	}
	if i, ok := s.search(c); ok {
		v := s.overrides[i].value
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return "", false
	}
	i, ok := s.search(c)
	if ok {
		return s.overrides[i].value, true
	}
	v, ok := s.db.String(c)
	if !ok {
		return "", false
	}
	s.overrides = append(s.overrides, override{})
	copy(s.overrides[i+1:], s.overrides[i:])
	s.overrides[i] = override{cap: c, value: v}
	return v, true
}

// Number returns a numeric capability. Columns and lines follow the window size when fd is a tty
func (s *Store) Number(c capability.NumberCap) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return 0, false
	}
	if c == capability.Columns || c == capability.Lines {
		if cols, rows, ok := windowSize(s.fd); ok {
			if c == capability.Columns {
				return cols, true
			}
			return rows, true
		}
	}
	v, ok := s.db.Number(c)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// Flag returns a boolean capability, false when uninitialized
func (s *Store) Flag(c capability.FlagCap) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return false
	}
	return s.db.Flag(c)
}

// Set installs an override that wins over the database until the next Setup or Reset
func (s *Store) Set(c capability.StringCap, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrNotInitialized
	}
	i, ok := s.search(c)
	if ok {
		s.overrides[i].value = value
		return nil
	}
	s.overrides = append(s.overrides, override{})
	copy(s.overrides[i+1:], s.overrides[i:])
	s.overrides[i] = override{cap: c, value: value}
	return nil
}

// Overrides returns a copy of the cached and injected string capabilities
func (s *Store) Overrides() map[capability.StringCap]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[capability.StringCap]string, len(s.overrides))
	for _, o := range s.overrides {
		out[o.cap] = o.value
	}
	return out
}

var process = NewStore(nil)

// Term returns the process-wide store
func Term() *Store { return process }

// Setup initializes the process-wide store
func Setup(name string, fd int) bool { return process.Setup(name, fd) }

// Reset releases the process-wide store
func Reset() { process.Reset() }

// IsInitialized reports whether the process-wide store holds a description
func IsInitialized() bool { return process.IsInitialized() }
