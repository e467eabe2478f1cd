package terminal

import (
	"sync"

	"github.com/lixenwraith/shellcore/service"
)

// StoreService manages the capability store lifecycle inside a service hub
type StoreService struct {
	store   *Store
	mu      sync.Mutex
	running bool
}

// NewService wraps store, the process store when nil
func NewService(store *Store) *StoreService {
	if store == nil {
		store = Term()
	}
	return &StoreService{store: store}
}

// Name implements service.Service
func (s *StoreService) Name() string {
	return "terminal"
}

// Dependencies implements service.Service
func (s *StoreService) Dependencies() []string {
	return nil
}

// Init implements service.Service
// The configured databases replace the default loader only; a loader passed to NewStore stays
func (s *StoreService) Init(in service.Inputs) error {
	if in.Config != nil && s.store.configured {
		s.store.SetLoader(DefaultLoader(in.Config.Terminal.BuiltinDatabase))
	}
	if in.Logger != nil {
		s.store.SetLogger(in.Logger)
	}
	return nil
}

// Start implements service.Service
// Setup is left to the curses initializer, which knows the fallback names
func (s *StoreService) Start() error {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	return nil
}

// Stop implements service.Service - releases the description
func (s *StoreService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	s.store.Reset()
	return nil
}

// Store returns the wrapped store
func (s *StoreService) Store() *Store {
	return s.store
}
