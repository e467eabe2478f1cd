package dispatch

import (
	"errors"
	"sync"

	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/service"
)

// Service runs a Dispatcher inside a service hub and makes it the principal one
type Service struct {
	opts Options
	vars env.Environment

	mu      sync.Mutex
	d       *Dispatcher
	running bool
}

// NewService creates the service. Config and Logger may be left empty and supplied through Init
func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "dispatch"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return []string{"terminal"}
}

// Init implements service.Service
// Config and Logger fill the options left empty at construction; Vars is required
func (s *Service) Init(in service.Inputs) error {
	if s.opts.Config == nil {
		s.opts.Config = in.Config
	}
	if s.opts.Logger == nil {
		s.opts.Logger = in.Logger
	}
	s.vars = in.Vars
	if s.vars == nil {
		return errors.New("dispatch service needs a variable snapshot")
	}

	s.mu.Lock()
	s.d = New(s.opts)
	s.mu.Unlock()
	return nil
}

// Start implements service.Service - runs the startup handlers
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d == nil {
		return errors.New("dispatch service not initialized")
	}
	if s.running {
		return nil
	}
	s.d.Init(s.vars)
	SetPrincipal(s.d)
	s.running = true
	return nil
}

// Stop implements service.Service
// The description itself is released by the terminal service, which stops after this one
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	s.d.cursesInitialized.Store(false)
	return nil
}

// Dispatcher returns the dispatcher built by Init
func (s *Service) Dispatcher() *Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d
}
