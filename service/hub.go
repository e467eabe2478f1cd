package service

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrDuplicate         = errors.New("service already registered")
	ErrMissingDependency = errors.New("dependency not registered")
	ErrRunning           = errors.New("services already running")
)

// Hub starts services in registration order and stops them in reverse
// A service may only depend on services registered before it, so the capability
// store is always released after the dispatcher that reads it
type Hub struct {
	mu       sync.Mutex
	services []Service
	index    map[string]int
	running  int // services[:running] completed Start
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{index: make(map[string]int)}
}

// Register appends svc after checking its name and dependencies
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, ok := h.index[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrDuplicate)
	}
	for _, dep := range svc.Dependencies() {
		if _, ok := h.index[dep]; !ok {
			return fmt.Errorf("%s needs %s: %w", name, dep, ErrMissingDependency)
		}
	}
	h.index[name] = len(h.services)
	h.services = append(h.services, svc)
	return nil
}

// Lookup returns the named service as T
func Lookup[T Service](h *Hub, name string) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	i, ok := h.index[name]
	if !ok {
		return zero, false
	}
	typed, ok := h.services[i].(T)
	return typed, ok
}

// Start hands in to every service, then starts them in order
// A failed Start stops the services already started
func (h *Hub) Start(in Inputs) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running > 0 {
		return ErrRunning
	}
	for _, svc := range h.services {
		if err := svc.Init(in); err != nil {
			return fmt.Errorf("init %s: %w", svc.Name(), err)
		}
	}
	for i, svc := range h.services {
		if err := svc.Start(); err != nil {
			h.running = i
			return errors.Join(fmt.Errorf("start %s: %w", svc.Name(), err), h.stopLocked())
		}
	}
	h.running = len(h.services)
	return nil
}

// Stop stops running services in reverse order and joins their errors
func (h *Hub) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopLocked()
}

func (h *Hub) stopLocked() error {
	var errs []error
	for i := h.running - 1; i >= 0; i-- {
		if err := h.services[i].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", h.services[i].Name(), err))
		}
	}
	h.running = 0
	return errors.Join(errs...)
}

// Names returns service names in start order
func (h *Hub) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, len(h.services))
	for i, svc := range h.services {
		names[i] = svc.Name()
	}
	return names
}
