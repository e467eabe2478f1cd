// Package service runs the long-lived parts of the shell core, the capability store and
// the variable dispatcher, through one start/stop lifecycle.
package service

import (
	"github.com/lixenwraith/shellcore/config"
	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/logging"
)

// Inputs is what the host hands every service before startup
type Inputs struct {
	Config *config.Config  // nil keeps each service's own default
	Logger *logging.Logger // nil keeps each service's own logger
	Vars   env.Environment // shell variables at startup
}

// Service is one subsystem owning process-wide state
//
// Lifecycle:
//  1. Init(in) - take configuration, no side effects on the terminal or locale
//  2. Start() - first computation of derived state
//  3. Stop() - release what Start acquired, idempotent
type Service interface {
	// Name is the unique identifier other services depend on
	Name() string

	// Dependencies names services that must start before this one and stop after it
	Dependencies() []string

	Init(in Inputs) error
	Start() error
	Stop() error
}
