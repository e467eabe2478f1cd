// Package config loads the knobs of the terminal core from the process environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration
type Config struct {
	Logging  LogConfig
	Terminal TerminalConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string   `envconfig:"SHELLCORE_LOG_LEVEL" default:"warn"`
	Development bool     `envconfig:"SHELLCORE_LOG_DEV" default:"false"`
	Categories  []string `envconfig:"SHELLCORE_DEBUG"`
}

// TerminalConfig holds terminal-database configuration
type TerminalConfig struct {
	// BuiltinDatabase enables the compiled-in terminal descriptions when no terminfo file matches
	BuiltinDatabase bool     `envconfig:"SHELLCORE_TERMINFO_BUILTIN" default:"true"`
	FallbackTerms   []string `envconfig:"SHELLCORE_FALLBACK_TERMS" default:"xterm-256color,xterm,ansi,dumb"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "warn",
			Development: false,
		},
		Terminal: TerminalConfig{
			BuiltinDatabase: true,
			FallbackTerms:   []string{"xterm-256color", "xterm", "ansi", "dumb"},
		},
	}
}
