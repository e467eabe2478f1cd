package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Debug categories
const (
	TermSupport = "term_support"
	EnvLocale   = "env_locale"
	EnvDispatch = "env_dispatch"
)

// Logger wraps zap.Logger with category gating and a separate warning stream
type Logger struct {
	*zap.Logger
	warn       *zap.Logger
	categories map[string]bool
	all        bool
}

// Config defines logger configuration
type Config struct {
	Level        string // "debug", "info", "warn", "error"
	Development  bool
	OutputPaths  []string
	WarningPaths []string
	Categories   []string // enabled debug categories, "all" enables every category
}

// DefaultConfig returns the configuration used by an interactive shell
func DefaultConfig() Config {
	return Config{
		Level:        "warn",
		Development:  false,
		OutputPaths:  []string{"stderr"},
		WarningPaths: []string{"stderr"},
	}
}

// New creates a new logger with the provided configuration
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encodingFormat(cfg.Development),
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !cfg.Development,
		DisableStacktrace: true,
	}

	base, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	sink, _, err := zap.Open(cfg.WarningPaths...)
	if err != nil {
		return nil, fmt.Errorf("open warning stream: %w", err)
	}
	warnCore := zapcore.NewCore(zapcore.NewConsoleEncoder(warningEncoderConfig()), sink, zapcore.WarnLevel)

	return newLogger(base, zap.New(warnCore), cfg.Categories), nil
}

// NewFromCores assembles a logger from prepared cores, used by tests with zaptest/observer
func NewFromCores(debug, warn zapcore.Core, categories ...string) *Logger {
	return newLogger(zap.New(debug), zap.New(warn), categories)
}

// NewDefault creates a logger with default configuration
func NewDefault() *Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		// Fallback to no-op logger
		return NewNop()
	}
	return logger
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return newLogger(zap.NewNop(), zap.NewNop(), nil)
}

func newLogger(base, warn *zap.Logger, categories []string) *Logger {
	l := &Logger{
		Logger:     base,
		warn:       warn,
		categories: make(map[string]bool, len(categories)),
	}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "all" {
			l.all = true
		}
		if c != "" {
			l.categories[c] = true
		}
	}
	return l
}

// Enabled reports whether a debug category is switched on
func (l *Logger) Enabled(category string) bool {
	return l.all || l.categories[category]
}

// Category returns a named logger for the category, or a no-op logger when disabled
func (l *Logger) Category(category string) *zap.Logger {
	if !l.Enabled(category) {
		return zap.NewNop()
	}
	return l.Named(category)
}

// Warnf writes a message to the warning stream
func (l *Logger) Warnf(format string, args ...any) {
	l.warn.Warn(fmt.Sprintf(format, args...))
}

// Sync flushes both streams
func (l *Logger) Sync() error {
	_ = l.warn.Sync()
	return l.Logger.Sync()
}

// parseLevel converts string level to zapcore.Level
func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

// encodingFormat returns encoding format based on environment
func encodingFormat(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

// encoderConfig returns encoder configuration based on environment
func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		return zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			CallerKey:      "C",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "M",
			StacktraceKey:  "S",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// warningEncoderConfig prints the bare message, the way shell warnings look on a terminal
func warningEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "message",
		LineEnding: zapcore.DefaultLineEnding,
	}
}
