package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.False(t, cfg.Development)
	assert.Equal(t, []string{"stderr"}, cfg.WarningPaths)
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestCategoryGating(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCores(core, zapcore.NewNopCore(), TermSupport)

	assert.True(t, l.Enabled(TermSupport))
	assert.False(t, l.Enabled(EnvLocale))

	l.Category(TermSupport).Debug("visible", zap.String("term", "xterm"))
	l.Category(EnvLocale).Debug("hidden")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Message)
	assert.Equal(t, TermSupport, entries[0].LoggerName)
}

func TestAllCategories(t *testing.T) {
	l := NewFromCores(zapcore.NewNopCore(), zapcore.NewNopCore(), "all")
	assert.True(t, l.Enabled(EnvDispatch))
	assert.True(t, l.Enabled("anything"))
}

func TestWarnfWritesWarningStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	cfg := DefaultConfig()
	cfg.OutputPaths = []string{filepath.Join(t.TempDir(), "debug.log")}
	cfg.WarningPaths = []string{path}

	l, err := New(cfg)
	require.NoError(t, err)
	l.Warnf("Ignoring invalid %s", "$fish_read_limit")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ignoring invalid $fish_read_limit", strings.TrimSpace(string(data)))
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Warnf("nothing %d", 1)
		l.Category(TermSupport).Debug("nothing")
	})
}
