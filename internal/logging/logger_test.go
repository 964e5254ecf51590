package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blockfall/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDisabledLoggerIsNop(t *testing.T) {
	logger, err := New(config.LoggingConfig{Enabled: false}, false)
	require.NoError(t, err)
	// must not panic and must not create files
	logger.Info("ignored")
	require.NoError(t, logger.Sync())
}

func TestEnabledLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")
	logger, err := New(config.LoggingConfig{Enabled: true, Level: "info", File: path}, false)
	require.NoError(t, err)

	logger.Info("session started", zap.Int("width", 10))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
}

func TestVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	logger, err := New(config.LoggingConfig{Enabled: false, Level: "error", File: path}, true)
	require.NoError(t, err)

	logger.Debug("drop trace")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "drop trace"))
}

func TestRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Enabled: true, Level: "loud"}, false)
	assert.Error(t, err)
}
