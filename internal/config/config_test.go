package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Board.Width)
	assert.Equal(t, 20, cfg.Board.Height)
	assert.Equal(t, "auto", cfg.Theme)
	assert.False(t, cfg.Logging.Enabled)

	iv, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, iv)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Board.Width = 12
	cfg.Board.BaseInterval = "500ms"
	cfg.Theme = "dark"
	cfg.Logging.Enabled = true
	cfg.Logging.Level = "debug"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 10, cfg.Board.Width, "unset fields keep defaults")
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"tiny board":    "board:\n  width: 2\n  height: 20\n  base_interval: 800ms\n",
		"bad interval":  "board:\n  width: 10\n  height: 20\n  base_interval: fast\n",
		"slow interval": "board:\n  width: 10\n  height: 20\n  base_interval: 10s\n",
		"bad theme":     "theme: solarized\n",
		"bad level":     "logging:\n  level: trace\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())
}
