// Package config loads and persists blockfall configuration from a YAML
// file. A missing file is not an error: callers get the defaults, and the
// file is only written when the user saves changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "BLOCKFALL_CONFIG"

// Config holds all blockfall settings.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Theme   string        `yaml:"theme"` // auto, light, dark
	Scores  ScoresConfig  `yaml:"scores"`
	Logging LoggingConfig `yaml:"logging"`
}

// BoardConfig sets the playfield dimensions and gravity baseline.
type BoardConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	BaseInterval string `yaml:"base_interval"` // Go duration, e.g. "800ms"
}

// ScoresConfig configures the high-score store.
type ScoresConfig struct {
	DatabasePath string `yaml:"database_path"`
	Keep         int    `yaml:"keep"` // rows shown by the scores table
}

// LoggingConfig configures the debug log file. Logging is off by default:
// a game should not scatter log files unless asked to.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // debug, info, warn, error
	File    string `yaml:"file"`
}

// DefaultConfig returns the standard 10x20 well with 800ms gravity.
func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			Width:        10,
			Height:       20,
			BaseInterval: "800ms",
		},
		Theme: "auto",
		Scores: ScoresConfig{
			DatabasePath: filepath.Join(defaultDataDir(), "scores.db"),
			Keep:         10,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			File:    filepath.Join(defaultDataDir(), "blockfall.log"),
		},
	}
}

// DefaultPath returns the config file location: $BLOCKFALL_CONFIG if set,
// otherwise <user config dir>/blockfall/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(defaultDataDir(), "config.yaml")
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		// fall back to the working directory rather than failing startup
		return ".blockfall"
	}
	return filepath.Join(base, "blockfall")
}

// Load reads the config at path, filling gaps with defaults. A missing file
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks ranges that would make the game unplayable or the TUI
// unrenderable.
func (c *Config) Validate() error {
	if c.Board.Width < 4 || c.Board.Width > 40 {
		return fmt.Errorf("board width %d out of range [4,40]", c.Board.Width)
	}
	if c.Board.Height < 8 || c.Board.Height > 50 {
		return fmt.Errorf("board height %d out of range [8,50]", c.Board.Height)
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	switch c.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("unknown theme %q (want auto, light or dark)", c.Theme)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// Interval parses the gravity baseline.
func (c *Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Board.BaseInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid base_interval %q: %w", c.Board.BaseInterval, err)
	}
	if d < 50*time.Millisecond || d > 5*time.Second {
		return 0, fmt.Errorf("base_interval %s out of range [50ms,5s]", d)
	}
	return d, nil
}
