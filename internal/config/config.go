// Package config loads the overlay's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigFileEnv overrides the config file location.
	ConfigFileEnv = "DEBUGPANELS_CONFIG"
	// DefaultConfigFile is relative to the XDG config dirs.
	DefaultConfigFile = "debugpanels/config.toml"
)

// State backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the user configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	State  StateConfig  `toml:"state"`
	Log    LogConfig    `toml:"log"`
}

// LayoutConfig holds panel sizing and spacing.
type LayoutConfig struct {
	Gap                   int     `toml:"gap"`                     // cells between panels (default: 1)
	Color                 string  `toml:"color"`                   // default panel background, lipgloss color string
	DefaultFraction       float64 `toml:"default_fraction"`        // "debug" panel size (default: 0.3)
	DefaultExpandFraction float64 `toml:"default_expand_fraction"` // "debug" panel expanded size (default: 0.8)
}

// StateConfig selects where collapsed/hidden flags persist.
type StateConfig struct {
	Backend   string `toml:"backend"`    // memory, file, redis (default: file)
	File      string `toml:"file"`       // state file; empty uses the XDG state dir
	RedisAddr string `toml:"redis_addr"` // host:port for the redis backend
	RedisHash string `toml:"redis_hash"` // hash key (default: debugpanels:state)
}

// LogConfig configures the structured log file.
type LogConfig struct {
	File  string `toml:"file"`  // empty disables logging
	Level string `toml:"level"` // debug, info, warn, error (default: info)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Gap:                   1,
			DefaultFraction:       0.3,
			DefaultExpandFraction: 0.8,
		},
		State: StateConfig{
			Backend: BackendFile,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path resolves the config file: ConfigFileEnv first, then an existing file
// in the XDG config dirs. Returns "" when no file exists.
func Path() string {
	if p := os.Getenv(ConfigFileEnv); p != "" {
		return p
	}
	p, err := xdg.SearchConfigFile(DefaultConfigFile)
	if err != nil {
		return ""
	}
	return p
}

// Load reads path over the defaults. An empty path or missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	d := Default()
	if c.Layout.Gap < 0 {
		c.Layout.Gap = d.Layout.Gap
	}
	if !(c.Layout.DefaultFraction > 0 && c.Layout.DefaultFraction <= 1) {
		c.Layout.DefaultFraction = d.Layout.DefaultFraction
	}
	// 0 turns expansion off; NaN fails both comparisons.
	if !(c.Layout.DefaultExpandFraction >= 0 && c.Layout.DefaultExpandFraction <= 1) {
		c.Layout.DefaultExpandFraction = d.Layout.DefaultExpandFraction
	}
	switch c.State.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		c.State.Backend = d.State.Backend
	}
	if c.State.Backend == BackendRedis && c.State.RedisAddr == "" {
		c.State.Backend = d.State.Backend
	}
}

// ParsedLevel parses the configured log level, defaulting to info.
func (c LogConfig) ParsedLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
