package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileIsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Layout.Gap)
	assert.Equal(t, BackendFile, cfg.State.Backend)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[layout]
gap = 2
color = "#503030"
default_fraction = 0.2

[state]
backend = "redis"
redis_addr = "localhost:6379"

[log]
file = "/tmp/debugpanels.log"
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Layout.Gap)
	assert.Equal(t, "#503030", cfg.Layout.Color)
	assert.Equal(t, 0.2, cfg.Layout.DefaultFraction)
	assert.Equal(t, 0.8, cfg.Layout.DefaultExpandFraction)
	assert.Equal(t, BackendRedis, cfg.State.Backend)
	assert.Equal(t, "localhost:6379", cfg.State.RedisAddr)
	assert.Equal(t, log.DebugLevel, cfg.Log.ParsedLevel())
}

func TestLoad_NormalizesInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[layout]
gap = -4
default_fraction = 3.5

[state]
backend = "redis"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Layout.Gap)
	assert.Equal(t, 0.3, cfg.Layout.DefaultFraction)
	// redis without an address falls back to the file store
	assert.Equal(t, BackendFile, cfg.State.Backend)
}

func TestLoad_NormalizesNonFiniteFractions(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"nan", "default_fraction = nan\ndefault_expand_fraction = nan"},
		{"inf", "default_fraction = inf\ndefault_expand_fraction = -inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "[layout]\n"+tt.layout+"\n"))
			require.NoError(t, err)
			assert.Equal(t, 0.3, cfg.Layout.DefaultFraction)
			assert.Equal(t, 0.8, cfg.Layout.DefaultExpandFraction)
		})
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "[layout\ngap = ")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "c.toml")
	t.Setenv(ConfigFileEnv, want)
	assert.Equal(t, want, Path())
}

func TestParsedLevel_Fallback(t *testing.T) {
	assert.Equal(t, log.InfoLevel, LogConfig{Level: "loud"}.ParsedLevel())
	assert.Equal(t, log.WarnLevel, LogConfig{Level: "WARN"}.ParsedLevel())
}
