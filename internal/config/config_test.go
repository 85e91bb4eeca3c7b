package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "static/png_output", cfg.Raster.OutputDir)
	assert.Equal(t, 24*time.Hour, cfg.Raster.Retention)
	assert.Equal(t, 24*time.Hour, cfg.Raster.SweepInterval)
	assert.Equal(t, int64(100<<20), cfg.Server.MaxBodyBytes)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
raster:
  output_dir: /tmp/png
  retention: 1h
observability:
  log_level: debug
  log_format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/png", cfg.Raster.OutputDir)
	assert.Equal(t, time.Hour, cfg.Raster.Retention)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	// Untouched sections keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("OUTPUT_DIR", "/data/png")
	t.Setenv("RASTER_RETENTION", "48h")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/data/png", cfg.Raster.OutputDir)
	assert.Equal(t, 48*time.Hour, cfg.Raster.Retention)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"empty output dir", func(c *Config) { c.Raster.OutputDir = "" }},
		{"zero retention", func(c *Config) { c.Raster.Retention = 0 }},
		{"zero sweep interval", func(c *Config) { c.Raster.SweepInterval = 0 }},
		{"zero fetch timeout", func(c *Config) { c.Fetch.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
