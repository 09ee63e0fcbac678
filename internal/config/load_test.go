package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies the values used when neither a file nor
// environment variables are present.
func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TIENDA_SERVER_PORT", "")
	t.Setenv("TIENDA_SERVER_LOG_LEVEL", "")

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, DefaultUpstreamURL, cfg.Upstream.BaseURL)
	assert.Equal(t, 10, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, "fixtures/api-responses", cfg.Check.OutputDir)
	assert.Equal(t, 30, cfg.Check.TimeoutSeconds)
}

// TestLoadFromEnv verifies that environment variables override defaults.
func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TIENDA_SERVER_PORT", "9090")
	t.Setenv("TIENDA_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TIENDA_UPSTREAM_BASE_URL", "http://localhost:3000")
	t.Setenv("TIENDA_UPSTREAM_TIMEOUT_SECONDS", "3")
	t.Setenv("TIENDA_CHECK_OUTPUT_DIR", "out")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:3000", cfg.Upstream.BaseURL)
	assert.Equal(t, 3, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, "out", cfg.Check.OutputDir)
}

// TestLoadFile verifies that file values are read and that environment
// variables still take precedence over them.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tienda.yaml")
	content := []byte(`
server:
  port: 7070
  log_level: warn
upstream:
  base_url: http://upstream.internal
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("TIENDA_SERVER_LOG_LEVEL", "error")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Server.LogLevel, "env should win over the file")
	assert.Equal(t, "http://upstream.internal", cfg.Upstream.BaseURL)
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"TIENDA_SERVER_PORT": "70000"}},
		{"unknown log level", map[string]string{"TIENDA_SERVER_LOG_LEVEL": "verbose"}},
		{"invalid upstream url", map[string]string{"TIENDA_UPSTREAM_BASE_URL": "not a url"}},
		{"zero timeout", map[string]string{"TIENDA_UPSTREAM_TIMEOUT_SECONDS": "0"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "configuration validation failed")
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
