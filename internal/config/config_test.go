package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".imihigo", "imihigo.db"), cfg.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, ".", cfg.ExportDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("IMIHIGO_DB", "/tmp/contracts.db")
	t.Setenv("IMIHIGO_LOG_LEVEL", "debug")
	t.Setenv("IMIHIGO_LOG_USE_CASES", "true")
	t.Setenv("IMIHIGO_EXPORT_DIR", "/tmp/reports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/contracts.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, "/tmp/reports", cfg.ExportDir)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("IMIHIGO_LOG_USE_CASES", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestParseEnv_BadLevel(t *testing.T) {
	t.Setenv("IMIHIGO_LOG_LEVEL", "loud")
	_, err := Load()
	assert.Error(t, err)
}
