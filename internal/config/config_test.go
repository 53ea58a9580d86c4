package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupXDG(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", base)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	return base
}

func TestManagerLoad_CreatesDefaultConfig(t *testing.T) {
	setupXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, defaultCoversMaxMB, cfg.Covers.MaxSizeMB)
	assert.NotEmpty(t, cfg.Library.MusicDir)

	// First run writes the config file and its schema.
	configFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.FileExists(t, configFile)
	assert.FileExists(t, filepath.Join(filepath.Dir(configFile), "config.schema.json"))
}

func TestManagerLoad_ReadsConfigFile(t *testing.T) {
	setupXDG(t)

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(configFile), 0755))

	content := "[covers]\nmax_size_mb = 64\n\n[logging]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 64, cfg.Covers.MaxSizeMB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, defaultMinFreeSpaceMB, cfg.Covers.MinFreeSpaceMB)
}

func TestManagerGet_ReturnsCopy(t *testing.T) {
	setupXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	first := m.Get()
	first.Logging.Level = "trace"

	assert.NotEqual(t, "trace", m.Get().Logging.Level)
}

func TestManagerReload_NotifiesCallbacks(t *testing.T) {
	setupXDG(t)

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(configFile), 0755))
	require.NoError(t, os.WriteFile(configFile, []byte("[logging]\nlevel = \"info\"\n"), 0644))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var observed []string
	m.OnConfigChange(func(cfg *Config) {
		observed = append(observed, cfg.Logging.Level)
	})

	require.NoError(t, os.WriteFile(configFile, []byte("[logging]\nlevel = \"warn\"\n"), 0644))
	m.handleConfigChange()

	require.Len(t, observed, 1)
	assert.Equal(t, "warn", observed[0])
	assert.Equal(t, "warn", m.Get().Logging.Level)
}

func TestManagerWatch_Idempotent(t *testing.T) {
	setupXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	require.NoError(t, m.Watch())
	// A second Watch is a no-op.
	require.NoError(t, m.Watch())
}

func TestDefaultConfig(t *testing.T) {
	setupXDG(t)

	cfg := DefaultConfig()
	assert.True(t, cfg.Covers.Download)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NotEmpty(t, cfg.Logging.LogDir)
}
