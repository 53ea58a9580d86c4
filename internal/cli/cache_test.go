package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calliope-player/calliope/internal/config"
)

func TestCoverCacheFromConfig(t *testing.T) {
	base := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	cfg := config.DefaultConfig()
	cfg.Covers.MaxSizeMB = 1
	cfg.Covers.MinFreeSpaceMB = 0

	c, err := coverCacheFromConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "state", "calliope", "covers"), c.Dir())

	path, err := c.Put("https://covers.example/a.png", bytes.NewReader([]byte("art")))
	require.NoError(t, err)
	assert.Equal(t, c.Dir(), filepath.Dir(path))

	// The configured cap reaches the cache: a cover over 1 MB is refused.
	_, err = c.Put("https://covers.example/huge.png", bytes.NewReader(make([]byte, 2*1024*1024)))
	assert.Error(t, err)
}

func TestMBToBytes(t *testing.T) {
	assert.Equal(t, uint64(0), mbToBytes(0))
	assert.Equal(t, uint64(0), mbToBytes(-5))
	assert.Equal(t, uint64(512*1024*1024), mbToBytes(512))
}
