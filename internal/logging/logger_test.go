package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calliope-player/calliope/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.level), "level %q", tt.level)
	}
}

func TestNewFromAppConfig_LevelAndFormat(t *testing.T) {
	l, err := NewFromAppConfig(&config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l, err = NewFromAppConfig(&config.LoggingConfig{Level: "nonsense"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNewFromAppConfig_FileLog(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFromAppConfig(&config.LoggingConfig{
		Level:         "debug",
		Format:        "json",
		EnableFileLog: true,
		LogDir:        dir,
		MaxSize:       1,
		MaxBackups:    1,
		MaxAge:        1,
	})
	require.NoError(t, err)

	l.Info().Msg("cover cached")

	data, err := os.ReadFile(filepath.Join(dir, "calliope.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cover cached")
}
