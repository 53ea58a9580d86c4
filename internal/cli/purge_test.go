package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterminePurgeTargets(t *testing.T) {
	tests := []struct {
		name     string
		flags    PurgeFlags
		expected []string
	}{
		{"noFlagsMeansAll", PurgeFlags{}, []string{"covers", "network", "logs", "config"}},
		{"allFlag", PurgeFlags{All: true}, []string{"covers", "network", "logs", "config"}},
		{"coversOnly", PurgeFlags{Covers: true}, []string{"covers"}},
		{"coversAndNetwork", PurgeFlags{Covers: true, Network: true}, []string{"covers", "network"}},
		{"configOnly", PurgeFlags{Config: true}, []string{"config"}},
		{"stateExpands", PurgeFlags{State: true}, []string{"covers", "network", "logs"}},
		{"stateDeduplicates", PurgeFlags{State: true, Covers: true}, []string{"covers", "network", "logs"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determinePurgeTargets(tt.flags))
		})
	}
}

func TestGetPurgePaths(t *testing.T) {
	base := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "cfg"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	paths, err := getPurgePaths([]string{"covers", "config"})
	require.NoError(t, err)

	require.Len(t, paths["covers"], 1)
	assert.Equal(t, filepath.Join(base, "state", "calliope", "covers"), paths["covers"][0])

	require.Len(t, paths["config"], 2)
	assert.Equal(t, filepath.Join(base, "cfg", "calliope", "config.toml"), paths["config"][0])
	assert.Equal(t, filepath.Join(base, "cfg", "calliope", "config.schema.json"), paths["config"][1])
}

func TestPerformPurge_RemovesTargets(t *testing.T) {
	base := t.TempDir()
	coversDir := filepath.Join(base, "covers")
	require.NoError(t, os.MkdirAll(filepath.Join(coversDir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(coversDir, "sub", "a.img"), []byte("art"), 0644))

	err := performPurge([]string{"covers"}, map[string][]string{"covers": {coversDir}})
	require.NoError(t, err)

	_, statErr := os.Lstat(coversDir)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestPerformPurge_MissingPathIsSuccess(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "never-created")
	err := performPurge([]string{"network"}, map[string][]string{"network": {missing}})
	assert.NoError(t, err)
}

func TestPerformPurge_ReportsFailures(t *testing.T) {
	base := t.TempDir()

	// A name longer than any filesystem allows cannot be stat'd, for any user.
	broken := filepath.Join(base, strings.Repeat("x", 300))
	good := filepath.Join(base, "logs")
	require.NoError(t, os.MkdirAll(good, 0755))

	err := performPurge(
		[]string{"covers", "logs"},
		map[string][]string{"covers": {broken}, "logs": {good}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)

	// The failing target must not stop the others.
	_, statErr := os.Lstat(good)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
