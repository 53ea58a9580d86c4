package cache

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, maxSize, minFree uint64) *CoverCache {
	t.Helper()
	c, err := NewCoverCache(t.TempDir(), maxSize, minFree, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestCoverCache_PutAndPath(t *testing.T) {
	c := newTestCache(t, 0, 0)
	art := []byte("fake png bytes")

	path, err := c.Put("https://covers.example/abbey-road.png", bytes.NewReader(art))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, art, got)

	cached, ok := c.Path("https://covers.example/abbey-road.png")
	assert.True(t, ok)
	assert.Equal(t, path, cached)

	assert.False(t, c.Has("https://covers.example/unknown.png"))
}

func TestCoverCache_SameURLSamePath(t *testing.T) {
	c := newTestCache(t, 0, 0)

	first, err := c.Put("https://covers.example/a.png", bytes.NewReader([]byte("v1")))
	require.NoError(t, err)
	second, err := c.Put("https://covers.example/a.png", bytes.NewReader([]byte("v2")))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	got, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestCoverCache_Size(t *testing.T) {
	c := newTestCache(t, 0, 0)

	_, err := c.Put("a", bytes.NewReader(bytes.Repeat([]byte{1}, 100)))
	require.NoError(t, err)
	_, err = c.Put("b", bytes.NewReader(bytes.Repeat([]byte{2}, 150)))
	require.NoError(t, err)

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(250), size)
}

func TestCoverCache_Purge(t *testing.T) {
	c := newTestCache(t, 0, 0)

	_, err := c.Put("a", bytes.NewReader([]byte("art")))
	require.NoError(t, err)

	require.NoError(t, c.Purge())

	assert.DirExists(t, c.Dir())
	size, err := c.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestCoverCache_LowDiskSpace(t *testing.T) {
	// A floor no volume can satisfy forces the refusal path.
	c := newTestCache(t, 0, ^uint64(0))

	_, err := c.Put("a", bytes.NewReader([]byte("art")))
	assert.ErrorIs(t, err, ErrLowDiskSpace)
	assert.False(t, c.Has("a"))
}

func TestCoverCache_EvictsOldestWhenOverCap(t *testing.T) {
	c := newTestCache(t, 300, 0)
	now := time.Now()

	oldest, err := c.Put("a", bytes.NewReader(bytes.Repeat([]byte{1}, 150)))
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(oldest, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))

	middle, err := c.Put("b", bytes.NewReader(bytes.Repeat([]byte{2}, 100)))
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(middle, now.Add(-time.Hour), now.Add(-time.Hour)))

	_, err = c.Put("c", bytes.NewReader(bytes.Repeat([]byte{3}, 150)))
	require.NoError(t, err)

	assert.False(t, c.Has("a"), "oldest cover should be evicted")
	assert.True(t, c.Has("b"))
	assert.True(t, c.Has("c"))

	size, err := c.Size()
	require.NoError(t, err)
	assert.LessOrEqual(t, size, int64(300))
}

func TestCoverCache_RefusesCoverLargerThanCap(t *testing.T) {
	c := newTestCache(t, 100, 0)

	existing, err := c.Put("a", bytes.NewReader(bytes.Repeat([]byte{1}, 50)))
	require.NoError(t, err)

	_, err = c.Put("b", bytes.NewReader(bytes.Repeat([]byte{2}, 200)))
	assert.Error(t, err)
	assert.False(t, c.Has("b"))
	assert.FileExists(t, existing, "undersized covers must survive a refused write")
}
