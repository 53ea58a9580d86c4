// Package cache implements the on-disk album cover cache.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/calliope-player/calliope/internal/osutil"
)

// ErrLowDiskSpace is returned by Put when the volume holding the cache is
// below the configured free-space floor.
var ErrLowDiskSpace = errors.New("not enough free disk space for cover cache")

// CoverCache stores downloaded album art on disk, keyed by source URL.
type CoverCache struct {
	dir     string
	maxSize uint64 // bytes; 0 disables the size cap
	minFree uint64 // bytes; 0 disables the free-space check
	log     zerolog.Logger
}

// NewCoverCache creates a cover cache rooted at dir.
func NewCoverCache(dir string, maxSize, minFree uint64, log zerolog.Logger) (*CoverCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cover cache directory: %w", err)
	}
	return &CoverCache{dir: dir, maxSize: maxSize, minFree: minFree, log: log}, nil
}

// Dir returns the cache root directory.
func (c *CoverCache) Dir() string {
	return c.dir
}

// cachedPath maps a cover URL to its on-disk location.
func (c *CoverCache) cachedPath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".img")
}

// Path returns the cached file for url, or false when not cached.
func (c *CoverCache) Path(url string) (string, bool) {
	path := c.cachedPath(url)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Has reports whether a cover for url is cached.
func (c *CoverCache) Has(url string) bool {
	_, ok := c.Path(url)
	return ok
}

// Put streams cover art into the cache and returns the cached path. The art
// is written to a temp file first and renamed into place so readers never
// observe a partial cover.
func (c *CoverCache) Put(url string, art io.Reader) (string, error) {
	if c.minFree > 0 {
		free := osutil.FileSystemFreeSpaceOrZero(c.dir)
		if free < c.minFree {
			c.log.Warn().
				Str("dir", c.dir).
				Uint64("free_bytes", free).
				Uint64("min_free_bytes", c.minFree).
				Msg("cover cache write refused")
			return "", ErrLowDiskSpace
		}
	}

	tmp, err := os.CreateTemp(c.dir, "cover-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp cover file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, art); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to save cover data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp cover file: %w", err)
	}

	if c.maxSize > 0 {
		info, err := os.Stat(tmp.Name())
		if err != nil {
			return "", fmt.Errorf("failed to stat temp cover file: %w", err)
		}
		if err := c.makeRoom(info.Size()); err != nil {
			return "", err
		}
	}

	path := c.cachedPath(url)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to store cover: %w", err)
	}

	c.log.Debug().Str("url", url).Str("path", path).Msg("cover cached")
	return path, nil
}

// makeRoom evicts the least recently written covers until incoming bytes fit
// under the size cap. Caller has checked that the cap is set.
func (c *CoverCache) makeRoom(incoming int64) error {
	// Refuse before evicting: no amount of room fits an oversized cover.
	if incoming > int64(c.maxSize) {
		return fmt.Errorf("cover of %d bytes exceeds the cache cap of %d bytes", incoming, c.maxSize)
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read cover cache: %w", err)
	}

	type cover struct {
		path string
		size int64
		mod  time.Time
	}
	var covers []cover
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".img") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		covers = append(covers, cover{filepath.Join(c.dir, entry.Name()), info.Size(), info.ModTime()})
		total += info.Size()
	}

	sort.Slice(covers, func(i, j int) bool { return covers[i].mod.Before(covers[j].mod) })

	for _, victim := range covers {
		if total+incoming <= int64(c.maxSize) {
			break
		}
		if err := os.Remove(victim.path); err != nil {
			return fmt.Errorf("failed to evict cover %s: %w", victim.path, err)
		}
		total -= victim.size
		c.log.Debug().Str("path", victim.path).Int64("bytes", victim.size).Msg("cover evicted")
	}

	return nil
}

// Size returns the total on-disk size of the cache in bytes.
func (c *CoverCache) Size() (int64, error) {
	var size int64
	err := filepath.WalkDir(c.dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to size cover cache: %w", err)
	}
	return size, nil
}

// Purge removes every cached cover and leaves an empty cache directory.
func (c *CoverCache) Purge() error {
	if err := osutil.RemoveRecursive(c.dir); err != nil {
		return fmt.Errorf("failed to purge cover cache: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to recreate cover cache directory: %w", err)
	}
	c.log.Info().Str("dir", c.dir).Msg("cover cache purged")
	return nil
}
