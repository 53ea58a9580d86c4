package osutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// RemoveRecursive deletes the directory tree rooted at path. Removal is
// depth-first, children before parent, so every directory is empty by the
// time it is removed. Symbolic links are removed as links and never
// followed. A path that does not exist counts as already removed.
//
// The first failed deletion aborts the walk and is returned wrapped with the
// offending path.
func RemoveRecursive(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := RemoveRecursive(child); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(child); err != nil {
			return fmt.Errorf("failed to remove %s: %w", child, err)
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
