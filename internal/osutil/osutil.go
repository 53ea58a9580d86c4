// Package osutil provides thin helpers over the host filesystem: recursive
// directory removal, volume capacity queries, and whole-stream copies.
//
// All helpers are synchronous and keep no state between calls; they are safe
// to use concurrently on independent paths and streams.
package osutil

import (
	"errors"
	"fmt"
	"os"
)

// ErrUnsupported is returned by the volume capacity queries on platforms
// without a filesystem statistics syscall.
var ErrUnsupported = errors.New("filesystem statistics not supported on this platform")

// MakeTempDir creates a fresh private directory under the system temp
// directory and returns its path. The caller owns the directory and is
// responsible for removing it.
func MakeTempDir() (string, error) {
	dir, err := os.MkdirTemp("", "calliope-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	return dir, nil
}
