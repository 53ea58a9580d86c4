//go:build linux || darwin || freebsd

package osutil

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func fsCapacity(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, fmt.Errorf("failed to statfs %s: %w", path, err)
	}
	return uint64(st.Blocks) * uint64(st.Bsize), nil
}

func fsFreeSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, fmt.Errorf("failed to statfs %s: %w", path, err)
	}
	// Bavail, not Bfree: space usable without root privileges.
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
