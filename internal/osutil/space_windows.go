//go:build windows

package osutil

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func fsCapacity(path string) (uint64, error) {
	var availableToCaller, total, totalFree uint64
	if err := statDisk(path, &availableToCaller, &total, &totalFree); err != nil {
		return 0, err
	}
	return total, nil
}

func fsFreeSpace(path string) (uint64, error) {
	var availableToCaller, total, totalFree uint64
	if err := statDisk(path, &availableToCaller, &total, &totalFree); err != nil {
		return 0, err
	}
	return availableToCaller, nil
}

func statDisk(path string, availableToCaller, total, totalFree *uint64) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("failed to encode path %s: %w", path, err)
	}
	if err := windows.GetDiskFreeSpaceEx(p, availableToCaller, total, totalFree); err != nil {
		return fmt.Errorf("failed to query disk space for %s: %w", path, err)
	}
	return nil
}
