//go:build !linux && !darwin && !freebsd && !windows

package osutil

func fsCapacity(path string) (uint64, error) {
	return 0, ErrUnsupported
}

func fsFreeSpace(path string) (uint64, error) {
	return 0, ErrUnsupported
}
