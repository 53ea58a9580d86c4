package osutil

// FileSystemCapacity returns the total size in bytes of the filesystem
// containing path.
//
// Callers can distinguish failure causes with errors.Is against
// fs.ErrNotExist, fs.ErrPermission and ErrUnsupported.
func FileSystemCapacity(path string) (uint64, error) {
	return fsCapacity(path)
}

// FileSystemFreeSpace returns the number of bytes on the filesystem
// containing path that are available to unprivileged writers.
func FileSystemFreeSpace(path string) (uint64, error) {
	return fsFreeSpace(path)
}

// FileSystemCapacityOrZero is FileSystemCapacity with failure collapsed to
// zero, for display-only callers that cannot act on the cause anyway.
func FileSystemCapacityOrZero(path string) uint64 {
	n, err := fsCapacity(path)
	if err != nil {
		return 0
	}
	return n
}

// FileSystemFreeSpaceOrZero is FileSystemFreeSpace with failure collapsed to
// zero.
func FileSystemFreeSpaceOrZero(path string) uint64 {
	n, err := fsFreeSpace(path)
	if err != nil {
		return 0
	}
	return n
}
