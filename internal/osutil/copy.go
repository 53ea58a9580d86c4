package osutil

import (
	"fmt"
	"io"
	"os"
)

// Stream is an openable byte-stream resource with a known length, such as a
// file. Open acquires the underlying handle; the returned closer releases
// it.
type Stream interface {
	OpenRead() (io.ReadCloser, error)
	OpenWrite() (io.WriteCloser, error)
	Size() (int64, error)
}

// FileStream adapts a filesystem path to the Stream interface.
type FileStream string

func (f FileStream) OpenRead() (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f FileStream) OpenWrite() (io.WriteCloser, error) {
	return os.Create(string(f))
}

func (f FileStream) Size() (int64, error) {
	info, err := os.Stat(string(f))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Copy duplicates the full contents of src into dst. The source length is
// taken up front and the whole transfer is buffered in memory, so on success
// dst holds a byte-for-byte copy of src as it was at the size query.
//
// The destination is never opened when the source cannot be sized or opened.
// On a read or write failure dst may be left partially written.
func Copy(src, dst Stream) error {
	size, err := src.Size()
	if err != nil {
		return fmt.Errorf("failed to size source: %w", err)
	}

	in, err := src.OpenRead()
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	// ReadFull terminates immediately on a zero-length source and turns a
	// short read into an error instead of spinning.
	data := make([]byte, size)
	if _, err := io.ReadFull(in, data); err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	out, err := dst.OpenWrite()
	if err != nil {
		return fmt.Errorf("failed to open destination: %w", err)
	}

	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("failed to write destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close destination: %w", err)
	}
	return nil
}

// CopyFile copies the file at srcPath to a new or truncated file at dstPath.
func CopyFile(srcPath, dstPath string) error {
	return Copy(FileStream(srcPath), FileStream(dstPath))
}
