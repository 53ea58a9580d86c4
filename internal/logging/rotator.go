package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogRotator is an io.Writer that appends to a log file and rotates it by
// size, keeping a bounded number of (optionally gzipped) backups.
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64 // bytes
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
}

// NewLogRotator opens (or creates) the current log file in baseDir.
func NewLogRotator(baseDir string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) (*LogRotator, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &LogRotator{
		baseDir:    baseDir,
		baseName:   "calliope.log",
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
		maxBackups: maxBackups,
		compress:   compress,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *LogRotator) openCurrentFile() error {
	logPath := filepath.Join(r.baseDir, r.baseName)

	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	if err != nil {
		return n, err
	}
	r.currentSize += int64(n)
	return n, nil
}

// Close closes the current log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}

// rotate renames the current file to a timestamped backup and prunes old
// backups. Caller holds the lock.
func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	r.currentFile = nil

	logPath := filepath.Join(r.baseDir, r.baseName)
	backupPath := filepath.Join(r.baseDir,
		fmt.Sprintf("%s.%s", r.baseName, time.Now().Format("20060102-150405")))

	if err := os.Rename(logPath, backupPath); err != nil {
		return fmt.Errorf("failed to rename log file: %w", err)
	}

	if r.compress {
		if err := compressFile(backupPath); err != nil {
			// A failed compression keeps the plain backup; not fatal.
			fmt.Fprintf(os.Stderr, "Warning: failed to compress %s: %v\n", backupPath, err)
		}
	}

	if err := r.pruneBackups(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to prune old logs: %v\n", err)
	}

	r.currentSize = 0
	return r.openCurrentFile()
}

// pruneBackups removes backups beyond maxBackups or older than maxAge.
func (r *LogRotator) pruneBackups() error {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return err
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if name != r.baseName && strings.HasPrefix(name, r.baseName+".") {
			backups = append(backups, name)
		}
	}

	// Timestamped names sort oldest first.
	sort.Strings(backups)

	cutoff := time.Now().Add(-r.maxAge)
	for i, name := range backups {
		path := filepath.Join(r.baseDir, name)
		tooMany := r.maxBackups > 0 && len(backups)-i > r.maxBackups
		tooOld := false
		if info, err := os.Stat(path); err == nil {
			tooOld = r.maxAge > 0 && info.ModTime().Before(cutoff)
		}
		if tooMany || tooOld {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func compressFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	return os.Remove(path)
}
