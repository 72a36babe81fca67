// Package storage provides crash-safe file output for reports.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriter writes to a temporary file and renames it over the target on
// Commit, so the target is either the previous file or the complete new one.
type AtomicWriter struct {
	path    string
	tmpPath string
	file    *os.File
	done    bool
}

// NewAtomicWriter creates a writer for an atomic replacement of path.
// The temporary file lives in the same directory so the rename stays on one filesystem.
func NewAtomicWriter(path string) (*AtomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".ytreport-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &AtomicWriter{
		path:    path,
		tmpPath: tmpFile.Name(),
		file:    tmpFile,
	}, nil
}

// Write writes data to the temporary file.
func (w *AtomicWriter) Write(p []byte) (n int, err error) {
	return w.file.Write(p)
}

// Commit syncs the temporary file and renames it over the target.
func (w *AtomicWriter) Commit() error {
	if w.done {
		return fmt.Errorf("atomic writer for %s already finished", w.path)
	}
	w.done = true

	if err := w.file.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	// CreateTemp uses 0600; reports are ordinary user files.
	if err := os.Chmod(w.tmpPath, 0644); err != nil {
		os.Remove(w.tmpPath)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		os.Remove(w.tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (w *AtomicWriter) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	return w.discard()
}

func (w *AtomicWriter) discard() error {
	w.file.Close()
	return os.Remove(w.tmpPath)
}
