package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrResourceNotFound is returned when the named resource does not exist.
// Callers use it to tell "missing" apart from real I/O failures.
var ErrResourceNotFound = errors.New("resource not found")

// Loader defines the interface for reading raw chart resources.
// The catalog is read-only: charts change only via deployment.
type Loader interface {
	// Load returns the raw bytes of the named resource.
	Load(ctx context.Context, name string) ([]byte, error)
}

// FileLoader reads resources from a directory on disk.
type FileLoader struct {
	baseDir string
}

// NewFileLoader creates a loader rooted at baseDir.
func NewFileLoader(baseDir string) *FileLoader {
	return &FileLoader{baseDir: baseDir}
}

func (l *FileLoader) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return data, nil
}

// MemoryLoader serves resources from an in-memory map. Used by tests and
// available as a backend for embedded catalogs.
type MemoryLoader struct {
	Resources map[string][]byte
}

func (l *MemoryLoader) Load(_ context.Context, name string) ([]byte, error) {
	data, ok := l.Resources[name]
	if !ok {
		return nil, ErrResourceNotFound
	}
	return data, nil
}

// SafeResourceKey reports whether key can be mapped onto a resource name
// without escaping the catalog directory.
func SafeResourceKey(key string) bool {
	if key == "" {
		return false
	}
	if strings.ContainsAny(key, "/\\") {
		return false
	}
	return key != "." && key != ".."
}
