package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend is the legacy synchronous store: one JSON document per
// key inside a directory, with a small fixed quota. It is retained so
// older installations can be migrated, and as a fallback audit copy.
type FileBackend struct {
	dir   string
	quota int64
}

// NewFileBackend creates a file backend rooted at dir. A quota of 0
// uses DefaultFileQuota.
func NewFileBackend(dir string, quota int64) *FileBackend {
	if quota <= 0 {
		quota = DefaultFileQuota
	}
	return &FileBackend{dir: dir, quota: quota}
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Read returns the stored value for key.
func (f *FileBackend) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Write stores value under key. It fails synchronously with
// ErrCapacityExceeded when the store's total would exceed the quota.
func (f *FileBackend) Write(key string, value []byte) error {
	used, err := f.Usage()
	if err != nil {
		return err
	}
	if prev, err := os.Stat(f.path(key)); err == nil {
		used -= prev.Size()
	}
	if used+int64(len(value)) > f.quota {
		return fmt.Errorf("write %q: %w", key, ErrCapacityExceeded)
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), value, 0644)
}

// Delete removes key if present.
func (f *FileBackend) Delete(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every stored document.
func (f *FileBackend) Clear() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Usage sums the sizes of all stored documents.
func (f *FileBackend) Usage() (int64, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// Capacity reports the quota in bytes.
func (f *FileBackend) Capacity() int64 {
	return f.quota
}
