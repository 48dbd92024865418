package storage

import (
	"bytes"
	"errors"
	"testing"
)

func TestFileBackendReadWriteDelete(t *testing.T) {
	b := NewFileBackend(t.TempDir(), 0)

	if _, found, err := b.Read("missing"); err != nil || found {
		t.Fatalf("Read of missing key: found=%v err=%v", found, err)
	}

	if err := b.Write("tqm_products", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	data, found, err := b.Read("tqm_products")
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if !found {
		t.Fatal("Expected key to be found after write")
	}
	if !bytes.Equal(data, []byte(`[{"id":"1"}]`)) {
		t.Errorf("Read returned %q", data)
	}

	if err := b.Delete("tqm_products"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, found, _ := b.Read("tqm_products"); found {
		t.Error("Expected key to be gone after delete")
	}

	// Deleting an absent key is not an error
	if err := b.Delete("tqm_products"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileBackendQuota(t *testing.T) {
	b := NewFileBackend(t.TempDir(), 64)

	if err := b.Write("a", make([]byte, 40)); err != nil {
		t.Fatalf("First write should fit: %v", err)
	}
	err := b.Write("b", make([]byte, 40))
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Expected ErrCapacityExceeded, got %v", err)
	}

	// The failed write must not leave a partial document behind
	if _, found, _ := b.Read("b"); found {
		t.Error("Rejected write left data behind")
	}

	// Overwriting an existing key counts the replaced size, not both
	if err := b.Write("a", make([]byte, 60)); err != nil {
		t.Fatalf("Overwrite within quota failed: %v", err)
	}
}

func TestFileBackendClearAndUsage(t *testing.T) {
	b := NewFileBackend(t.TempDir(), 0)

	b.Write("a", make([]byte, 10))
	b.Write("b", make([]byte, 20))

	used, err := b.Usage()
	if err != nil {
		t.Fatalf("Failed to compute usage: %v", err)
	}
	if used != 30 {
		t.Errorf("Usage = %d, want 30", used)
	}

	if err := b.Clear(); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}
	used, _ = b.Usage()
	if used != 0 {
		t.Errorf("Usage after clear = %d, want 0", used)
	}
	if _, found, _ := b.Read("a"); found {
		t.Error("Expected keys gone after clear")
	}
}

func TestFileBackendCapacityDefault(t *testing.T) {
	b := NewFileBackend(t.TempDir(), 0)
	if b.Capacity() != DefaultFileQuota {
		t.Errorf("Capacity = %d, want %d", b.Capacity(), DefaultFileQuota)
	}
}
