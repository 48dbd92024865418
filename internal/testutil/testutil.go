// Package testutil provides shared helpers for handler and store tests.
package testutil

import (
	"testing"

	"tqm/internal/authgate"
	"tqm/internal/storage"
	"tqm/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Passphrase is the shared confirmation passphrase used across tests.
const Passphrase = "changeme"

// NewStore returns a loaded Store persisting to temp-dir file backends.
// Both backends start empty, so the store comes up on seed data.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	s, _, _ := NewStoreWithBackends(t)
	return s
}

// NewStoreWithBackends additionally exposes the primary and legacy
// backends for tests that inspect persisted state directly.
func NewStoreWithBackends(t *testing.T) (*store.Store, storage.Backend, storage.Backend) {
	t.Helper()
	backend := storage.NewFileBackend(t.TempDir(), storage.DefaultFileQuota)
	legacy := storage.NewFileBackend(t.TempDir(), storage.DefaultFileQuota)
	s := store.New(backend, legacy, store.KeysWithPrefix("tqm"))
	s.Load()
	return s, backend, legacy
}

// NewGate returns a Gate checking challenges against Passphrase. MinCost
// keeps the bcrypt work factor out of the test runtime.
func NewGate(t *testing.T) *authgate.Gate {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Passphrase), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test passphrase: %v", err)
	}
	return authgate.New(string(hash))
}
