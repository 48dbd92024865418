// Package storage provides the durable key/value backends the
// collection store persists through. Two backends exist: a legacy
// small-quota file store and the sqlite store that replaced it.
package storage

import "errors"

// ErrCapacityExceeded is returned by Write when storing the value would
// push the backend past its quota. The in-memory state stays correct;
// only that write is lost.
var ErrCapacityExceeded = errors.New("storage capacity exceeded")

// Default quotas. The file backend mirrors the 5 MB budget of the
// store it replaced; the sqlite backend targets 1 GB.
const (
	DefaultFileQuota   = 5 * 1024 * 1024
	DefaultSQLiteQuota = 1024 * 1024 * 1024
)

// Backend is a durable store for encoded collections. Every successful
// Write is immediately durable; there is no buffering.
type Backend interface {
	// Read returns the stored value for key, or found=false when absent.
	Read(key string) (value []byte, found bool, err error)
	// Write stores value under key, replacing any previous value.
	Write(key string, value []byte) error
	// Delete removes key if present.
	Delete(key string) error
	// Clear removes everything this backend holds.
	Clear() error
	// Usage reports bytes currently stored, computed by scanning keys.
	Usage() (int64, error)
	// Capacity reports the backend's quota in bytes.
	Capacity() int64
}
