package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteBackend is the current large-capacity store. Values live in a
// single key/value table namespaced by store name, so several logical
// stores can share one database file.
type SQLiteBackend struct {
	db    *sql.DB
	store string
	quota int64
}

// NewSQLiteBackend opens (or creates) the database at path and prepares
// the key/value table. A quota of 0 uses DefaultSQLiteQuota.
func NewSQLiteBackend(path, store string, quota int64) (*SQLiteBackend, error) {
	if quota <= 0 {
		quota = DefaultSQLiteQuota
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", path+sep+"_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		return nil, err
	}

	// Some drivers don't parse connection string params correctly
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=10000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}

	ddl := `CREATE TABLE IF NOT EXISTS kv_store (
		store TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (store, key)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv_store migration: %w", err)
	}

	return &SQLiteBackend{db: db, store: store, quota: quota}, nil
}

// Read returns the stored value for key.
func (s *SQLiteBackend) Read(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE store = ? AND key = ?", s.store, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Write upserts value under key. Last value wins; writes to the same
// key are naturally idempotent.
func (s *SQLiteBackend) Write(key string, value []byte) error {
	used, err := s.Usage()
	if err != nil {
		return err
	}
	var prev int64
	s.db.QueryRow("SELECT LENGTH(value) FROM kv_store WHERE store = ? AND key = ?", s.store, key).Scan(&prev)
	if used-prev+int64(len(value)) > s.quota {
		return fmt.Errorf("write %q: %w", key, ErrCapacityExceeded)
	}
	_, err = s.db.Exec(`INSERT INTO kv_store (store, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(store, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.store, key, value)
	return err
}

// Delete removes key if present.
func (s *SQLiteBackend) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM kv_store WHERE store = ? AND key = ?", s.store, key)
	return err
}

// Clear removes every key in this backend's namespace.
func (s *SQLiteBackend) Clear() error {
	_, err := s.db.Exec("DELETE FROM kv_store WHERE store = ?", s.store)
	return err
}

// Usage sums stored key and value sizes for this namespace.
func (s *SQLiteBackend) Usage() (int64, error) {
	var total int64
	err := s.db.QueryRow("SELECT COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0) FROM kv_store WHERE store = ?", s.store).Scan(&total)
	return total, err
}

// Capacity reports the quota in bytes.
func (s *SQLiteBackend) Capacity() int64 {
	return s.quota
}

// Close closes the underlying database.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
