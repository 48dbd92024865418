// Package authgate implements the role flag and the guarded-action
// protocol: mutations from non-admin roles are parked in a single
// pending slot until the shared passphrase is confirmed.
package authgate

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Role is the current authorization level. There is no per-user
// identity; the whole app shares one role flag.
type Role string

const (
	RoleNone  Role = ""
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

var (
	// ErrInvalidRole is returned by Login for unknown role choices.
	ErrInvalidRole = errors.New("invalid role")
	// ErrBadPassphrase is returned by Confirm on a mismatch. The
	// pending action stays parked so the challenge can be retried.
	ErrBadPassphrase = errors.New("invalid passphrase")
)

// Gate holds the role flag and the one-slot pending action queue.
// Opening a new challenge while one is pending overwrites the slot;
// last caller wins.
type Gate struct {
	mu       sync.Mutex
	role     Role
	passHash []byte
	pending  func()
}

// New creates a Gate checking challenges against the given bcrypt hash
// of the shared passphrase.
func New(passphraseHash string) *Gate {
	return &Gate{passHash: []byte(passphraseHash)}
}

// HashPassphrase produces the bcrypt hash stored in configuration.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login sets the role. Only guest and admin are valid choices.
func (g *Gate) Login(role Role) error {
	if role != RoleGuest && role != RoleAdmin {
		return ErrInvalidRole
	}
	g.mu.Lock()
	g.role = role
	g.pending = nil
	g.mu.Unlock()
	return nil
}

// Logout returns to the unauthenticated state and discards any pending
// action.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.role = RoleNone
	g.pending = nil
	g.mu.Unlock()
}

// Role returns the current role.
func (g *Gate) Role() Role {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.role
}

// Request runs action immediately when the role is admin and reports
// true. For any other role it parks the action in the pending slot
// (overwriting a previous one) and reports false: the caller must open
// a passphrase challenge.
func (g *Gate) Request(action func()) bool {
	g.mu.Lock()
	if g.role == RoleAdmin {
		g.mu.Unlock()
		action()
		return true
	}
	g.pending = action
	g.mu.Unlock()
	return false
}

// Confirm checks the passphrase and, on success, runs the pending
// action exactly once and clears the slot. A mismatch leaves the slot
// intact for a retry.
func (g *Gate) Confirm(passphrase string) error {
	g.mu.Lock()
	if bcrypt.CompareHashAndPassword(g.passHash, []byte(passphrase)) != nil {
		g.mu.Unlock()
		return ErrBadPassphrase
	}
	action := g.pending
	g.pending = nil
	g.mu.Unlock()
	if action != nil {
		action()
	}
	return nil
}

// Cancel discards the pending action without executing it.
func (g *Gate) Cancel() {
	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
}

// HasPending reports whether a guarded action is awaiting confirmation.
func (g *Gate) HasPending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}
