// Package password provides password hashing, verification, and the
// registration strength policy.
//
// Hashing uses bcrypt with a deliberately slow cost factor so brute-force
// guessing stays expensive even if the stored hashes leak. Verification is
// a boolean outcome only. Mismatch position never influences timing, which
// is delegated to bcrypt's own guarantees.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Verify when the password does not match.
var ErrMismatch = errors.New("password: mismatch")

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash returns a hashed representation of the password.
	Hash(password string) (string, error)

	// Verify checks if a password matches the given hash.
	// Returns nil if they match, ErrMismatch otherwise.
	Verify(password, hash string) error
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// BcryptOption configures the bcrypt hasher.
type BcryptOption func(*BcryptHasher)

// WithCost sets the bcrypt cost parameter. Values below 12 are ignored;
// the floor exists so no caller can configure the hasher into cheap
// brute-force territory.
func WithCost(cost int) BcryptOption {
	return func(h *BcryptHasher) {
		if cost >= minCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

const minCost = 12

// NewBcryptHasher creates a bcrypt-based password hasher with cost 12.
func NewBcryptHasher(opts ...BcryptOption) *BcryptHasher {
	h := &BcryptHasher{cost: minCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns the bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", errors.New("password: maximum length is 72 characters (bcrypt limit)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Verify compares a plaintext password against a stored bcrypt hash.
func (h *BcryptHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
