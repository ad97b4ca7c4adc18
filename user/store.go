package user

import (
	"context"
	"errors"
)

// Store failure kinds. Implementations return these sentinels (possibly
// wrapped) so callers can translate them at the subsystem boundary instead
// of inspecting driver-specific codes.
var (
	// ErrNotFound means no record exists for the given key.
	ErrNotFound = errors.New("user: not found")
	// ErrEmailTaken means the email is already claimed by another record.
	ErrEmailTaken = errors.New("user: email already taken")
)

// Store is the read/create contract over the user record store.
type Store interface {
	// FindByID returns the user with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the user with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new user. It assigns ID and CreatedAt when unset
	// and returns ErrEmailTaken if the email is already claimed.
	Create(ctx context.Context, u *User) error
}
