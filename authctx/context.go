// Package authctx propagates the resolved caller identity through the
// request context. Guards store the identity after authentication; handlers
// downstream read it back without re-resolving tokens.
package authctx

import (
	"context"
	"errors"

	"github.com/skillsenselab/authgate/token"
	"github.com/skillsenselab/authgate/user"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// Identity is the resolved caller: the stored user record plus the verified
// token claims it was resolved from.
type Identity struct {
	User   *user.User
	Claims *token.Claims
}

// ErrNoIdentity is returned when no identity is present in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// Set stores the resolved identity in the context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Get retrieves the identity from the context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// MustGet retrieves the identity from the context and panics if missing.
// Use in handlers where an authentication guard guarantees it exists.
func MustGet(ctx context.Context) *Identity {
	id, ok := Get(ctx)
	if !ok {
		panic("authctx: identity not found in context")
	}
	return id
}

// GetOrError retrieves the identity or returns ErrNoIdentity.
func GetOrError(ctx context.Context) (*Identity, error) {
	id, ok := Get(ctx)
	if !ok {
		return nil, ErrNoIdentity
	}
	return id, nil
}
