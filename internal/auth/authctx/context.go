// Package authctx propagates the authenticated identity through a request's
// context. The auth guard stores the identity here; downstream handlers read
// it back without re-verifying the token.
package authctx

import (
	"context"
	"errors"
)

// Identity is the authenticated principal resolved from a verified token.
type Identity struct {
	// UserID is the subject identifier from the token.
	UserID string
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// ErrNoIdentity is returned when no identity is stored in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// Set stores the authenticated identity in the context.
func Set(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Get retrieves the authenticated identity from the context.
func Get(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// GetOrError retrieves the identity or returns ErrNoIdentity.
func GetOrError(ctx context.Context) (Identity, error) {
	id, ok := Get(ctx)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

// MustGet retrieves the identity and panics if missing. Use only in handlers
// that run strictly behind the auth guard.
func MustGet(ctx context.Context) Identity {
	id, ok := Get(ctx)
	if !ok {
		panic("authctx: identity not found in context")
	}
	return id
}
