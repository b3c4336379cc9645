package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller extracted from an authentication token.
// It is attached to the request context by the authentication middleware
// and never changes for the remainder of the request.
type Identity struct {
	UserID uuid.UUID
	Role   domain.Role
	Email  string
}

// WithIdentity returns a context carrying the verified caller identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the caller identity from the context.
// The second return is false on unauthenticated requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
