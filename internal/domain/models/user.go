package models

import (
	"context"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// User is the authenticated caller as described by the bearer token claims.
// The engine never issues tokens; it only verifies them.
type User struct {
	ID   uuid.UUID
	Role types.UserRole
}

var anonymous = &User{}

// AnonymousUser represents an unauthenticated caller.
func AnonymousUser() *User {
	return anonymous
}

func (u *User) IsAnonymous() bool {
	return u == anonymous
}

type userCtxKey struct{}

var userKey = userCtxKey{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user, or nil when absent.
func UserFromContext(ctx context.Context) *User {
	if u, ok := ctx.Value(userKey).(*User); ok {
		return u
	}
	return nil
}
