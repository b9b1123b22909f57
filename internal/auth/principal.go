// Package auth carries the authenticated principal through request contexts.
package auth

import (
	"context"

	"github.com/todoapp/todo-api/internal/models"
)

// Principal is the identity of the currently authenticated caller.
type Principal struct {
	UserID uint64
	Role   models.RoleType
}

type principalKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext extracts the principal set by the auth middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
