// Package appctx carries request-scoped values through context.
package appctx

import (
	"context"
)

// DefaultUser is stamped on audit entries when no operator is in context.
const DefaultUser = "Sistema"

type userKey struct{}

// WithUser returns a context carrying the display name of the operator
// performing the current action.
func WithUser(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, userKey{}, name)
}

// UserName returns the operator name from context, or DefaultUser.
func UserName(ctx context.Context) string {
	if name, ok := ctx.Value(userKey{}).(string); ok && name != "" {
		return name
	}
	return DefaultUser
}
