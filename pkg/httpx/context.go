package httpx

import "context"

// AuthContext is the verified identity derived from a request's bearer token.
// It is built once per request by the authentication middleware and never
// mutated afterwards.
type AuthContext struct {
	// UserID is the token's subject claim, always non-empty.
	UserID string

	// Email is optional and empty when the token carries no email claim.
	Email string

	// Roles preserves the order of the token's roles claim, may be empty.
	Roles []string
}

type authCtxKey struct{}

// ContextWithAuth attaches the auth context for downstream handlers.
func ContextWithAuth(ctx context.Context, auth AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey{}, auth)
}

// AuthFromContext returns the request's auth context. The second return is
// false on unauthenticated paths.
func AuthFromContext(ctx context.Context) (AuthContext, bool) {
	auth, ok := ctx.Value(authCtxKey{}).(AuthContext)
	return auth, ok
}
