package auth

import "context"

// Context keys for auth-related values.
type contextKey int

const tokenKey contextKey = iota

// WithToken returns a new context carrying the raw bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext retrieves the bearer token from the context.
// Returns ("", false) if none is present.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
