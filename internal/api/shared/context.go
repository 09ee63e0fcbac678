package shared

import "context"

// ContextKey is the type for values the API layer stores in a request context.
type ContextKey string

// authorizationKey stores the raw Authorization header of a request.
const authorizationKey ContextKey = "authorization"

// SetAuthorization stores the raw Authorization header value in ctx.
func SetAuthorization(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, authorizationKey, header)
}

// GetAuthorization returns the Authorization header stored by SetAuthorization.
func GetAuthorization(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(authorizationKey).(string)
	return v, ok && v != ""
}
