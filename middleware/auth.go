package middleware

import (
	"context"
	"net/http"
	"strings"

	"socialapi/auth"
)

// unexported, collision-proof context key
type callerContextKeyType struct{}

var callerKey = callerContextKeyType{}

// CallerFromContext extracts the authenticated user id from context.
func CallerFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(callerKey).(int32)
	return id, ok
}

// WithCaller returns a context carrying the given user id.
func WithCaller(ctx context.Context, userID int32) context.Context {
	return context.WithValue(ctx, callerKey, userID)
}

type AuthMiddleware struct {
	Tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

// Attach resolves an optional caller identity from the Authorization header.
// A missing, malformed, or invalid token leaves the request anonymous;
// individual resolvers decide whether a caller is required.
func (a *AuthMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			if userID, valid := a.Tokens.Verify(token); valid {
				ctx = WithCaller(ctx, userID)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
