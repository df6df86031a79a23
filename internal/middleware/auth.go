package middleware

import (
	"context"
	"net/http"
	"strings"

	"magicgatherer-api/pkg/apierror"
	"magicgatherer-api/pkg/response"
)

// UsernameKey is the context key for the authenticated username.
const UsernameKey contextKey = "username"

// TokenValidator resolves an access token to a username.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Tokens TokenValidator
}

// NewAuthMiddleware requires "Authorization: Bearer <token>" and stores the
// token's username in the request context.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				response.Error(w, apierror.Unauthorized("Authentication required. Use an Authorization: Bearer header."))
				return
			}

			if cfg.Tokens == nil {
				response.Error(w, apierror.Unauthorized("Authentication is not configured"))
				return
			}

			username, err := cfg.Tokens.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				response.Error(w, apierror.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

// GetUsername returns the authenticated username, or "" for anonymous requests.
func GetUsername(ctx context.Context) string {
	if u, ok := ctx.Value(UsernameKey).(string); ok {
		return u
	}
	return ""
}

// WithUsername returns a context carrying the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}
