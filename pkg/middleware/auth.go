package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SagarNRao/agile-lab2-startup-market/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UnlockedStartupKey is the context key for the startup id the caller's
	// unlock token is scoped to
	UnlockedStartupKey ContextKey = "unlocked_startup_id"
)

// SessionResolver resolves an unlock token to the startup it unlocks
type SessionResolver interface {
	Unlocked(token string) (int64, bool)
}

// RequireUnlock enforces a bearer unlock token. The token is minted by a
// successful owner verification and is scoped to exactly one startup; the
// resolved startup id is placed on the request context.
func RequireUnlock(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			startupID, ok := sessions.Unlocked(parts[1])
			if !ok {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UnlockedStartupKey, startupID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUnlockedStartup extracts the unlocked startup id from the request context
func GetUnlockedStartup(ctx context.Context) (int64, bool) {
	startupID, ok := ctx.Value(UnlockedStartupKey).(int64)
	return startupID, ok
}
