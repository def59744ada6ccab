package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/jwt"
	"github.com/linkdeck-dev/linkdeck/internal/logger"
)

type contextKey string

const userContextKey contextKey = "sessionUser"

// SessionVerifier defines the minimal interface needed by the middleware.
type SessionVerifier interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Parse(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware resolves the session cookie into the acting user and puts
// the claims on the request context. A missing, malformed, tampered or
// expired token uniformly yields 401; the cause is never disclosed.
func AuthMiddleware(sessions SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := sessions.GetTokenFromRequest(ctx, r)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := sessions.Parse(ctx, tokenString)
			if err != nil {
				logger.Log.Debugw("session verification failed", "err", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, claims)))
		})
	}
}

// WithUser returns a context carrying the session claims.
func WithUser(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

// UserFromContext returns the session claims placed by AuthMiddleware.
func UserFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(userContextKey).(*jwt.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
}
