package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/olatube/backend/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth verifies the bearer token and stashes the asserted identity in the
// request context. Verification is pure; no store lookups happen here.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Missing or invalid token"}}`, http.StatusUnauthorized)
				return
			}

			identity, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					http.Error(w, `{"error":{"code":"TOKEN_EXPIRED","message":"Token expired, please sign in again"}}`, http.StatusUnauthorized)
					return
				}
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Invalid token"}}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the verified identity from the request context.
func GetIdentity(ctx context.Context) *service.Identity {
	return ctx.Value(identityKey).(*service.Identity)
}
