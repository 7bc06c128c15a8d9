package http

import (
	"context"
	"net/http"
	"strings"

	"renthub-backend/internal/security"
)

type contextKey string

const userClaimsKey contextKey = "user_claims"

// AuthMiddleware validates the bearer token and stores the claims in the
// request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Autenticazione richiesta")
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token non valido")
				return
			}
			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*security.UserClaims)
	return claims, ok
}
