package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/notablyhq/notably/internal/httputil"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
)

type contextKey string

// identityKey is the context key for the authenticated identity.
const identityKey contextKey = "identity"

const bearerPrefix = "Bearer "

// RequireAuth creates middleware that validates the bearer token and
// stores the derived identity context in the request context. The scheme
// prefix is matched case-sensitively.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			identity, err := auth.IdentityFromClaims(claims)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates middleware that rejects callers whose role is not
// in the allowed set. Must run after RequireAuth.
func RequireRole(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range allowed {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httputil.Error(w, http.StatusForbidden, "Forbidden")
		})
	}
}

// GetIdentity extracts the authenticated identity from the context.
func GetIdentity(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok
}
