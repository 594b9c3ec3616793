package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
)

type TokenParser interface {
	Parse(token string) (entities.Identity, error)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, who entities.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, who)
}

// IdentityFromContext returns the caller, or an anonymous identity.
func IdentityFromContext(ctx context.Context) entities.Identity {
	who, _ := ctx.Value(identityKey{}).(entities.Identity)
	return who
}

// Authenticate resolves an optional bearer token. Requests without a token pass
// through as anonymous, a malformed or invalid token is rejected with 401.
func Authenticate(parser TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				utils.WriteError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			who, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				utils.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			rememberIdentity(r.Context(), who)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), who)))
		})
	}
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFromContext(r.Context()).Authenticated() {
			utils.WriteError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who := IdentityFromContext(r.Context())
		if !who.Authenticated() {
			utils.WriteError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !who.IsAdmin() {
			utils.WriteError(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
