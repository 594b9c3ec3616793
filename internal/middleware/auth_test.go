package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/middleware"
	"github.com/stretchr/testify/assert"
)

type stubParser map[string]entities.Identity

func (s stubParser) Parse(token string) (entities.Identity, error) {
	who, ok := s[token]
	if !ok {
		return entities.Identity{}, errors.New("bad token")
	}
	return who, nil
}

func TestAuthMiddleware(t *testing.T) {
	parser := stubParser{
		"user":  {UserID: "u1", Email: "u1@example.com"},
		"admin": {UserID: "a1", Role: entities.RoleAdmin},
	}

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User", middleware.IdentityFromContext(r.Context()).UserID)
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name     string
		chain    func(http.Handler) http.Handler
		header   string
		wantCode int
		wantUser string
	}{
		{name: "optional anonymous", chain: identity, wantCode: http.StatusNoContent},
		{name: "optional with user", chain: identity, header: "Bearer user", wantCode: http.StatusNoContent, wantUser: "u1"},
		{name: "invalid token", chain: identity, header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", chain: identity, header: "Basic user", wantCode: http.StatusUnauthorized},
		{name: "require user anonymous", chain: middleware.RequireUser, wantCode: http.StatusUnauthorized},
		{name: "require user ok", chain: middleware.RequireUser, header: "Bearer user", wantCode: http.StatusNoContent, wantUser: "u1"},
		{name: "admin as user", chain: middleware.RequireAdmin, header: "Bearer user", wantCode: http.StatusForbidden},
		{name: "admin anonymous", chain: middleware.RequireAdmin, wantCode: http.StatusUnauthorized},
		{name: "admin ok", chain: middleware.RequireAdmin, header: "Bearer admin", wantCode: http.StatusNoContent, wantUser: "a1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.Authenticate(parser)(tc.chain(echo))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantUser, rec.Header().Get("X-User"))
		})
	}
}

func identity(next http.Handler) http.Handler { return next }
