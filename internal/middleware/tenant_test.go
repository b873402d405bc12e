// AngelaMos | 2026
// tenant_test.go

package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/access/accesstest"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/middleware"
)

type slugs map[string]string

func (s slugs) ResolveSlug(_ context.Context, slug string) (string, error) {
	id, ok := s[slug]
	if !ok {
		return "", fmt.Errorf("resolve slug: %w", core.ErrNotFound)
	}
	return id, nil
}

func withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Test-User"); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), middleware.UserIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

func tenantRouter(m *accesstest.Memberships, seen *access.Caller, role *access.Role) http.Handler {
	r := chi.NewRouter()
	r.Use(withUser)
	r.Route("/t/{tenantSlug}", func(r chi.Router) {
		r.Use(middleware.TenantContext(slugs{"iron": "t1", "zen": "t2"}, m.Evaluator()))
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			*seen = middleware.Caller(r.Context())
			*role = middleware.GetTenantRole(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}

func TestTenantContext(t *testing.T) {
	m := accesstest.NewMemberships()
	m.Set("t1", "u1", access.RoleTrainer)
	m.Set("t2", "u2", access.RoleOwner)

	var (
		seen access.Caller
		role access.Role
	)
	h := tenantRouter(m, &seen, &role)

	tests := []struct {
		name string
		path string
		user string
		want int
	}{
		{"anonymous", "/t/iron/ping", "", http.StatusUnauthorized},
		{"unknown slug", "/t/nope/ping", "u1", http.StatusNotFound},
		{"member of another tenant", "/t/iron/ping", "u2", http.StatusNotFound},
		{"member", "/t/iron/ping", "u1", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.user != "" {
				req.Header.Set("X-Test-User", tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, access.Caller{UserID: "u1", TenantID: "t1"}, seen)
	assert.Equal(t, access.RoleTrainer, role)
}

func TestTenantContextLookupFailure(t *testing.T) {
	m := accesstest.NewMemberships()
	m.Err = fmt.Errorf("lookup: %w", core.ErrStoreUnavailable)

	var (
		seen access.Caller
		role access.Role
	)
	h := tenantRouter(m, &seen, &role)

	req := httptest.NewRequest(http.MethodGet, "/t/iron/ping", nil)
	req.Header.Set("X-Test-User", "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORE_UNAVAILABLE")
}
