// AngelaMos | 2026
// tenant.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
)

const (
	TenantIDKey   contextKey = "tenant_id"
	TenantRoleKey contextKey = "tenant_role"

	TenantSlugParam = "tenantSlug"
)

type TenantResolver interface {
	ResolveSlug(ctx context.Context, slug string) (string, error)
}

type RoleResolver interface {
	ResolveRole(ctx context.Context, tenantID, userID string) (access.Role, error)
}

// TenantContext resolves the {tenantSlug} URL parameter to a tenant id and
// the caller's role in it. Non-members get the same 404 as an unknown slug.
// Must run after Authenticator.
func TenantContext(
	tenants TenantResolver,
	roles RoleResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := GetUserID(ctx)
			if userID == "" {
				core.Unauthorized(w, "")
				return
			}

			slug := chi.URLParam(r, TenantSlugParam)
			tenantID, err := tenants.ResolveSlug(ctx, slug)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.NotFound(w, "tenant")
					return
				}
				core.HandleError(w, err, "tenant")
				return
			}

			role, err := roles.ResolveRole(ctx, tenantID, userID)
			if err != nil {
				core.HandleError(w, err, "tenant")
				return
			}
			if role == access.RoleNone {
				core.NotFound(w, "tenant")
				return
			}

			ctx = context.WithValue(ctx, TenantIDKey, tenantID)
			ctx = context.WithValue(ctx, TenantRoleKey, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetTenantID(ctx context.Context) string {
	if id, ok := ctx.Value(TenantIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTenantRole is the role observed when the request entered the tenant
// scope. Services re-resolve it before acting.
func GetTenantRole(ctx context.Context) access.Role {
	if role, ok := ctx.Value(TenantRoleKey).(access.Role); ok {
		return role
	}
	return access.RoleNone
}

// Caller builds the explicit identity passed into tenant-scoped services.
func Caller(ctx context.Context) access.Caller {
	return access.Caller{
		UserID:   GetUserID(ctx),
		TenantID: GetTenantID(ctx),
	}
}
