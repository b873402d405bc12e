// AngelaMos | 2026
// repository.go

package access

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fitsyy/gym-backend/internal/core"
)

// MembershipReader looks up the role stored for a (user, tenant) pair.
// A missing row is reported as RoleNone with a nil error.
type MembershipReader interface {
	GetRole(ctx context.Context, tenantID, userID string) (Role, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) MembershipReader {
	return &repository{db: db}
}

func (r *repository) GetRole(
	ctx context.Context,
	tenantID, userID string,
) (Role, error) {
	query := `
		SELECT role
		FROM user_tenants
		WHERE tenant_id = $1 AND user_id = $2`

	var role string
	err := r.db.GetContext(ctx, &role, query, tenantID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return RoleNone, nil
	}
	if err != nil {
		return RoleNone, core.WrapStoreError("get role", err)
	}

	return Role(role), nil
}
