// AngelaMos | 2026
// repository.go

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
)

type Repository interface {
	// CreateWithOwner inserts the tenant and the creator's OWNER membership
	// atomically. A taken slug yields core.ErrDuplicateKey.
	CreateWithOwner(ctx context.Context, t *Tenant, ownerID string) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]Membership, error)
	ListTeam(ctx context.Context, tenantID string) ([]TeamMember, error)
	UpdateName(ctx context.Context, id, name string) (*Tenant, error)
	UpdateSlug(ctx context.Context, id, slug string) (*Tenant, error)
	// TransferOwnership makes the user registered under email the OWNER and
	// demotes the current owner to MANAGER in one transaction.
	TransferOwnership(ctx context.Context, tenantID, currentOwnerID, email string) (string, error)
	Delete(ctx context.Context, id string) error
	RemoveMembership(ctx context.Context, tenantID, userID string) error
}

type repository struct {
	db core.TxDB
}

func NewRepository(db core.TxDB) Repository {
	return &repository{db: db}
}

const tenantColumns = `id, name, slug, created_at, updated_at`

func (r *repository) CreateWithOwner(
	ctx context.Context,
	t *Tenant,
	ownerID string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, t, `
			INSERT INTO tenants (id, name, slug)
			VALUES ($1, $2, $3)
			RETURNING `+tenantColumns,
			t.ID, t.Name, t.Slug,
		)
		if err != nil {
			if core.IsUniqueViolation(err) {
				return fmt.Errorf("create tenant: %w", core.ErrDuplicateKey)
			}
			return core.WrapStoreError("create tenant", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_tenants (user_id, tenant_id, role)
			VALUES ($1, $2, $3)`,
			ownerID, t.ID, access.RoleOwner,
		)
		if err != nil {
			if core.IsForeignKeyViolation(err) {
				return fmt.Errorf("assign owner: %w", core.ErrNotFound)
			}
			return core.WrapStoreError("assign owner", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	return r.getOne(ctx, "get tenant", `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	return r.getOne(ctx, "get tenant by slug", `SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
}

func (r *repository) getOne(
	ctx context.Context,
	op, query string,
	args ...any,
) (*Tenant, error) {
	var t Tenant
	err := r.db.GetContext(ctx, &t, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, core.WrapStoreError(op, err)
	}
	return &t, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM tenants WHERE slug = $1)`, slug)
	if err != nil {
		return false, core.WrapStoreError("check slug", err)
	}
	return exists, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID string,
) ([]Membership, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.created_at, t.updated_at,
		       ut.role, ut.created_at AS joined_at
		FROM user_tenants ut
		JOIN tenants t ON t.id = ut.tenant_id
		WHERE ut.user_id = $1
		ORDER BY t.name`

	var memberships []Membership
	if err := r.db.SelectContext(ctx, &memberships, query, userID); err != nil {
		return nil, core.WrapStoreError("list tenants for user", err)
	}
	return memberships, nil
}

func (r *repository) ListTeam(
	ctx context.Context,
	tenantID string,
) ([]TeamMember, error) {
	query := `
		SELECT u.id AS user_id, u.email, u.name, ut.role, ut.created_at AS joined_at
		FROM user_tenants ut
		JOIN users u ON u.id = ut.user_id
		WHERE ut.tenant_id = $1 AND u.deleted_at IS NULL
		ORDER BY CASE ut.role
		    WHEN 'OWNER' THEN 0
		    WHEN 'MANAGER' THEN 1
		    WHEN 'TRAINER' THEN 2
		    WHEN 'STAFF' THEN 3
		    ELSE 4
		END, u.name`

	var team []TeamMember
	if err := r.db.SelectContext(ctx, &team, query, tenantID); err != nil {
		return nil, core.WrapStoreError("list team", err)
	}
	return team, nil
}

func (r *repository) UpdateName(
	ctx context.Context,
	id, name string,
) (*Tenant, error) {
	return r.getOne(ctx, "update tenant name", `
		UPDATE tenants SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+tenantColumns,
		id, name,
	)
}

func (r *repository) UpdateSlug(
	ctx context.Context,
	id, slug string,
) (*Tenant, error) {
	t, err := r.getOne(ctx, "update tenant slug", `
		UPDATE tenants SET slug = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+tenantColumns,
		id, slug,
	)
	if err != nil && core.IsUniqueViolation(err) {
		return nil, fmt.Errorf("update tenant slug: %w", core.ErrDuplicateKey)
	}
	return t, err
}

func (r *repository) TransferOwnership(
	ctx context.Context,
	tenantID, currentOwnerID, email string,
) (string, error) {
	var newOwnerID string

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &newOwnerID,
			`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`,
			email,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("transfer ownership: user: %w", core.ErrNotFound)
		}
		if err != nil {
			return core.WrapStoreError("transfer ownership", err)
		}

		if newOwnerID == currentOwnerID {
			return fmt.Errorf(
				"you already own this tenant: %w",
				core.ErrInvalidInput,
			)
		}

		var currentRole string
		err = tx.GetContext(ctx, &currentRole, `
			SELECT role FROM user_tenants
			WHERE tenant_id = $1 AND user_id = $2
			FOR UPDATE`,
			tenantID, currentOwnerID,
		)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return core.WrapStoreError("transfer ownership", err)
		}
		if access.Role(currentRole) != access.RoleOwner {
			return fmt.Errorf("transfer ownership: %w", core.ErrForbidden)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE user_tenants SET role = 'MANAGER'
			WHERE tenant_id = $1 AND user_id = $2`,
			tenantID, currentOwnerID,
		); err != nil {
			return core.WrapStoreError("demote previous owner", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_tenants (user_id, tenant_id, role)
			VALUES ($1, $2, 'OWNER')
			ON CONFLICT (user_id, tenant_id) DO UPDATE SET role = 'OWNER'`,
			newOwnerID, tenantID,
		); err != nil {
			return core.WrapStoreError("promote new owner", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return newOwnerID, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return core.WrapStoreError("delete tenant", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError("delete tenant", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete tenant: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) RemoveMembership(
	ctx context.Context,
	tenantID, userID string,
) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM user_tenants
		WHERE tenant_id = $1 AND user_id = $2 AND role <> 'OWNER'`,
		tenantID, userID,
	)
	if err != nil {
		return core.WrapStoreError("leave tenant", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError("leave tenant", err)
	}
	if rows == 0 {
		return fmt.Errorf("leave tenant: %w", core.ErrNotFound)
	}

	return nil
}
