// AngelaMos | 2026
// repository.go

package invite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, inv *Invite) error
	ListPending(ctx context.Context, tenantID string, now time.Time) ([]Invite, error)
	Delete(ctx context.Context, tenantID, id string) error
	// Accept consumes the invite identified by tokenHash for userID under a
	// row lock and upserts the membership.
	Accept(ctx context.Context, tokenHash, userID string, now time.Time) (*Acceptance, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type repository struct {
	db core.TxDB
}

func NewRepository(db core.TxDB) Repository {
	return &repository{db: db}
}

const inviteColumns = `id, tenant_id, email, role, token_hash, created_by,
	expires_at, accepted_at, accepted_by, created_at`

func (r *repository) Create(ctx context.Context, inv *Invite) error {
	query := `
		INSERT INTO invites (id, tenant_id, email, role, token_hash, created_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		inv.ID,
		inv.TenantID,
		inv.Email,
		inv.Role,
		inv.TokenHash,
		inv.CreatedBy,
		inv.ExpiresAt,
	).Scan(&inv.CreatedAt)
	if err != nil {
		return core.WrapStoreError("create invite", err)
	}

	return nil
}

func (r *repository) ListPending(
	ctx context.Context,
	tenantID string,
	now time.Time,
) ([]Invite, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM invites
		WHERE tenant_id = $1 AND accepted_at IS NULL AND expires_at > $2
		ORDER BY created_at DESC`

	var invites []Invite
	if err := r.db.SelectContext(ctx, &invites, query, tenantID, now); err != nil {
		return nil, core.WrapStoreError("list invites", err)
	}

	return invites, nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM invites WHERE tenant_id = $1 AND id = $2 AND accepted_at IS NULL`,
		tenantID, id,
	)
	if err != nil {
		return core.WrapStoreError("revoke invite", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError("revoke invite", err)
	}
	if rows == 0 {
		return fmt.Errorf("revoke invite: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Accept(
	ctx context.Context,
	tokenHash, userID string,
	now time.Time,
) (*Acceptance, error) {
	var out Acceptance

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var inv Invite
		err := tx.GetContext(ctx, &inv,
			`SELECT `+inviteColumns+` FROM invites WHERE token_hash = $1 FOR UPDATE`,
			tokenHash,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("accept invite: %w", core.ErrNotFound)
		}
		if err != nil {
			return core.WrapStoreError("accept invite", err)
		}

		var existing string
		err = tx.GetContext(ctx, &existing, `
			SELECT role FROM user_tenants
			WHERE tenant_id = $1 AND user_id = $2
			FOR UPDATE`,
			inv.TenantID, userID,
		)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return core.WrapStoreError("accept invite", err)
		}

		role, err := ResolveAcceptance(&inv, access.Role(existing), now)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_tenants (user_id, tenant_id, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, tenant_id) DO UPDATE SET role = EXCLUDED.role`,
			userID, inv.TenantID, role,
		); err != nil {
			return core.WrapStoreError("grant membership", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE invites SET accepted_at = $2, accepted_by = $3
			WHERE id = $1`,
			inv.ID, now, userID,
		); err != nil {
			return core.WrapStoreError("spend invite", err)
		}

		if err := tx.GetContext(ctx, &out.Slug,
			`SELECT slug FROM tenants WHERE id = $1`, inv.TenantID,
		); err != nil {
			return core.WrapStoreError("accept invite", err)
		}
		out.TenantID = inv.TenantID
		out.Role = role

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM invites WHERE accepted_at IS NULL AND expires_at < $1`,
		before,
	)
	if err != nil {
		return 0, core.WrapStoreError("delete expired invites", err)
	}

	return result.RowsAffected()
}
