// AngelaMos | 2026
// repository.go

package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitsyy/gym-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, t *Trainer) error
	GetByID(ctx context.Context, tenantID, id string) (*Trainer, error)
	// List returns the tenant's trainers, filtered by active when non-nil.
	List(ctx context.Context, tenantID string, active *bool) ([]Trainer, error)
	Update(ctx context.Context, t *Trainer) error
	Delete(ctx context.Context, tenantID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const trainerColumns = `id, tenant_id, full_name, active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, t *Trainer) error {
	query := `
		INSERT INTO trainers (id, tenant_id, full_name, active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		t.ID, t.TenantID, t.FullName, t.Active,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return core.WrapStoreError("create trainer", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, id string) (*Trainer, error) {
	var t Trainer
	err := r.db.GetContext(ctx, &t,
		`SELECT `+trainerColumns+` FROM trainers WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trainer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.WrapStoreError("get trainer", err)
	}

	return &t, nil
}

func (r *repository) List(ctx context.Context, tenantID string, active *bool) ([]Trainer, error) {
	query := `
		SELECT ` + trainerColumns + `
		FROM trainers
		WHERE tenant_id = $1 AND ($2::boolean IS NULL OR active = $2)
		ORDER BY full_name`

	var trainers []Trainer
	if err := r.db.SelectContext(ctx, &trainers, query, tenantID, active); err != nil {
		return nil, core.WrapStoreError("list trainers", err)
	}

	return trainers, nil
}

func (r *repository) Update(ctx context.Context, t *Trainer) error {
	query := `
		UPDATE trainers
		SET full_name = $3, active = $4, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		t.TenantID, t.ID, t.FullName, t.Active,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update trainer: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.WrapStoreError("update trainer", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trainers WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return core.WrapStoreError("delete trainer", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError("delete trainer", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete trainer: %w", core.ErrNotFound)
	}

	return nil
}
