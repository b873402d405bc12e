// AngelaMos | 2026
// repository.go

package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fitsyy/gym-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, tenantID, id string) (*Member, error)
	List(ctx context.Context, tenantID string, params ListParams) ([]Member, int, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, tenantID, id string) error

	AddMeasurement(ctx context.Context, m *Measurement) error
	ListMeasurements(ctx context.Context, tenantID, memberID string) ([]Measurement, error)
	DeleteMeasurement(ctx context.Context, tenantID, memberID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const memberColumns = `id, tenant_id, full_name, email, phone, status, created_at, updated_at`

// InsertMember writes m using db, which may be a transaction owned by
// another package.
func InsertMember(ctx context.Context, db core.DBTX, m *Member) error {
	query := `
		INSERT INTO members (id, tenant_id, full_name, email, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := db.QueryRowxContext(ctx, query,
		m.ID,
		m.TenantID,
		m.FullName,
		m.Email,
		m.Phone,
		m.Status,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("create member: tenant: %w", core.ErrNotFound)
		}
		return core.WrapStoreError("create member", err)
	}

	return nil
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	return InsertMember(ctx, r.db, m)
}

func (r *repository) GetByID(ctx context.Context, tenantID, id string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE tenant_id = $1 AND id = $2`

	var m Member
	err := r.db.GetContext(ctx, &m, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.WrapStoreError("get member", err)
	}

	return &m, nil
}

func (r *repository) List(
	ctx context.Context,
	tenantID string,
	params ListParams,
) ([]Member, int, error) {
	params.Normalize()

	conditions := []string{"tenant_id = $1"}
	args := []any{tenantID}
	argIdx := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM members WHERE "+whereClause, args...,
	); err != nil {
		return nil, 0, core.WrapStoreError("count members", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM members
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		memberColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, core.WrapStoreError("list members", err)
	}

	return members, total, nil
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET full_name = $3, email = $4, phone = $5, status = $6, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		m.TenantID,
		m.ID,
		m.FullName,
		m.Email,
		m.Phone,
		m.Status,
	).Scan(&m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update member: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.WrapStoreError("update member", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.execOne(ctx, "delete member",
		`DELETE FROM members WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
}

func (r *repository) AddMeasurement(ctx context.Context, m *Measurement) error {
	query := `
		INSERT INTO measurements (
			id, tenant_id, member_id, taken_on,
			weight, body_fat, height, chest, waist, hip, notes
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE EXISTS (SELECT 1 FROM members WHERE tenant_id = $2 AND id = $3)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID,
		m.TenantID,
		m.MemberID,
		m.TakenOn,
		m.Weight,
		m.BodyFat,
		m.Height,
		m.Chest,
		m.Waist,
		m.Hip,
		m.Notes,
	).Scan(&m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("add measurement: member: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.WrapStoreError("add measurement", err)
	}

	return nil
}

func (r *repository) ListMeasurements(
	ctx context.Context,
	tenantID, memberID string,
) ([]Measurement, error) {
	query := `
		SELECT id, tenant_id, member_id, taken_on, weight, body_fat,
		       height, chest, waist, hip, notes, created_at
		FROM measurements
		WHERE tenant_id = $1 AND member_id = $2
		ORDER BY taken_on DESC, created_at DESC`

	var out []Measurement
	if err := r.db.SelectContext(ctx, &out, query, tenantID, memberID); err != nil {
		return nil, core.WrapStoreError("list measurements", err)
	}

	return out, nil
}

func (r *repository) DeleteMeasurement(
	ctx context.Context,
	tenantID, memberID, id string,
) error {
	return r.execOne(ctx, "delete measurement",
		`DELETE FROM measurements WHERE tenant_id = $1 AND member_id = $2 AND id = $3`,
		tenantID, memberID, id,
	)
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return core.WrapStoreError(op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError(op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
