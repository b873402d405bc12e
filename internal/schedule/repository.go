// AngelaMos | 2026
// repository.go

package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fitsyy/gym-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, s *Slot) error
	GetByID(ctx context.Context, tenantID, id string) (*Slot, error)
	List(ctx context.Context, tenantID string, w Window) ([]Slot, error)
	// Update rewrites the slot under a row lock and refuses a capacity below
	// the current BOOKED count.
	Update(ctx context.Context, s *Slot) error
	Delete(ctx context.Context, tenantID, id string) error
	SetTrainer(ctx context.Context, tenantID, slotID string, trainerID *string) error
	TrainerExists(ctx context.Context, tenantID, trainerID string) (bool, error)
}

type repository struct {
	db core.TxDB
}

func NewRepository(db core.TxDB) Repository {
	return &repository{db: db}
}

const slotSelect = `
	SELECT s.id, s.tenant_id, s.title, s.type, s.start_at, s.end_at,
	       s.capacity, s.trainer_id, t.full_name AS trainer_name,
	       s.created_at, s.updated_at,
	       (SELECT COUNT(*) FROM bookings b
	        WHERE b.time_slot_id = s.id AND b.status = 'BOOKED') AS booked
	FROM time_slots s
	LEFT JOIN trainers t ON t.id = s.trainer_id`

func (r *repository) Create(ctx context.Context, s *Slot) error {
	query := `
		INSERT INTO time_slots (id, tenant_id, title, type, start_at, end_at, capacity, trainer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID,
		s.TenantID,
		s.Title,
		s.Type,
		s.StartAt,
		s.EndAt,
		s.Capacity,
		s.TrainerID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapSlotError("create slot", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, id string) (*Slot, error) {
	var s Slot
	err := r.db.GetContext(ctx, &s, slotSelect+` WHERE s.tenant_id = $1 AND s.id = $2`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get slot: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.WrapStoreError("get slot", err)
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context, tenantID string, w Window) ([]Slot, error) {
	query := slotSelect + `
		WHERE s.tenant_id = $1 AND s.start_at >= $2 AND s.start_at < $3
		ORDER BY s.start_at`

	var slots []Slot
	if err := r.db.SelectContext(ctx, &slots, query, tenantID, w.From, w.To); err != nil {
		return nil, core.WrapStoreError("list slots", err)
	}

	return slots, nil
}

func (r *repository) Update(ctx context.Context, s *Slot) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked string
		err := tx.GetContext(ctx, &locked,
			`SELECT id FROM time_slots WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
			s.TenantID, s.ID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update slot: %w", core.ErrNotFound)
		}
		if err != nil {
			return core.WrapStoreError("update slot", err)
		}

		var booked int
		if err := tx.GetContext(ctx, &booked,
			`SELECT COUNT(*) FROM bookings WHERE time_slot_id = $1 AND status = 'BOOKED'`,
			s.ID,
		); err != nil {
			return core.WrapStoreError("update slot", err)
		}
		if s.Capacity < booked {
			return fmt.Errorf(
				"capacity cannot be lower than the %d existing bookings: %w",
				booked,
				core.ErrInvalidInput,
			)
		}

		err = tx.QueryRowxContext(ctx, `
			UPDATE time_slots
			SET title = $3, type = $4, start_at = $5, end_at = $6,
			    capacity = $7, trainer_id = $8, updated_at = NOW()
			WHERE tenant_id = $1 AND id = $2
			RETURNING created_at, updated_at`,
			s.TenantID,
			s.ID,
			s.Title,
			s.Type,
			s.StartAt,
			s.EndAt,
			s.Capacity,
			s.TrainerID,
		).Scan(&s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return mapSlotError("update slot", err)
		}
		s.Booked = booked

		return nil
	})
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM time_slots WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return core.WrapStoreError("delete slot", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError("delete slot", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete slot: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetTrainer(
	ctx context.Context,
	tenantID, slotID string,
	trainerID *string,
) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE time_slots SET trainer_id = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, slotID, trainerID,
	)
	if err != nil {
		return mapSlotError("assign trainer", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError("assign trainer", err)
	}
	if rows == 0 {
		return fmt.Errorf("assign trainer: slot: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) TrainerExists(ctx context.Context, tenantID, trainerID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM trainers WHERE tenant_id = $1 AND id = $2)`,
		tenantID, trainerID,
	)
	if err != nil {
		return false, core.WrapStoreError("check trainer", err)
	}

	return exists, nil
}

// mapSlotError turns constraint violations into domain errors. The
// time_slots_trainer_fk constraint is composite on (tenant_id, trainer_id).
func mapSlotError(op string, err error) error {
	switch {
	case core.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: trainer: %w", op, core.ErrNotFound)
	case core.IsCheckViolation(err):
		return fmt.Errorf("%s: slot violates %s: %w", op, core.ConstraintName(err), core.ErrInvalidInput)
	default:
		return core.WrapStoreError(op, err)
	}
}
