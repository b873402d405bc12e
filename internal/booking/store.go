// AngelaMos | 2026
// store.go

package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/member"
)

const (
	capacityConstraint    = "bookings_capacity"
	oneActiveConstraint   = "bookings_one_active_per_member"
	statusGuardConstraint = "bookings_status_check"
)

// Store persists bookings. The read methods feed the early checks; Insert,
// InsertWithMember and UpdateStatus re-validate capacity and duplicates
// themselves and are the binding authority.
type Store interface {
	Occupancy(ctx context.Context, tenantID, slotID string) (Occupancy, error)
	MemberExists(ctx context.Context, tenantID, memberID string) (bool, error)
	HasActiveBooking(ctx context.Context, tenantID, slotID, memberID string) (bool, error)

	Insert(ctx context.Context, b *Booking) error
	InsertWithMember(ctx context.Context, m *member.Member, b *Booking) error
	Get(ctx context.Context, tenantID, id string) (*Booking, error)
	// UpdateStatus moves the booking from -> to. It fails with
	// core.ErrInvalidInput when the stored status is no longer from.
	UpdateStatus(ctx context.Context, tenantID, id string, from, to Status) error
	Delete(ctx context.Context, tenantID, id string) error
	ListBySlot(ctx context.Context, tenantID, slotID string) ([]Booking, error)
}

type store struct {
	db core.TxDB
}

func NewStore(db core.TxDB) Store {
	return &store{db: db}
}

func (s *store) Occupancy(ctx context.Context, tenantID, slotID string) (Occupancy, error) {
	return occupancy(ctx, s.db, tenantID, slotID, false)
}

func occupancy(
	ctx context.Context,
	db core.DBTX,
	tenantID, slotID string,
	lock bool,
) (Occupancy, error) {
	query := `SELECT capacity FROM time_slots WHERE tenant_id = $1 AND id = $2`
	if lock {
		query += ` FOR UPDATE`
	}

	var occ Occupancy
	err := db.GetContext(ctx, &occ.Capacity, query, tenantID, slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return Occupancy{}, fmt.Errorf("slot occupancy: slot: %w", core.ErrNotFound)
	}
	if err != nil {
		return Occupancy{}, core.WrapStoreError("slot occupancy", err)
	}

	err = db.GetContext(ctx, &occ.Booked, `
		SELECT COUNT(*) FROM bookings
		WHERE tenant_id = $1 AND time_slot_id = $2 AND status = 'BOOKED'`,
		tenantID, slotID,
	)
	if err != nil {
		return Occupancy{}, core.WrapStoreError("slot occupancy", err)
	}

	return occ, nil
}

func (s *store) MemberExists(ctx context.Context, tenantID, memberID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM members WHERE tenant_id = $1 AND id = $2)`,
		tenantID, memberID,
	)
	if err != nil {
		return false, core.WrapStoreError("check member", err)
	}
	return exists, nil
}

func (s *store) HasActiveBooking(
	ctx context.Context,
	tenantID, slotID, memberID string,
) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE tenant_id = $1 AND time_slot_id = $2 AND member_id = $3
			  AND status = 'BOOKED'
		)`,
		tenantID, slotID, memberID,
	)
	if err != nil {
		return false, core.WrapStoreError("check active booking", err)
	}
	return exists, nil
}

func (s *store) Insert(ctx context.Context, b *Booking) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return insertLocked(ctx, tx, b)
	})
}

func (s *store) InsertWithMember(ctx context.Context, m *member.Member, b *Booking) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := member.InsertMember(ctx, tx, m); err != nil {
			return err
		}
		return insertLocked(ctx, tx, b)
	})
}

// insertLocked locks the slot row, re-checks capacity and inserts. The
// bookings_enforce_capacity trigger and the partial unique index repeat the
// checks inside Postgres.
func insertLocked(ctx context.Context, tx *sqlx.Tx, b *Booking) error {
	occ, err := occupancy(ctx, tx, b.TenantID, b.SlotID, true)
	if err != nil {
		return err
	}
	if occ.Full() {
		return fmt.Errorf("insert booking: %w", core.ErrCapacityExceeded)
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO bookings (id, tenant_id, time_slot_id, member_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		b.ID, b.TenantID, b.SlotID, b.MemberID, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapBookingError("insert booking", err)
	}

	return nil
}

const bookingSelect = `
	SELECT b.id, b.tenant_id, b.time_slot_id, b.member_id, b.status,
	       m.full_name AS member_name, b.created_at, b.updated_at
	FROM bookings b
	LEFT JOIN members m ON m.id = b.member_id`

func (s *store) Get(ctx context.Context, tenantID, id string) (*Booking, error) {
	var b Booking
	err := s.db.GetContext(ctx, &b, bookingSelect+` WHERE b.tenant_id = $1 AND b.id = $2`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get booking: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.WrapStoreError("get booking", err)
	}
	return &b, nil
}

func (s *store) UpdateStatus(
	ctx context.Context,
	tenantID, id string,
	from, to Status,
) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var slotID string
		err := tx.GetContext(ctx, &slotID,
			`SELECT time_slot_id FROM bookings WHERE tenant_id = $1 AND id = $2`,
			tenantID, id,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update booking status: %w", core.ErrNotFound)
		}
		if err != nil {
			return core.WrapStoreError("update booking status", err)
		}

		if to.Active() {
			occ, err := occupancy(ctx, tx, tenantID, slotID, true)
			if err != nil {
				return err
			}
			if occ.Full() {
				return fmt.Errorf("update booking status: %w", core.ErrCapacityExceeded)
			}
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE bookings SET status = $4, updated_at = NOW()
			WHERE tenant_id = $1 AND id = $2 AND status = $3`,
			tenantID, id, from, to,
		)
		if err != nil {
			return mapBookingError("update booking status", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return core.WrapStoreError("update booking status", err)
		}
		if rows == 0 {
			return fmt.Errorf(
				"booking status changed concurrently, reload and retry: %w",
				core.ErrInvalidInput,
			)
		}

		return nil
	})
}

func (s *store) Delete(ctx context.Context, tenantID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM bookings WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return core.WrapStoreError("delete booking", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError("delete booking", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete booking: %w", core.ErrNotFound)
	}

	return nil
}

func (s *store) ListBySlot(ctx context.Context, tenantID, slotID string) ([]Booking, error) {
	query := bookingSelect + `
		WHERE b.tenant_id = $1 AND b.time_slot_id = $2
		ORDER BY b.status = 'BOOKED' DESC, b.created_at`

	var out []Booking
	if err := s.db.SelectContext(ctx, &out, query, tenantID, slotID); err != nil {
		return nil, core.WrapStoreError("list slot bookings", err)
	}
	return out, nil
}

// mapBookingError translates constraint violations raised by Postgres into
// the booking rejections. They win over whatever the early checks saw.
func mapBookingError(op string, err error) error {
	constraint := core.ConstraintName(err)

	switch {
	case core.IsCheckViolation(err) && constraint == capacityConstraint:
		return fmt.Errorf("%s: %w", op, core.ErrCapacityExceeded)
	case core.IsUniqueViolation(err) && constraint == oneActiveConstraint:
		return fmt.Errorf("%s: %w", op, core.ErrDuplicateBooking)
	case core.IsUniqueViolation(err):
		return fmt.Errorf("%s: %s already exists: %w", op, constraint, core.ErrInvalidInput)
	case core.IsCheckViolation(err) && constraint == statusGuardConstraint:
		return fmt.Errorf("%s: invalid status: %w", op, core.ErrInvalidInput)
	case core.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: slot or member: %w", op, core.ErrNotFound)
	default:
		return core.WrapStoreError(op, err)
	}
}
