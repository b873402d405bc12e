// AngelaMos | 2026
// repository.go

package admin

import (
	"context"

	"github.com/fitsyy/gym-backend/internal/core"
)

// PlatformTotals counts rows across every tenant.
type PlatformTotals struct {
	Tenants        int `db:"tenants"        json:"tenants"`
	Users          int `db:"users"          json:"users"`
	Members        int `db:"members"        json:"members"`
	Slots          int `db:"slots"          json:"slots"`
	ActiveBookings int `db:"active_bookings" json:"active_bookings"`
	PendingInvites int `db:"pending_invites" json:"pending_invites"`
}

type TotalsReader interface {
	Totals(ctx context.Context) (PlatformTotals, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) TotalsReader {
	return &repository{db: db}
}

func (r *repository) Totals(ctx context.Context) (PlatformTotals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM tenants) AS tenants,
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL) AS users,
			(SELECT COUNT(*) FROM members) AS members,
			(SELECT COUNT(*) FROM time_slots) AS slots,
			(SELECT COUNT(*) FROM bookings WHERE status = 'BOOKED') AS active_bookings,
			(SELECT COUNT(*) FROM invites
				WHERE accepted_at IS NULL AND expires_at > NOW()) AS pending_invites`

	var t PlatformTotals
	if err := r.db.GetContext(ctx, &t, query); err != nil {
		return PlatformTotals{}, core.WrapStoreError("platform totals", err)
	}

	return t, nil
}
