// AngelaMos | 2026
// repository.go

package report

import (
	"context"

	"github.com/fitsyy/gym-backend/internal/core"
)

type Repository interface {
	Counts(ctx context.Context, tenantID string) (Counts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context, tenantID string) (Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM members WHERE tenant_id = $1) AS total_members,
			(SELECT COUNT(*) FROM members
				WHERE tenant_id = $1 AND status = 'ACTIVE') AS active_members,
			(SELECT COUNT(*) FROM time_slots WHERE tenant_id = $1) AS total_slots,
			COUNT(b.id) AS total_bookings,
			COUNT(b.id) FILTER (WHERE b.status = 'BOOKED') AS booked,
			COUNT(b.id) FILTER (WHERE b.status = 'CANCELLED') AS cancelled,
			COUNT(b.id) FILTER (WHERE b.status = 'NO_SHOW') AS no_show
		FROM bookings b
		WHERE b.tenant_id = $1`

	var c Counts
	if err := r.db.GetContext(ctx, &c, query, tenantID); err != nil {
		return Counts{}, core.WrapStoreError("report counts", err)
	}

	return c, nil
}
