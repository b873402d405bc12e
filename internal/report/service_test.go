// AngelaMos | 2026
// service_test.go

package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/access/accesstest"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/report"
)

type stubRepo struct {
	counts map[string]report.Counts
	err    error
}

func (s stubRepo) Counts(_ context.Context, tenantID string) (report.Counts, error) {
	if s.err != nil {
		return report.Counts{}, s.err
	}
	return s.counts[tenantID], nil
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		counts     report.Counts
		perSlot    float64
		attendance int
	}{
		{"no slots", report.Counts{TotalBookings: 4}, 0, 0},
		{"one per slot", report.Counts{TotalSlots: 4, TotalBookings: 4}, 1, 100},
		{"rounds", report.Counts{TotalSlots: 3, TotalBookings: 2}, 0.67, 67},
		{"over one", report.Counts{TotalSlots: 2, TotalBookings: 5}, 2.5, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := report.Summarize(tt.counts)
			assert.InDelta(t, tt.perSlot, s.BookingsPerSlot, 0.001)
			assert.Equal(t, tt.attendance, s.AttendancePercent)
			assert.Equal(t, tt.counts, s.Counts)
		})
	}
}

func TestSummaryScopedToCallerTenant(t *testing.T) {
	m := accesstest.NewMemberships()
	m.Set("t1", "member", access.RoleMember)

	repo := stubRepo{counts: map[string]report.Counts{
		"t1": {TotalMembers: 3, ActiveMembers: 2, TotalSlots: 2, TotalBookings: 3, Booked: 2, Cancelled: 1},
		"t2": {TotalMembers: 99},
	}}
	svc := report.NewService(repo, m.Evaluator())

	s, err := svc.Summary(context.Background(), access.Caller{UserID: "member", TenantID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalMembers)
	assert.Equal(t, 150, s.AttendancePercent)

	resp := report.ToSummaryResponse(s)
	assert.Equal(t, 1, resp.Cancelled)
	assert.InDelta(t, 1.5, resp.BookingsPerSlot, 0.001)
}

func TestSummaryRequiresMembership(t *testing.T) {
	m := accesstest.NewMemberships()
	svc := report.NewService(stubRepo{}, m.Evaluator())

	_, err := svc.Summary(context.Background(), access.Caller{UserID: "stranger", TenantID: "t1"})
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestSummaryStoreFailure(t *testing.T) {
	m := accesstest.NewMemberships()
	m.Set("t1", "owner", access.RoleOwner)
	storeErr := core.WrapStoreError("report counts", errors.New("boom"))
	svc := report.NewService(stubRepo{err: storeErr}, m.Evaluator())

	_, err := svc.Summary(context.Background(), access.Caller{UserID: "owner", TenantID: "t1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrForbidden)
}
