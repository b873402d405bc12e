// AngelaMos | 2026
// service_test.go

package member_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/access/accesstest"
	"github.com/fitsyy/gym-backend/internal/config"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/member"
)

type fakeRepo struct {
	mu           sync.Mutex
	members      map[string]*member.Member
	measurements map[string]*member.Measurement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		members:      make(map[string]*member.Member),
		measurements: make(map[string]*member.Measurement),
	}
}

func (r *fakeRepo) Create(_ context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	r.members[m.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, tenantID, id string) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok || m.TenantID != tenantID {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) List(
	_ context.Context,
	tenantID string,
	params member.ListParams,
) ([]member.Member, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []member.Member
	for _, m := range r.members {
		if m.TenantID != tenantID {
			continue
		}
		if params.Status != "" && m.Status != params.Status {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(m.FullName), strings.ToLower(params.Search)) {
			continue
		}
		all = append(all, *m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName < all[j].FullName })
	total := len(all)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeRepo) Update(_ context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.members[m.ID]
	if !ok || existing.TenantID != m.TenantID {
		return fmt.Errorf("update member: %w", core.ErrNotFound)
	}
	cp := *m
	r.members[m.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok || m.TenantID != tenantID {
		return fmt.Errorf("delete member: %w", core.ErrNotFound)
	}
	delete(r.members, id)
	return nil
}

func (r *fakeRepo) AddMeasurement(_ context.Context, m *member.Measurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.members[m.MemberID]
	if !ok || owner.TenantID != m.TenantID {
		return fmt.Errorf("add measurement: member: %w", core.ErrNotFound)
	}
	m.CreatedAt = time.Now()
	cp := *m
	r.measurements[m.ID] = &cp
	return nil
}

func (r *fakeRepo) ListMeasurements(_ context.Context, tenantID, memberID string) ([]member.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []member.Measurement
	for _, m := range r.measurements {
		if m.TenantID == tenantID && m.MemberID == memberID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenOn.After(out[j].TakenOn) })
	return out, nil
}

func (r *fakeRepo) DeleteMeasurement(_ context.Context, tenantID, memberID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.measurements[id]
	if !ok || m.TenantID != tenantID || m.MemberID != memberID {
		return fmt.Errorf("delete measurement: %w", core.ErrNotFound)
	}
	delete(r.measurements, id)
	return nil
}

func newService(t *testing.T, policy access.Policy) (*member.Service, *accesstest.Memberships) {
	t.Helper()
	m := accesstest.NewMemberships()
	m.Set("t1", "owner", access.RoleOwner)
	m.Set("t1", "staff", access.RoleStaff)
	m.Set("t1", "member", access.RoleMember)
	m.Set("t2", "other", access.RoleOwner)
	return member.NewService(newFakeRepo(), access.NewEvaluator(m, policy)), m
}

func as(userID, tenantID string) access.Caller {
	return access.Caller{UserID: userID, TenantID: tenantID}
}

func TestCreateMember(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	m, err := svc.Create(ctx, as("member", "t1"), member.Input{
		FullName: "  Ayşe Yılmaz ",
		Email:    "AYSE@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", m.FullName)
	require.NotNil(t, m.Email)
	assert.Equal(t, "ayse@example.com", *m.Email)
	assert.Nil(t, m.Phone)
	assert.Equal(t, member.StatusActive, m.Status)
	assert.Equal(t, "t1", m.TenantID)
}

func TestCreateMemberValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	_, err := svc.Create(ctx, as("owner", "t1"), member.Input{FullName: "  "})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Create(ctx, as("owner", "t1"), member.Input{FullName: "A", Email: "not-an-email"})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Create(ctx, as("owner", "t1"), member.Input{FullName: "A", Status: "FROZEN"})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestMemberWriteGateIsConfigurable(t *testing.T) {
	ctx := context.Background()
	policy, err := access.NewPolicy(config.AccessConfig{
		MemberWriteMinRole:  "STAFF",
		BookingWriteMinRole: "MEMBER",
	})
	require.NoError(t, err)
	svc, _ := newService(t, policy)

	_, err = svc.Create(ctx, as("member", "t1"), member.Input{FullName: "X"})
	require.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Create(ctx, as("staff", "t1"), member.Input{FullName: "X"})
	require.NoError(t, err)
}

func TestTenantIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	m, err := svc.Create(ctx, as("owner", "t1"), member.Input{FullName: "Only T1"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, as("other", "t2"), m.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, as("other", "t2"), m.ID), core.ErrNotFound)

	_, err = svc.Get(ctx, as("other", "t1"), m.ID)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)
	owner := as("owner", "t1")

	for _, in := range []member.Input{
		{FullName: "Ali", Status: "ACTIVE"},
		{FullName: "Alper", Status: "BANNED"},
		{FullName: "Berk", Status: "ACTIVE"},
	} {
		_, err := svc.Create(ctx, owner, in)
		require.NoError(t, err)
	}

	got, total, err := svc.List(ctx, owner, member.ListParams{Search: " al "})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2)

	got, total, err = svc.List(ctx, owner, member.ListParams{Status: member.StatusActive, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Ali", got[0].FullName)
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)
	owner := as("owner", "t1")

	m, err := svc.Create(ctx, owner, member.Input{FullName: "Old", Phone: "555"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, m.ID, member.Input{FullName: "New", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FullName)
	assert.Equal(t, member.StatusInactive, updated.Status)
	assert.Nil(t, updated.Phone)

	_, err = svc.Update(ctx, owner, "missing", member.Input{FullName: "X"})
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestMeasurements(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)
	owner := as("owner", "t1")

	m, err := svc.Create(ctx, owner, member.Input{FullName: "Runner"})
	require.NoError(t, err)

	weight := 72.5
	first, err := svc.AddMeasurement(ctx, owner, m.ID, member.MeasurementRequest{TakenOn: "2026-01-10", Weight: &weight})
	require.NoError(t, err)
	_, err = svc.AddMeasurement(ctx, owner, m.ID, member.MeasurementRequest{TakenOn: "2026-02-10", Notes: " after diet "})
	require.NoError(t, err)

	_, err = svc.AddMeasurement(ctx, owner, m.ID, member.MeasurementRequest{TakenOn: "10/02/2026"})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.AddMeasurement(ctx, owner, "missing", member.MeasurementRequest{})
	require.ErrorIs(t, err, core.ErrNotFound)

	list, err := svc.ListMeasurements(ctx, owner, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-02-10", list[0].TakenOn.Format("2006-01-02"))
	require.NotNil(t, list[0].Notes)
	assert.Equal(t, "after diet", *list[0].Notes)

	require.NoError(t, svc.DeleteMeasurement(ctx, owner, m.ID, first.ID))
	list, err = svc.ListMeasurements(ctx, owner, m.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
