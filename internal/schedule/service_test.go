// AngelaMos | 2026
// service_test.go

package schedule_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/access/accesstest"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/schedule"
)

type fakeRepo struct {
	mu       sync.Mutex
	slots    map[string]*schedule.Slot
	trainers map[string]string
	booked   map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots:    make(map[string]*schedule.Slot),
		trainers: map[string]string{"trainer-1": "t1", "trainer-2": "t2"},
		booked:   make(map[string]int),
	}
}

func (r *fakeRepo) Create(_ context.Context, s *schedule.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.CreatedAt = time.Now()
	cp := *s
	r.slots[s.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, tenantID, id string) (*schedule.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok || s.TenantID != tenantID {
		return nil, fmt.Errorf("get slot: %w", core.ErrNotFound)
	}
	cp := *s
	cp.Booked = r.booked[id]
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, tenantID string, w schedule.Window) ([]schedule.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []schedule.Slot
	for _, s := range r.slots {
		if s.TenantID == tenantID && !s.StartAt.Before(w.From) && s.StartAt.Before(w.To) {
			cp := *s
			cp.Booked = r.booked[s.ID]
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, s *schedule.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.slots[s.ID]
	if !ok || existing.TenantID != s.TenantID {
		return fmt.Errorf("update slot: %w", core.ErrNotFound)
	}
	if s.Capacity < r.booked[s.ID] {
		return fmt.Errorf("capacity cannot be lower than the %d existing bookings: %w",
			r.booked[s.ID], core.ErrInvalidInput)
	}
	cp := *s
	r.slots[s.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok || s.TenantID != tenantID {
		return fmt.Errorf("delete slot: %w", core.ErrNotFound)
	}
	delete(r.slots, id)
	return nil
}

func (r *fakeRepo) SetTrainer(_ context.Context, tenantID, slotID string, trainerID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.TenantID != tenantID {
		return fmt.Errorf("assign trainer: slot: %w", core.ErrNotFound)
	}
	s.TrainerID = trainerID
	return nil
}

func (r *fakeRepo) TrainerExists(_ context.Context, tenantID, trainerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trainers[trainerID] == tenantID, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

type fixture struct {
	svc  *schedule.Service
	repo *fakeRepo
}

func newFixture() *fixture {
	m := accesstest.NewMemberships()
	m.Set("t1", "owner", access.RoleOwner)
	m.Set("t1", "manager", access.RoleManager)
	m.Set("t1", "staff", access.RoleStaff)
	m.Set("t1", "member", access.RoleMember)
	repo := newFakeRepo()
	return &fixture{svc: schedule.NewService(repo, m.Evaluator()), repo: repo}
}

func as(userID string) access.Caller {
	return access.Caller{UserID: userID, TenantID: "t1"}
}

var start = time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

func TestCreateSlotDefaults(t *testing.T) {
	f := newFixture()

	slot, err := f.svc.Create(context.Background(), as("manager"), schedule.Input{
		Title:   " Spinning ",
		StartAt: start,
		EndAt:   start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Spinning", slot.Title)
	assert.Equal(t, schedule.TypeClass, slot.Type)
	assert.Equal(t, schedule.DefaultCapacity, slot.Capacity)
	assert.Nil(t, slot.TrainerID)
}

func TestCreateSlotEndNotAfterStartPersistsNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, end := range []time.Time{start, start.Add(-time.Minute)} {
		_, err := f.svc.Create(ctx, as("manager"), schedule.Input{
			Title:   "Yoga",
			StartAt: start,
			EndAt:   end,
		})
		require.ErrorIs(t, err, core.ErrInvalidInput)
	}
	assert.Equal(t, 0, f.repo.count())
}

func TestCreateSlotValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	base := schedule.Input{Title: "PT", StartAt: start, EndAt: start.Add(time.Hour)}

	bad := base
	bad.Capacity = -1
	_, err := f.svc.Create(ctx, as("manager"), bad)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	bad = base
	bad.Type = "SAUNA"
	_, err = f.svc.Create(ctx, as("manager"), bad)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	bad = base
	bad.Title = ""
	_, err = f.svc.Create(ctx, as("manager"), bad)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	foreign := "trainer-2"
	bad = base
	bad.TrainerID = &foreign
	_, err = f.svc.Create(ctx, as("manager"), bad)
	require.ErrorIs(t, err, core.ErrNotFound)

	_, err = f.svc.Create(ctx, as("staff"), base)
	require.ErrorIs(t, err, core.ErrForbidden)

	assert.Equal(t, 0, f.repo.count())
}

func TestAssignTrainerRequiresManager(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	slot, err := f.svc.Create(ctx, as("manager"), schedule.Input{
		Title: "Boxing", StartAt: start, EndAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	trainerID := "trainer-1"
	err = f.svc.AssignTrainer(ctx, as("staff"), slot.ID, &trainerID)
	require.ErrorIs(t, err, core.ErrForbidden)

	got, err := f.svc.Get(ctx, as("staff"), slot.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TrainerID)

	require.NoError(t, f.svc.AssignTrainer(ctx, as("manager"), slot.ID, &trainerID))
	got, err = f.svc.Get(ctx, as("member"), slot.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TrainerID)
	assert.Equal(t, "trainer-1", *got.TrainerID)

	require.NoError(t, f.svc.AssignTrainer(ctx, as("owner"), slot.ID, nil))
	got, err = f.svc.Get(ctx, as("member"), slot.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TrainerID)

	foreign := "trainer-2"
	err = f.svc.AssignTrainer(ctx, as("manager"), slot.ID, &foreign)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateCannotDropCapacityBelowBooked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	slot, err := f.svc.Create(ctx, as("manager"), schedule.Input{
		Title: "HIIT", StartAt: start, EndAt: start.Add(time.Hour), Capacity: 5,
	})
	require.NoError(t, err)
	f.repo.booked[slot.ID] = 3

	_, err = f.svc.Update(ctx, as("manager"), slot.ID, schedule.Input{
		Title: "HIIT", StartAt: start, EndAt: start.Add(time.Hour), Capacity: 2,
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	updated, err := f.svc.Update(ctx, as("manager"), slot.ID, schedule.Input{
		Title: "HIIT", StartAt: start, EndAt: start.Add(time.Hour), Capacity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Capacity)
	assert.Equal(t, 3, updated.Booked)
	assert.True(t, updated.Full())
	assert.Equal(t, 0, updated.Remaining())
}

func TestListWindow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := range 3 {
		at := start.Add(time.Duration(i) * 24 * time.Hour)
		_, err := f.svc.Create(ctx, as("manager"), schedule.Input{Title: "Daily", StartAt: at, EndAt: at.Add(time.Hour)})
		require.NoError(t, err)
	}

	slots, err := f.svc.List(ctx, as("member"), schedule.Window{From: start, To: start.Add(48 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	_, err = f.svc.List(ctx, as("member"), schedule.Window{From: start, To: start})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = f.svc.List(ctx, as("member"), schedule.Window{From: start, To: start.Add(schedule.MaxWindow + time.Hour)})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}
