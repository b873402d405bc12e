// AngelaMos | 2026
// service_test.go

package user_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/user"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*user.User)}
}

func (r *fakeRepo) Upsert(_ context.Context, u *user.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			existing.DeletedAt = nil
			*u = *existing
			return false, nil
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return true, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *fakeRepo) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	if !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	existing.Name = u.Name
	existing.UpdatedAt = time.Now()
	u.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *fakeRepo) IncrementTokenVersion(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	u.TokenVersion++
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (r *fakeRepo) List(_ context.Context, p user.ListUsersParams) ([]user.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []user.User
	for _, u := range r.users {
		if !u.IsDeleted() {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func TestFindOrCreateByEmail(t *testing.T) {
	svc := user.NewService(newFakeRepo())
	ctx := context.Background()

	first, created, err := svc.FindOrCreateByEmail(ctx, " Mehmet.Kaya@Example.com")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "mehmet.kaya@example.com", first.Email)
	assert.Equal(t, "Mehmet Kaya", first.Name)

	again, created, err := svc.FindOrCreateByEmail(ctx, "mehmet.kaya@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
}

func TestFindOrCreateByEmail_Empty(t *testing.T) {
	svc := user.NewService(newFakeRepo())

	_, _, err := svc.FindOrCreateByEmail(context.Background(), "  ")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateMe(t *testing.T) {
	svc := user.NewService(newFakeRepo())
	ctx := context.Background()

	info, _, err := svc.FindOrCreateByEmail(ctx, "zeynep@example.com")
	require.NoError(t, err)

	name := "Zeynep Demir"
	updated, err := svc.UpdateMe(ctx, info.ID, user.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	blank := "   "
	_, err = svc.UpdateMe(ctx, info.ID, user.UpdateUserRequest{Name: &blank})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.UpdateMe(ctx, "", user.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestDeleteMe_ThenSignInRestores(t *testing.T) {
	svc := user.NewService(newFakeRepo())
	ctx := context.Background()

	info, _, err := svc.FindOrCreateByEmail(ctx, "gone@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMe(ctx, info.ID))

	_, err = svc.GetMe(ctx, info.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	back, created, err := svc.FindOrCreateByEmail(ctx, "gone@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, info.ID, back.ID)
}

func TestDefaultName(t *testing.T) {
	tests := map[string]string{
		"ayse.yilmaz@x.com": "Ayse Yilmaz",
		"john_doe@x.com":    "John Doe",
		"solo@x.com":        "Solo",
		"@x.com":            "@x.com",
	}
	for email, want := range tests {
		t.Run(email, func(t *testing.T) {
			assert.Equal(t, want, user.DefaultName(email))
		})
	}
}
