// AngelaMos | 2026
// fakes_test.go

package tenant_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/access/accesstest"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/tenant"
)

type fakeRepo struct {
	mu          sync.Mutex
	tenants     map[string]*tenant.Tenant
	roles       map[string]map[string]access.Role
	emails      map[string]string
	memberships *accesstest.Memberships
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:     make(map[string]*tenant.Tenant),
		roles:       make(map[string]map[string]access.Role),
		emails:      make(map[string]string),
		memberships: accesstest.NewMemberships(),
	}
}

func (r *fakeRepo) addUser(id, email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails[email] = id
}

func (r *fakeRepo) setRole(tenantID, userID string, role access.Role) {
	if r.roles[tenantID] == nil {
		r.roles[tenantID] = make(map[string]access.Role)
	}
	if role == access.RoleNone {
		delete(r.roles[tenantID], userID)
	} else {
		r.roles[tenantID][userID] = role
	}
	r.memberships.Set(tenantID, userID, role)
}

func (r *fakeRepo) join(tenantID, userID string, role access.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setRole(tenantID, userID, role)
}

func (r *fakeRepo) CreateWithOwner(_ context.Context, t *tenant.Tenant, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tenants {
		if existing.Slug == t.Slug {
			return fmt.Errorf("create tenant: %w", core.ErrDuplicateKey)
		}
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.tenants[t.ID] = &cp
	r.setRole(t.ID, ownerID, access.RoleOwner)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, fmt.Errorf("get tenant: %w", core.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get tenant by slug: %w", core.ErrNotFound)
}

func (r *fakeRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (r *fakeRepo) ListForUser(_ context.Context, userID string) ([]tenant.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []tenant.Membership
	for tenantID, members := range r.roles {
		if role, ok := members[userID]; ok {
			out = append(out, tenant.Membership{Tenant: *r.tenants[tenantID], Role: role})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) ListTeam(_ context.Context, tenantID string) ([]tenant.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []tenant.TeamMember
	for userID, role := range r.roles[tenantID] {
		out = append(out, tenant.TeamMember{UserID: userID, Role: role})
	}
	return out, nil
}

func (r *fakeRepo) UpdateName(_ context.Context, id, name string) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, fmt.Errorf("update tenant name: %w", core.ErrNotFound)
	}
	t.Name = name
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) UpdateSlug(_ context.Context, id, slug string) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for otherID, other := range r.tenants {
		if otherID != id && other.Slug == slug {
			return nil, fmt.Errorf("update tenant slug: %w", core.ErrDuplicateKey)
		}
	}
	t, ok := r.tenants[id]
	if !ok {
		return nil, fmt.Errorf("update tenant slug: %w", core.ErrNotFound)
	}
	t.Slug = slug
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) TransferOwnership(
	_ context.Context,
	tenantID, currentOwnerID, email string,
) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	newOwnerID, ok := r.emails[email]
	if !ok {
		return "", fmt.Errorf("transfer ownership: user: %w", core.ErrNotFound)
	}
	if newOwnerID == currentOwnerID {
		return "", fmt.Errorf("you already own this tenant: %w", core.ErrInvalidInput)
	}
	if r.roles[tenantID][currentOwnerID] != access.RoleOwner {
		return "", fmt.Errorf("transfer ownership: %w", core.ErrForbidden)
	}
	r.setRole(tenantID, currentOwnerID, access.RoleManager)
	r.setRole(tenantID, newOwnerID, access.RoleOwner)
	return newOwnerID, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[id]; !ok {
		return fmt.Errorf("delete tenant: %w", core.ErrNotFound)
	}
	delete(r.tenants, id)
	for userID := range r.roles[id] {
		r.memberships.Set(id, userID, access.RoleNone)
	}
	delete(r.roles, id)
	return nil
}

func (r *fakeRepo) RemoveMembership(_ context.Context, tenantID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[tenantID][userID]
	if !ok || role == access.RoleOwner {
		return fmt.Errorf("leave tenant: %w", core.ErrNotFound)
	}
	r.setRole(tenantID, userID, access.RoleNone)
	return nil
}

func newService() (*tenant.Service, *fakeRepo) {
	repo := newFakeRepo()
	return tenant.NewService(repo, repo.memberships.Evaluator()), repo
}
