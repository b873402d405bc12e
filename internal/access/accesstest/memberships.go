// AngelaMos | 2026
// memberships.go

// Package accesstest provides an in-memory access.MembershipReader for
// tests of tenant-scoped services.
package accesstest

import (
	"context"
	"sync"

	"github.com/fitsyy/gym-backend/internal/access"
)

type Memberships struct {
	mu    sync.Mutex
	roles map[string]access.Role
	// Err, when set, is returned by every lookup.
	Err error
}

func NewMemberships() *Memberships {
	return &Memberships{roles: make(map[string]access.Role)}
}

func key(tenantID, userID string) string {
	return tenantID + "/" + userID
}

func (m *Memberships) Set(tenantID, userID string, role access.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if role == access.RoleNone {
		delete(m.roles, key(tenantID, userID))
		return
	}
	m.roles[key(tenantID, userID)] = role
}

func (m *Memberships) GetRole(
	_ context.Context,
	tenantID, userID string,
) (access.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return access.RoleNone, m.Err
	}
	return m.roles[key(tenantID, userID)], nil
}

// Evaluator wires m into an evaluator using the default policy.
func (m *Memberships) Evaluator() *access.Evaluator {
	return access.NewEvaluator(m, nil)
}
