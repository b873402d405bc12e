// AngelaMos | 2026
// entity.go

package invite

import (
	"fmt"
	"time"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
)

type Invite struct {
	ID         string      `db:"id"`
	TenantID   string      `db:"tenant_id"`
	Email      string      `db:"email"`
	Role       access.Role `db:"role"`
	TokenHash  string      `db:"token_hash"`
	CreatedBy  string      `db:"created_by"`
	ExpiresAt  time.Time   `db:"expires_at"`
	AcceptedAt *time.Time  `db:"accepted_at"`
	AcceptedBy *string     `db:"accepted_by"`
	CreatedAt  time.Time   `db:"created_at"`
}

func (i *Invite) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

func (i *Invite) IsSpent() bool {
	return i.AcceptedAt != nil
}

// Acceptance is what the invitee gets back: where they landed and as what.
type Acceptance struct {
	TenantID string      `db:"tenant_id"`
	Slug     string      `db:"slug"`
	Role     access.Role `db:"role"`
}

// invitable lists the roles an invite may grant. Ownership only moves by
// transfer.
var invitable = map[access.Role]bool{
	access.RoleManager: true,
	access.RoleTrainer: true,
	access.RoleStaff:   true,
	access.RoleMember:  true,
}

func Invitable(r access.Role) bool {
	return invitable[r]
}

// ResolveAcceptance decides the membership role after accepting inv.
// existing is the invitee's current role in the tenant, RoleNone if absent;
// a role that already outranks the invite is kept.
func ResolveAcceptance(inv *Invite, existing access.Role, now time.Time) (access.Role, error) {
	if inv.IsSpent() {
		return access.RoleNone, fmt.Errorf("invite has already been used: %w", core.ErrInvalidInput)
	}
	if inv.IsExpired(now) {
		return access.RoleNone, fmt.Errorf("invite has expired: %w", core.ErrInvalidInput)
	}
	if existing.Rank() >= inv.Role.Rank() {
		return existing, nil
	}
	return inv.Role, nil
}
