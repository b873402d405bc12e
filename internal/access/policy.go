// AngelaMos | 2026
// policy.go

package access

import (
	"fmt"

	"github.com/fitsyy/gym-backend/internal/config"
)

type Action string

const (
	ActionTenantRead     Action = "tenant.read"
	ActionTenantRename   Action = "tenant.rename"
	ActionTenantSlug     Action = "tenant.change_slug"
	ActionTenantTransfer Action = "tenant.transfer"
	ActionTenantDelete   Action = "tenant.delete"
	ActionInviteCreate   Action = "invite.create"
	ActionMemberWrite    Action = "member.write"
	ActionTrainerWrite   Action = "trainer.write"
	ActionSlotWrite      Action = "slot.write"
	ActionSlotAssign     Action = "slot.assign_trainer"
	ActionBookingWrite   Action = "booking.write"
	ActionReportRead     Action = "report.read"
)

// Policy maps each action to the minimum role allowed to perform it.
type Policy map[Action]Role

// DefaultPolicy returns the fixed gates. Member and booking writes default to
// any tenant member; NewPolicy overrides them from configuration.
func DefaultPolicy() Policy {
	return Policy{
		ActionTenantRead:     RoleMember,
		ActionTenantRename:   RoleManager,
		ActionTenantSlug:     RoleOwner,
		ActionTenantTransfer: RoleOwner,
		ActionTenantDelete:   RoleOwner,
		ActionInviteCreate:   RoleManager,
		ActionMemberWrite:    RoleMember,
		ActionTrainerWrite:   RoleManager,
		ActionSlotWrite:      RoleManager,
		ActionSlotAssign:     RoleManager,
		ActionBookingWrite:   RoleMember,
		ActionReportRead:     RoleMember,
	}
}

func NewPolicy(cfg config.AccessConfig) (Policy, error) {
	p := DefaultPolicy()

	memberWrite, err := ParseRole(cfg.MemberWriteMinRole)
	if err != nil {
		return nil, fmt.Errorf("member write min role: %w", err)
	}
	p[ActionMemberWrite] = memberWrite

	bookingWrite, err := ParseRole(cfg.BookingWriteMinRole)
	if err != nil {
		return nil, fmt.Errorf("booking write min role: %w", err)
	}
	p[ActionBookingWrite] = bookingWrite

	return p, nil
}

// Minimum returns the gate for action. Unknown actions require OWNER.
func (p Policy) Minimum(action Action) Role {
	if r, ok := p[action]; ok {
		return r
	}
	return RoleOwner
}
