// AngelaMos | 2026
// role.go

package access

import (
	"fmt"
	"strings"

	"github.com/fitsyy/gym-backend/internal/core"
)

// Role is a tenant-scoped privilege level. The zero value RoleNone means the
// user holds no membership in the tenant.
type Role string

const (
	RoleNone    Role = ""
	RoleMember  Role = "MEMBER"
	RoleStaff   Role = "STAFF"
	RoleTrainer Role = "TRAINER"
	RoleManager Role = "MANAGER"
	RoleOwner   Role = "OWNER"
)

var rank = map[Role]int{
	RoleOwner:   4,
	RoleManager: 3,
	RoleTrainer: 2,
	RoleStaff:   1,
	RoleMember:  0,
}

// Roles lists every assignable role from most to least privileged.
func Roles() []Role {
	return []Role{RoleOwner, RoleManager, RoleTrainer, RoleStaff, RoleMember}
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rank[r]; !ok {
		return RoleNone, fmt.Errorf("unknown role %q: %w", s, core.ErrInvalidInput)
	}
	return r, nil
}

func (r Role) String() string {
	if r == RoleNone {
		return "NONE"
	}
	return string(r)
}

func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Rank returns the position of r in the role order, -1 for RoleNone or an
// unknown value.
func (r Role) Rank() int {
	if n, ok := rank[r]; ok {
		return n
	}
	return -1
}

// AtLeast reports whether r ranks at or above minimum.
func (r Role) AtLeast(minimum Role) bool {
	return IsAuthorized(r, minimum)
}

// IsAuthorized is false for RoleNone and for unknown roles; otherwise it
// compares ranks.
func IsAuthorized(role, minimum Role) bool {
	have, ok := rank[role]
	if !ok {
		return false
	}
	need, ok := rank[minimum]
	if !ok {
		return false
	}
	return have >= need
}
