// AngelaMos | 2026
// entity.go

package tenant

import (
	"time"

	"github.com/fitsyy/gym-backend/internal/access"
)

type Tenant struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Membership is a tenant as seen by one of its users.
type Membership struct {
	Tenant
	Role     access.Role `db:"role"`
	JoinedAt time.Time   `db:"joined_at"`
}

// TeamMember is a user holding a role in the tenant.
type TeamMember struct {
	UserID   string      `db:"user_id"`
	Email    string      `db:"email"`
	Name     string      `db:"name"`
	Role     access.Role `db:"role"`
	JoinedAt time.Time   `db:"joined_at"`
}
