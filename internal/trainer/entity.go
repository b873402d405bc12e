// AngelaMos | 2026
// entity.go

package trainer

import (
	"time"
)

type Trainer struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	FullName  string    `db:"full_name"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
