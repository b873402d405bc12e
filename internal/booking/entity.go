// AngelaMos | 2026
// entity.go

package booking

import (
	"time"
)

type Booking struct {
	ID         string    `db:"id"`
	TenantID   string    `db:"tenant_id"`
	SlotID     string    `db:"time_slot_id"`
	MemberID   string    `db:"member_id"`
	Status     Status    `db:"status"`
	MemberName *string   `db:"member_name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Occupancy is a slot's capacity and the number of seats held by BOOKED rows.
type Occupancy struct {
	Capacity int `db:"capacity"`
	Booked   int `db:"booked"`
}

func (o Occupancy) Full() bool {
	return o.Booked >= o.Capacity
}

// SlotBookings lists every booking on a slot, whatever its status.
type SlotBookings struct {
	SlotID    string
	Occupancy Occupancy
	Bookings  []Booking
}
