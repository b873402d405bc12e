// AngelaMos | 2026
// entity.go

package report

import "math"

// Counts is the raw tally read from the store for one tenant.
type Counts struct {
	TotalMembers  int `db:"total_members"`
	ActiveMembers int `db:"active_members"`
	TotalSlots    int `db:"total_slots"`
	TotalBookings int `db:"total_bookings"`
	Booked        int `db:"booked"`
	Cancelled     int `db:"cancelled"`
	NoShow        int `db:"no_show"`
}

type Summary struct {
	Counts
	BookingsPerSlot   float64
	AttendancePercent int
}

// Summarize derives the ratios from c. A tenant without slots has zero
// attendance rather than a division by zero.
func Summarize(c Counts) Summary {
	s := Summary{Counts: c}
	if c.TotalSlots == 0 {
		return s
	}

	ratio := float64(c.TotalBookings) / float64(c.TotalSlots)
	s.BookingsPerSlot = math.Round(ratio*100) / 100
	s.AttendancePercent = int(math.Round(ratio * 100))
	return s
}
