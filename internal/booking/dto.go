// AngelaMos | 2026
// dto.go

package booking

import (
	"time"

	"github.com/fitsyy/gym-backend/internal/member"
)

type CreateBookingRequest struct {
	SlotID   string `json:"slot_id"   validate:"required,uuid"`
	MemberID string `json:"member_id" validate:"required,uuid"`
}

type QuickBookRequest struct {
	SlotID string               `json:"slot_id" validate:"required,uuid"`
	Member member.MemberRequest `json:"member"  validate:"required"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=BOOKED CANCELLED NO_SHOW booked cancelled no_show"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	SlotID     string    `json:"slot_id"`
	MemberID   string    `json:"member_id"`
	MemberName *string   `json:"member_name,omitempty"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type QuickBookResponse struct {
	Booking BookingResponse       `json:"booking"`
	Member  member.MemberResponse `json:"member"`
}

type SlotBookingsResponse struct {
	SlotID    string            `json:"slot_id"`
	Capacity  int               `json:"capacity"`
	Booked    int               `json:"booked"`
	Remaining int               `json:"remaining"`
	Bookings  []BookingResponse `json:"bookings"`
}

func ToBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		SlotID:     b.SlotID,
		MemberID:   b.MemberID,
		MemberName: b.MemberName,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func ToSlotBookingsResponse(sb *SlotBookings) SlotBookingsResponse {
	out := SlotBookingsResponse{
		SlotID:    sb.SlotID,
		Capacity:  sb.Occupancy.Capacity,
		Booked:    sb.Occupancy.Booked,
		Remaining: max(sb.Occupancy.Capacity-sb.Occupancy.Booked, 0),
		Bookings:  make([]BookingResponse, 0, len(sb.Bookings)),
	}
	for i := range sb.Bookings {
		out.Bookings = append(out.Bookings, ToBookingResponse(&sb.Bookings[i]))
	}
	return out
}
