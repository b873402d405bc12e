// AngelaMos | 2026
// handler.go

package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/middleware"
)

type SummaryResponse struct {
	TotalMembers      int     `json:"total_members"`
	ActiveMembers     int     `json:"active_members"`
	TotalSlots        int     `json:"total_slots"`
	TotalBookings     int     `json:"total_bookings"`
	Booked            int     `json:"booked"`
	Cancelled         int     `json:"cancelled"`
	NoShow            int     `json:"no_show"`
	BookingsPerSlot   float64 `json:"bookings_per_slot"`
	AttendancePercent int     `json:"attendance_percent"`
}

func ToSummaryResponse(s *Summary) SummaryResponse {
	return SummaryResponse{
		TotalMembers:      s.TotalMembers,
		ActiveMembers:     s.ActiveMembers,
		TotalSlots:        s.TotalSlots,
		TotalBookings:     s.TotalBookings,
		Booked:            s.Booked,
		Cancelled:         s.Cancelled,
		NoShow:            s.NoShow,
		BookingsPerSlot:   s.BookingsPerSlot,
		AttendancePercent: s.AttendancePercent,
	}
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterScopedRoutes(r chi.Router) {
	r.Get("/reports/summary", h.Summary)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), middleware.Caller(r.Context()))
	if err != nil {
		core.HandleError(w, err, "report")
		return
	}

	core.OK(w, ToSummaryResponse(summary))
}
