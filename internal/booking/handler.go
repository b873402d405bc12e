// AngelaMos | 2026
// handler.go

package booking

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/member"
	"github.com/fitsyy/gym-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterScopedRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", h.ListSlotBookings)
		r.Post("/", h.Create)
		r.Post("/quick", h.QuickCreateAndBook)
		r.Patch("/{bookingID}", h.Transition)
		r.Delete("/{bookingID}", h.Delete)
	})
}

// ListSlotBookings requires ?slot_id=.
func (h *Handler) ListSlotBookings(w http.ResponseWriter, r *http.Request) {
	slotID := r.URL.Query().Get("slot_id")
	if slotID == "" {
		core.BadRequest(w, "slot_id is required")
		return
	}

	sb, err := h.service.ListSlotBookings(r.Context(), middleware.Caller(r.Context()), slotID)
	if err != nil {
		core.HandleError(w, err, "slot")
		return
	}

	core.OK(w, ToSlotBookingsResponse(sb))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.service.CreateBooking(r.Context(), middleware.Caller(r.Context()), req.SlotID, req.MemberID)
	if err != nil {
		core.HandleError(w, err, "booking")
		return
	}

	core.Created(w, ToBookingResponse(b))
}

func (h *Handler) QuickCreateAndBook(w http.ResponseWriter, r *http.Request) {
	var req QuickBookRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, m, err := h.service.QuickCreateAndBook(
		r.Context(),
		middleware.Caller(r.Context()),
		req.SlotID,
		req.Member.Input(),
	)
	if err != nil {
		core.HandleError(w, err, "booking")
		return
	}

	core.Created(w, QuickBookResponse{
		Booking: ToBookingResponse(b),
		Member:  member.ToMemberResponse(m),
	})
}

func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if !h.decode(w, r, &req) {
		return
	}

	to, err := ParseStatus(req.Status)
	if err != nil {
		core.HandleError(w, err, "booking")
		return
	}

	b, err := h.service.TransitionStatus(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "bookingID"),
		to,
	)
	if err != nil {
		core.HandleError(w, err, "booking")
		return
	}

	core.OK(w, ToBookingResponse(b))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteBooking(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "bookingID"))
	if err != nil {
		core.HandleError(w, err, "booking")
		return
	}

	core.NoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}
	return true
}
