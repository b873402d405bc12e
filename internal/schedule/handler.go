// AngelaMos | 2026
// handler.go

package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/middleware"
)

const defaultWindow = 7 * 24 * time.Hour

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
	r.Route("/slots", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{slotID}", h.Get)
		r.Put("/{slotID}", h.Update)
		r.Delete("/{slotID}", h.Delete)
		r.Put("/{slotID}/trainer", h.AssignTrainer)
	})
}

// List reads ?from=&to= as RFC 3339 timestamps. from defaults to the start
// of the current UTC day and to to one week after from.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			core.BadRequest(w, "from must be an RFC 3339 timestamp")
			return
		}
		from = t
	}

	to := from.Add(defaultWindow)
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			core.BadRequest(w, "to must be an RFC 3339 timestamp")
			return
		}
		to = t
	}

	slots, err := h.service.List(r.Context(), middleware.Caller(r.Context()), Window{From: from, To: to})
	if err != nil {
		core.HandleError(w, err, "slot")
		return
	}

	core.OK(w, ToSlotResponseList(slots))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if !h.decode(w, r, &req) {
		return
	}

	slot, err := h.service.Create(r.Context(), middleware.Caller(r.Context()), req.Input())
	if err != nil {
		core.HandleError(w, err, "slot")
		return
	}

	core.Created(w, ToSlotResponse(slot))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slot, err := h.service.Get(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "slotID"))
	if err != nil {
		core.HandleError(w, err, "slot")
		return
	}

	core.OK(w, ToSlotResponse(slot))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if !h.decode(w, r, &req) {
		return
	}

	slot, err := h.service.Update(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "slotID"),
		req.Input(),
	)
	if err != nil {
		core.HandleError(w, err, "slot")
		return
	}

	core.OK(w, ToSlotResponse(slot))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "slotID"))
	if err != nil {
		core.HandleError(w, err, "slot")
		return
	}

	core.NoContent(w)
}

func (h *Handler) AssignTrainer(w http.ResponseWriter, r *http.Request) {
	var req AssignTrainerRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.service.AssignTrainer(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "slotID"),
		req.TrainerID,
	)
	if err != nil {
		core.HandleError(w, err, "slot")
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
