// AngelaMos | 2026
// handler.go

package trainer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fitsyy/gym-backend/internal/core"
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
	r.Route("/trainers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{trainerID}", h.Get)
		r.Patch("/{trainerID}", h.Update)
		r.Delete("/{trainerID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			core.BadRequest(w, "active must be true or false")
			return
		}
		active = &v
	}

	trainers, err := h.service.List(r.Context(), middleware.Caller(r.Context()), active)
	if err != nil {
		core.HandleError(w, err, "trainer")
		return
	}

	core.OK(w, ToTrainerResponseList(trainers))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.Create(r.Context(), middleware.Caller(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "trainer")
		return
	}

	core.Created(w, ToTrainerResponse(t))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Get(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "trainerID"))
	if err != nil {
		core.HandleError(w, err, "trainer")
		return
	}

	core.OK(w, ToTrainerResponse(t))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.Update(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "trainerID"),
		req,
	)
	if err != nil {
		core.HandleError(w, err, "trainer")
		return
	}

	core.OK(w, ToTrainerResponse(t))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "trainerID"))
	if err != nil {
		core.HandleError(w, err, "trainer")
		return
	}

	core.NoContent(w)
}
