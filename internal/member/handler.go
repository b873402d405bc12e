// AngelaMos | 2026
// handler.go

package member

import (
	"encoding/json"
	"net/http"

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
	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{memberID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)

			r.Get("/measurements", h.ListMeasurements)
			r.Post("/measurements", h.AddMeasurement)
			r.Delete("/measurements/{measurementID}", h.DeleteMeasurement)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListParams{
		Page:     core.ParseIntQuery(r, "page", 1),
		PageSize: core.ParseIntQuery(r, "page_size", 20),
		Search:   q.Get("search"),
	}

	if raw := q.Get("status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			core.BadRequest(w, "status must be one of: ACTIVE INACTIVE BANNED")
			return
		}
		params.Status = status
	}
	params.Normalize()

	members, total, err := h.service.List(r.Context(), middleware.Caller(r.Context()), params)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.Paginated(w, ToMemberResponseList(members), params.Page, params.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if !h.decode(w, r, &req) {
		return
	}

	m, err := h.service.Create(r.Context(), middleware.Caller(r.Context()), req.Input())
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.Created(w, ToMemberResponse(m))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Get(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "memberID"))
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, ToMemberResponse(m))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if !h.decode(w, r, &req) {
		return
	}

	m, err := h.service.Update(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "memberID"),
		req.Input(),
	)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, ToMemberResponse(m))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "memberID"))
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.NoContent(w)
}

func (h *Handler) AddMeasurement(w http.ResponseWriter, r *http.Request) {
	var req MeasurementRequest
	if !h.decode(w, r, &req) {
		return
	}

	m, err := h.service.AddMeasurement(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "memberID"),
		req,
	)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.Created(w, ToMeasurementResponse(m))
}

func (h *Handler) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	ms, err := h.service.ListMeasurements(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "memberID"),
	)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, ToMeasurementResponseList(ms))
}

func (h *Handler) DeleteMeasurement(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteMeasurement(
		r.Context(),
		middleware.Caller(r.Context()),
		chi.URLParam(r, "memberID"),
		chi.URLParam(r, "measurementID"),
	)
	if err != nil {
		core.HandleError(w, err, "measurement")
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
