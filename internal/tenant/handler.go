// AngelaMos | 2026
// handler.go

package tenant

import (
	"encoding/json"
	"net/http"
	"strings"

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

// RegisterRoutes mounts the endpoints that operate outside any tenant.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/tenants", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListMine)
		r.Post("/", h.Create)
		r.Get("/slug-available", h.CheckSlug)
	})
}

// RegisterScopedRoutes mounts endpoints under an already resolved
// /t/{tenantSlug} group.
func (h *Handler) RegisterScopedRoutes(r chi.Router) {
	r.Get("/", h.Overview)
	r.Delete("/", h.Delete)
	r.Get("/team", h.ListTeam)
	r.Patch("/name", h.Rename)
	r.Patch("/slug", h.ChangeSlug)
	r.Post("/transfer", h.TransferOwnership)
	r.Post("/leave", h.Leave)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.service.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.OK(w, ToMembershipResponseList(memberships))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.Created(w, ToTenantResponse(t))
}

// CheckSlug accepts either ?slug= or ?name=, the latter being slugified
// first so clients can preview the default.
func (h *Handler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	slug := strings.TrimSpace(q.Get("slug"))
	if slug == "" {
		slug = Slugify(q.Get("name"))
	}
	if slug == "" {
		core.BadRequest(w, "slug or name is required")
		return
	}

	resp, err := h.service.CheckSlug(r.Context(), slug)
	if err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Overview(r.Context(), middleware.Caller(r.Context()))
	if err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.service.ListTeam(r.Context(), middleware.Caller(r.Context()))
	if err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.OK(w, ToTeamResponseList(team))
}

func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.service.Rename(r.Context(), middleware.Caller(r.Context()), req.Name)
	if err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.OK(w, ToTenantResponse(t))
}

func (h *Handler) ChangeSlug(w http.ResponseWriter, r *http.Request) {
	var req ChangeSlugRequest
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.service.ChangeSlug(r.Context(), middleware.Caller(r.Context()), req.Slug)
	if err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.OK(w, ToTenantResponse(t))
}

func (h *Handler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.service.TransferOwnership(r.Context(), middleware.Caller(r.Context()), req.Email)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.Caller(r.Context())); err != nil {
		core.HandleError(w, err, "tenant")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Leave(r.Context(), middleware.Caller(r.Context())); err != nil {
		core.HandleError(w, err, "tenant")
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
