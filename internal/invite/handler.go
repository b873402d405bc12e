// AngelaMos | 2026
// handler.go

package invite

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

// RegisterRoutes mounts the accept endpoint, which is not tenant scoped.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Post("/invites/accept", h.Accept)
}

func (h *Handler) RegisterScopedRoutes(r chi.Router) {
	r.Route("/invites", func(r chi.Router) {
		r.Get("/", h.ListPending)
		r.Post("/", h.Create)
		r.Delete("/{inviteID}", h.Revoke)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	created, err := h.service.Create(r.Context(), middleware.Caller(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "invite")
		return
	}

	core.Created(w, CreatedInviteResponse{
		InviteResponse: ToInviteResponse(created.Invite),
		Token:          created.Token,
		AcceptURL:      created.AcceptURL,
	})
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	var req AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acc, err := h.service.Accept(r.Context(), middleware.GetUserID(r.Context()), req.Token)
	if err != nil {
		core.HandleError(w, err, "invite")
		return
	}

	core.OK(w, AcceptanceResponse(*acc))
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	invites, err := h.service.ListPending(r.Context(), middleware.Caller(r.Context()))
	if err != nil {
		core.HandleError(w, err, "invite")
		return
	}

	core.OK(w, ToInviteResponseList(invites))
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	err := h.service.Revoke(r.Context(), middleware.Caller(r.Context()), chi.URLParam(r, "inviteID"))
	if err != nil {
		core.HandleError(w, err, "invite")
		return
	}

	core.NoContent(w)
}
