// AngelaMos | 2026
// dto.go

package invite

import (
	"time"

	"github.com/fitsyy/gym-backend/internal/access"
)

type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role"  validate:"required,oneof=MANAGER TRAINER STAFF MEMBER manager trainer staff member"`
}

type AcceptInviteRequest struct {
	Token string `json:"token" validate:"required,min=16"`
}

type InviteResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Role      access.Role `json:"role"`
	CreatedBy string      `json:"created_by"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreatedInviteResponse is returned once. The raw token is never stored.
type CreatedInviteResponse struct {
	InviteResponse
	Token     string `json:"token"`
	AcceptURL string `json:"accept_url"`
}

type AcceptanceResponse struct {
	TenantID string      `json:"tenant_id"`
	Slug     string      `json:"slug"`
	Role     access.Role `json:"role"`
}

func ToInviteResponse(inv *Invite) InviteResponse {
	return InviteResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role,
		CreatedBy: inv.CreatedBy,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

func ToInviteResponseList(invites []Invite) []InviteResponse {
	out := make([]InviteResponse, 0, len(invites))
	for i := range invites {
		out = append(out, ToInviteResponse(&invites[i]))
	}
	return out
}
