// AngelaMos | 2026
// dto.go

package tenant

import (
	"time"

	"github.com/fitsyy/gym-backend/internal/access"
)

type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	// Slug defaults to Slugify(Name) when empty.
	Slug string `json:"slug" validate:"omitempty,max=40"`
}

type RenameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ChangeSlugRequest struct {
	Slug string `json:"slug" validate:"required,max=40"`
}

type TransferRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type MembershipResponse struct {
	TenantResponse
	Role     access.Role `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

// OverviewResponse describes the tenant and what the caller may do in it.
type OverviewResponse struct {
	Tenant      TenantResponse         `json:"tenant"`
	Role        access.Role            `json:"role"`
	Permissions map[access.Action]bool `json:"permissions"`
}

type SlugCheckResponse struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type TeamMemberResponse struct {
	UserID   string      `json:"user_id"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Role     access.Role `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

func ToTenantResponse(t *Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
	}
}

func ToMembershipResponseList(ms []Membership) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MembershipResponse{
			TenantResponse: ToTenantResponse(&m.Tenant),
			Role:           m.Role,
			JoinedAt:       m.JoinedAt,
		})
	}
	return out
}

func ToTeamResponseList(team []TeamMember) []TeamMemberResponse {
	out := make([]TeamMemberResponse, 0, len(team))
	for _, m := range team {
		out = append(out, TeamMemberResponse(m))
	}
	return out
}
