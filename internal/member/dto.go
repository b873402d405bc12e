// AngelaMos | 2026
// dto.go

package member

import (
	"time"
)

const dateLayout = "2006-01-02"

type MemberRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email"     validate:"omitempty,email,max=255"`
	Phone    string `json:"phone"     validate:"omitempty,max=40"`
	Status   string `json:"status"    validate:"omitempty,oneof=ACTIVE INACTIVE BANNED active inactive banned"`
}

func (r MemberRequest) Input() Input {
	return Input(r)
}

type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Status   Status
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type MemberResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MeasurementRequest struct {
	// TakenOn is a calendar date (YYYY-MM-DD); empty means today.
	TakenOn string   `json:"taken_on" validate:"omitempty,datetime=2006-01-02"`
	Weight  *float64 `json:"weight"   validate:"omitempty,gte=0,lte=1000"`
	BodyFat *float64 `json:"body_fat" validate:"omitempty,gte=0,lte=100"`
	Height  *float64 `json:"height"   validate:"omitempty,gte=0,lte=300"`
	Chest   *float64 `json:"chest"    validate:"omitempty,gte=0,lte=500"`
	Waist   *float64 `json:"waist"    validate:"omitempty,gte=0,lte=500"`
	Hip     *float64 `json:"hip"      validate:"omitempty,gte=0,lte=500"`
	Notes   string   `json:"notes"    validate:"omitempty,max=1000"`
}

type MeasurementResponse struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	TakenOn   string    `json:"taken_on"`
	Weight    *float64  `json:"weight"`
	BodyFat   *float64  `json:"body_fat"`
	Height    *float64  `json:"height"`
	Chest     *float64  `json:"chest"`
	Waist     *float64  `json:"waist"`
	Hip       *float64  `json:"hip"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMemberResponse(m *Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		Phone:     m.Phone,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToMemberResponseList(members []Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, ToMemberResponse(&members[i]))
	}
	return out
}

func ToMeasurementResponse(m *Measurement) MeasurementResponse {
	return MeasurementResponse{
		ID:        m.ID,
		MemberID:  m.MemberID,
		TakenOn:   m.TakenOn.Format(dateLayout),
		Weight:    m.Weight,
		BodyFat:   m.BodyFat,
		Height:    m.Height,
		Chest:     m.Chest,
		Waist:     m.Waist,
		Hip:       m.Hip,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

func ToMeasurementResponseList(ms []Measurement) []MeasurementResponse {
	out := make([]MeasurementResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToMeasurementResponse(&ms[i]))
	}
	return out
}
