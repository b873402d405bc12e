// AngelaMos | 2026
// entity.go

package member

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fitsyy/gym-backend/internal/core"
)

var validate = validator.New()

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusBanned   Status = "BANNED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusActive, StatusInactive, StatusBanned:
		return st, nil
	}
	return "", fmt.Errorf("unknown member status %q: %w", s, core.ErrInvalidInput)
}

type Member struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	FullName  string    `db:"full_name"`
	Email     *string   `db:"email"`
	Phone     *string   `db:"phone"`
	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Input carries the editable member fields.
type Input struct {
	FullName string
	Email    string
	Phone    string
	Status   string
}

// NewMember validates in and builds a member for tenantID. Status defaults
// to ACTIVE.
func NewMember(tenantID string, in Input) (*Member, error) {
	m := &Member{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Status:   StatusActive,
	}
	if err := m.apply(in); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Member) apply(in Input) error {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return fmt.Errorf("full name is required: %w", core.ErrInvalidInput)
	}
	m.FullName = name

	m.Email = nil
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if err := validate.Var(email, "email"); err != nil {
			return fmt.Errorf("email must be a valid email: %w", core.ErrInvalidInput)
		}
		m.Email = &email
	}

	m.Phone = nil
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		m.Phone = &phone
	}

	if in.Status != "" {
		st, err := ParseStatus(in.Status)
		if err != nil {
			return err
		}
		m.Status = st
	}

	return nil
}

// Measurement is one body measurement entry. All readings are optional.
type Measurement struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	MemberID  string    `db:"member_id"`
	TakenOn   time.Time `db:"taken_on"`
	Weight    *float64  `db:"weight"`
	BodyFat   *float64  `db:"body_fat"`
	Height    *float64  `db:"height"`
	Chest     *float64  `db:"chest"`
	Waist     *float64  `db:"waist"`
	Hip       *float64  `db:"hip"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}
