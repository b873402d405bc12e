// AngelaMos | 2026
// entity.go

package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/fitsyy/gym-backend/internal/core"
)

type SlotType string

const (
	TypeClass SlotType = "CLASS"
	TypePT    SlotType = "PT"
)

const DefaultCapacity = 10

func ParseSlotType(s string) (SlotType, error) {
	switch t := SlotType(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return TypeClass, nil
	case TypeClass, TypePT:
		return t, nil
	}
	return "", fmt.Errorf("type must be one of: CLASS PT: %w", core.ErrInvalidInput)
}

type Slot struct {
	ID          string    `db:"id"`
	TenantID    string    `db:"tenant_id"`
	Title       string    `db:"title"`
	Type        SlotType  `db:"type"`
	StartAt     time.Time `db:"start_at"`
	EndAt       time.Time `db:"end_at"`
	Capacity    int       `db:"capacity"`
	TrainerID   *string   `db:"trainer_id"`
	TrainerName *string   `db:"trainer_name"`
	Booked      int       `db:"booked"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (s *Slot) Remaining() int {
	if n := s.Capacity - s.Booked; n > 0 {
		return n
	}
	return 0
}

func (s *Slot) Full() bool {
	return s.Booked >= s.Capacity
}

// Input carries the editable slot fields. Zero Capacity means the default.
type Input struct {
	Title     string
	Type      string
	StartAt   time.Time
	EndAt     time.Time
	Capacity  int
	TrainerID *string
}

// apply validates in and copies it onto s. On error s is unchanged.
func (s *Slot) apply(in Input) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("title is required: %w", core.ErrInvalidInput)
	}

	typ, err := ParseSlotType(in.Type)
	if err != nil {
		return err
	}

	if in.StartAt.IsZero() || in.EndAt.IsZero() {
		return fmt.Errorf("start and end are required: %w", core.ErrInvalidInput)
	}
	if !in.EndAt.After(in.StartAt) {
		return fmt.Errorf("end must be after start: %w", core.ErrInvalidInput)
	}

	capacity := in.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 1 {
		return fmt.Errorf("capacity must be at least 1: %w", core.ErrInvalidInput)
	}

	var trainerID *string
	if in.TrainerID != nil {
		if id := strings.TrimSpace(*in.TrainerID); id != "" {
			trainerID = &id
		}
	}

	s.Title = title
	s.Type = typ
	s.StartAt = in.StartAt.UTC()
	s.EndAt = in.EndAt.UTC()
	s.Capacity = capacity
	s.TrainerID = trainerID

	return nil
}

// Window is a half-open [From, To) time range for slot listings.
type Window struct {
	From time.Time
	To   time.Time
}
