// AngelaMos | 2026
// dto.go

package schedule

import (
	"time"
)

type SlotRequest struct {
	Title     string    `json:"title"      validate:"required,max=200"`
	Type      string    `json:"type"       validate:"omitempty,oneof=CLASS PT class pt"`
	StartAt   time.Time `json:"start_at"   validate:"required"`
	EndAt     time.Time `json:"end_at"     validate:"required"`
	Capacity  int       `json:"capacity"   validate:"omitempty,min=1,max=1000"`
	TrainerID *string   `json:"trainer_id" validate:"omitempty,uuid"`
}

func (r SlotRequest) Input() Input {
	return Input(r)
}

type AssignTrainerRequest struct {
	// TrainerID nil clears the assignment.
	TrainerID *string `json:"trainer_id" validate:"omitempty,uuid"`
}

type SlotResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        SlotType  `json:"type"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Capacity    int       `json:"capacity"`
	Booked      int       `json:"booked"`
	Remaining   int       `json:"remaining"`
	TrainerID   *string   `json:"trainer_id"`
	TrainerName *string   `json:"trainer_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToSlotResponse(s *Slot) SlotResponse {
	return SlotResponse{
		ID:          s.ID,
		Title:       s.Title,
		Type:        s.Type,
		StartAt:     s.StartAt,
		EndAt:       s.EndAt,
		Capacity:    s.Capacity,
		Booked:      s.Booked,
		Remaining:   s.Remaining(),
		TrainerID:   s.TrainerID,
		TrainerName: s.TrainerName,
		CreatedAt:   s.CreatedAt,
	}
}

func ToSlotResponseList(slots []Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, ToSlotResponse(&slots[i]))
	}
	return out
}
