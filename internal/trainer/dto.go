// AngelaMos | 2026
// dto.go

package trainer

import (
	"time"
)

type CreateTrainerRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	// Active defaults to true when omitted.
	Active *bool `json:"active"`
}

type UpdateTrainerRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=200"`
	Active   *bool   `json:"active"`
}

type TrainerResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToTrainerResponse(t *Trainer) TrainerResponse {
	return TrainerResponse{
		ID:        t.ID,
		FullName:  t.FullName,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
	}
}

func ToTrainerResponseList(ts []Trainer) []TrainerResponse {
	out := make([]TrainerResponse, 0, len(ts))
	for i := range ts {
		out = append(out, ToTrainerResponse(&ts[i]))
	}
	return out
}
