// AngelaMos | 2026
// status.go

package booking

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fitsyy/gym-backend/internal/core"
)

type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusBooked, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", fmt.Errorf("status must be one of: BOOKED CANCELLED NO_SHOW: %w", core.ErrInvalidInput)
}

// Active reports whether the booking holds a seat.
func (s Status) Active() bool {
	return s == StatusBooked
}

// Transitions is a table of allowed status moves.
type Transitions map[Status][]Status

func (t Transitions) Allow(from Status, to ...Status) Transitions {
	for _, s := range to {
		if !slices.Contains(t[from], s) {
			t[from] = append(t[from], s)
		}
	}
	return t
}

func (t Transitions) Can(from, to Status) bool {
	return slices.Contains(t[from], to)
}

// Lifecycle lets a booking be cancelled or marked as a no-show and any of
// those be undone back to BOOKED.
var Lifecycle = Transitions{}.
	Allow(StatusBooked, StatusCancelled, StatusNoShow).
	Allow(StatusCancelled, StatusBooked).
	Allow(StatusNoShow, StatusBooked)

func CanTransition(from, to Status) bool {
	return Lifecycle.Can(from, to)
}
