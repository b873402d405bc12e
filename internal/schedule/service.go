// AngelaMos | 2026
// service.go

package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
)

// MaxWindow bounds a single slot listing.
const MaxWindow = 93 * 24 * time.Hour

type Service struct {
	repo      Repository
	evaluator *access.Evaluator
}

func NewService(repo Repository, evaluator *access.Evaluator) *Service {
	return &Service{repo: repo, evaluator: evaluator}
}

func (s *Service) Create(ctx context.Context, caller access.Caller, in Input) (*Slot, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionSlotWrite); err != nil {
		return nil, err
	}

	slot := &Slot{
		ID:       uuid.New().String(),
		TenantID: caller.TenantID,
	}
	if err := slot.apply(in); err != nil {
		return nil, err
	}

	if err := s.checkTrainer(ctx, caller.TenantID, slot.TrainerID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "slot created",
		"tenant_id", slot.TenantID,
		"slot_id", slot.ID,
		"start_at", slot.StartAt,
		"capacity", slot.Capacity,
	)

	return slot, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id string) (*Slot, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, caller.TenantID, id)
}

func (s *Service) List(ctx context.Context, caller access.Caller, w Window) ([]Slot, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}

	if !w.To.After(w.From) {
		return nil, fmt.Errorf("to must be after from: %w", core.ErrInvalidInput)
	}
	if w.To.Sub(w.From) > MaxWindow {
		return nil, fmt.Errorf("window may span at most %d days: %w", int(MaxWindow.Hours()/24), core.ErrInvalidInput)
	}

	return s.repo.List(ctx, caller.TenantID, w)
}

func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	in Input,
) (*Slot, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionSlotWrite); err != nil {
		return nil, err
	}

	slot, err := s.repo.GetByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := slot.apply(in); err != nil {
		return nil, err
	}

	if err := s.checkTrainer(ctx, caller.TenantID, slot.TrainerID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, caller.TenantID, id)
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id string) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionSlotWrite); err != nil {
		return err
	}
	return s.repo.Delete(ctx, caller.TenantID, id)
}

// AssignTrainer sets or clears (trainerID nil) the slot's trainer. It has no
// bearing on capacity.
func (s *Service) AssignTrainer(
	ctx context.Context,
	caller access.Caller,
	slotID string,
	trainerID *string,
) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionSlotAssign); err != nil {
		return err
	}

	if trainerID != nil && *trainerID == "" {
		trainerID = nil
	}

	if err := s.checkTrainer(ctx, caller.TenantID, trainerID); err != nil {
		return err
	}

	if err := s.repo.SetTrainer(ctx, caller.TenantID, slotID, trainerID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "slot trainer assigned",
		"tenant_id", caller.TenantID,
		"slot_id", slotID,
		"trainer_id", trainerID,
	)

	return nil
}

func (s *Service) checkTrainer(ctx context.Context, tenantID string, trainerID *string) error {
	if trainerID == nil {
		return nil
	}

	ok, err := s.repo.TrainerExists(ctx, tenantID, *trainerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("trainer: %w", core.ErrNotFound)
	}

	return nil
}
