// AngelaMos | 2026
// service.go

package trainer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
)

type Service struct {
	repo      Repository
	evaluator *access.Evaluator
}

func NewService(repo Repository, evaluator *access.Evaluator) *Service {
	return &Service{repo: repo, evaluator: evaluator}
}

func (s *Service) Create(
	ctx context.Context,
	caller access.Caller,
	req CreateTrainerRequest,
) (*Trainer, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTrainerWrite); err != nil {
		return nil, err
	}

	name, err := validateName(req.FullName)
	if err != nil {
		return nil, err
	}

	t := &Trainer{
		ID:       uuid.New().String(),
		TenantID: caller.TenantID,
		FullName: name,
		Active:   true,
	}
	if req.Active != nil {
		t.Active = *req.Active
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id string) (*Trainer, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, caller.TenantID, id)
}

func (s *Service) List(ctx context.Context, caller access.Caller, active *bool) ([]Trainer, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, caller.TenantID, active)
}

func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	req UpdateTrainerRequest,
) (*Trainer, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTrainerWrite); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name, err := validateName(*req.FullName)
		if err != nil {
			return nil, err
		}
		t.FullName = name
	}
	if req.Active != nil {
		t.Active = *req.Active
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id string) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTrainerWrite); err != nil {
		return err
	}
	return s.repo.Delete(ctx, caller.TenantID, id)
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("full name is required: %w", core.ErrInvalidInput)
	}
	return name, nil
}
