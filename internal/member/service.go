// AngelaMos | 2026
// service.go

package member

import (
	"context"
	"fmt"
	"strings"
	"time"

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

func (s *Service) Create(ctx context.Context, caller access.Caller, in Input) (*Member, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionMemberWrite); err != nil {
		return nil, err
	}

	m, err := NewMember(caller.TenantID, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id string) (*Member, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, caller.TenantID, id)
}

func (s *Service) List(
	ctx context.Context,
	caller access.Caller,
	params ListParams,
) ([]Member, int, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, 0, err
	}

	params.Search = strings.TrimSpace(params.Search)
	params.Normalize()

	return s.repo.List(ctx, caller.TenantID, params)
}

func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	in Input,
) (*Member, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionMemberWrite); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := m.apply(in); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id string) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionMemberWrite); err != nil {
		return err
	}
	return s.repo.Delete(ctx, caller.TenantID, id)
}

func (s *Service) AddMeasurement(
	ctx context.Context,
	caller access.Caller,
	memberID string,
	req MeasurementRequest,
) (*Measurement, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionMemberWrite); err != nil {
		return nil, err
	}

	takenOn := time.Now().UTC().Truncate(24 * time.Hour)
	if req.TakenOn != "" {
		d, err := time.Parse(dateLayout, req.TakenOn)
		if err != nil {
			return nil, fmt.Errorf("taken_on must be a YYYY-MM-DD date: %w", core.ErrInvalidInput)
		}
		takenOn = d
	}

	m := &Measurement{
		ID:       uuid.New().String(),
		TenantID: caller.TenantID,
		MemberID: memberID,
		TakenOn:  takenOn,
		Weight:   req.Weight,
		BodyFat:  req.BodyFat,
		Height:   req.Height,
		Chest:    req.Chest,
		Waist:    req.Waist,
		Hip:      req.Hip,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		m.Notes = &notes
	}

	if err := s.repo.AddMeasurement(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) ListMeasurements(
	ctx context.Context,
	caller access.Caller,
	memberID string,
) ([]Measurement, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, caller.TenantID, memberID); err != nil {
		return nil, err
	}

	return s.repo.ListMeasurements(ctx, caller.TenantID, memberID)
}

func (s *Service) DeleteMeasurement(
	ctx context.Context,
	caller access.Caller,
	memberID, measurementID string,
) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionMemberWrite); err != nil {
		return err
	}
	return s.repo.DeleteMeasurement(ctx, caller.TenantID, memberID, measurementID)
}
