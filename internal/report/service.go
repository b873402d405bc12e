// AngelaMos | 2026
// service.go

package report

import (
	"context"

	"github.com/fitsyy/gym-backend/internal/access"
)

type Service struct {
	repo      Repository
	evaluator *access.Evaluator
}

func NewService(repo Repository, evaluator *access.Evaluator) *Service {
	return &Service{repo: repo, evaluator: evaluator}
}

func (s *Service) Summary(ctx context.Context, caller access.Caller) (*Summary, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionReportRead); err != nil {
		return nil, err
	}

	counts, err := s.repo.Counts(ctx, caller.TenantID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(counts)
	return &summary, nil
}
