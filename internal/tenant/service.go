// AngelaMos | 2026
// service.go

package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// Create registers a tenant with userID as its OWNER.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateTenantRequest,
) (*Tenant, error) {
	if userID == "" {
		return nil, fmt.Errorf("create tenant: %w", core.ErrUnauthorized)
	}

	name, err := ValidateName(req.Name)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	t := &Tenant{
		ID:   uuid.New().String(),
		Name: name,
		Slug: slug,
	}

	if err := s.repo.CreateWithOwner(ctx, t, userID); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, slugTaken(slug)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "tenant created",
		"tenant_id", t.ID,
		"slug", t.Slug,
		"owner_id", userID,
	)

	return t, nil
}

// CheckSlug reports whether slug is well formed and unclaimed.
func (s *Service) CheckSlug(ctx context.Context, slug string) (*SlugCheckResponse, error) {
	resp := &SlugCheckResponse{Slug: slug}

	if err := ValidateSlug(slug); err != nil {
		resp.Reason = "invalid"
		return resp, nil
	}

	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		resp.Reason = "taken"
		return resp, nil
	}

	resp.Available = true
	return resp, nil
}

func (s *Service) SlugAvailable(ctx context.Context, slug string) (bool, error) {
	resp, err := s.CheckSlug(ctx, slug)
	if err != nil {
		return false, err
	}
	return resp.Available, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// ResolveSlug maps a slug to its tenant id for request scoping.
func (s *Service) ResolveSlug(ctx context.Context, slug string) (string, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Membership, error) {
	if userID == "" {
		return nil, fmt.Errorf("list tenants: %w", core.ErrUnauthorized)
	}
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) Overview(ctx context.Context, caller access.Caller) (*OverviewResponse, error) {
	role, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, caller.TenantID)
	if err != nil {
		return nil, err
	}

	perms := make(map[access.Action]bool)
	for action := range s.evaluator.Policy() {
		perms[action] = s.evaluator.Can(role, action)
	}

	return &OverviewResponse{
		Tenant:      ToTenantResponse(t),
		Role:        role,
		Permissions: perms,
	}, nil
}

func (s *Service) ListTeam(ctx context.Context, caller access.Caller) ([]TeamMember, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}
	return s.repo.ListTeam(ctx, caller.TenantID)
}

func (s *Service) Rename(
	ctx context.Context,
	caller access.Caller,
	name string,
) (*Tenant, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRename); err != nil {
		return nil, err
	}

	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateName(ctx, caller.TenantID, name)
}

func (s *Service) ChangeSlug(
	ctx context.Context,
	caller access.Caller,
	slug string,
) (*Tenant, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantSlug); err != nil {
		return nil, err
	}

	slug = strings.TrimSpace(slug)
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	t, err := s.repo.UpdateSlug(ctx, caller.TenantID, slug)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, slugTaken(slug)
		}
		return nil, err
	}

	return t, nil
}

// TransferOwnership hands the tenant to the user registered under email.
// The previous owner stays on as MANAGER.
func (s *Service) TransferOwnership(
	ctx context.Context,
	caller access.Caller,
	email string,
) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantTransfer); err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required: %w", core.ErrInvalidInput)
	}

	newOwnerID, err := s.repo.TransferOwnership(ctx, caller.TenantID, caller.UserID, email)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "tenant ownership transferred",
		"tenant_id", caller.TenantID,
		"from_user_id", caller.UserID,
		"to_user_id", newOwnerID,
	)

	return nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, caller.TenantID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "tenant deleted",
		"tenant_id", caller.TenantID,
		"user_id", caller.UserID,
	)

	return nil
}

// Leave removes the caller's own membership. The owner must transfer or
// delete the tenant instead.
func (s *Service) Leave(ctx context.Context, caller access.Caller) error {
	role, err := s.evaluator.ResolveRole(ctx, caller.TenantID, caller.UserID)
	if err != nil {
		return err
	}

	switch role {
	case access.RoleNone:
		return fmt.Errorf("leave tenant: %w", core.ErrNotFound)
	case access.RoleOwner:
		return fmt.Errorf(
			"the owner cannot leave, transfer ownership or delete the tenant: %w",
			core.ErrInvalidInput,
		)
	}

	return s.repo.RemoveMembership(ctx, caller.TenantID, caller.UserID)
}

func slugTaken(slug string) error {
	return fmt.Errorf("slug %q is already taken: %w", slug, core.ErrInvalidInput)
}
