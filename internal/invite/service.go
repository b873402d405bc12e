// AngelaMos | 2026
// service.go

package invite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/mailer"
)

type ServiceConfig struct {
	TTL        time.Duration
	PublicURL  string
	AcceptPath string
}

type Service struct {
	repo      Repository
	evaluator *access.Evaluator
	mailer    mailer.Mailer
	cfg       ServiceConfig
	now       func() time.Time
}

func NewService(
	repo Repository,
	evaluator *access.Evaluator,
	m mailer.Mailer,
	cfg ServiceConfig,
) *Service {
	return &Service{
		repo:      repo,
		evaluator: evaluator,
		mailer:    m,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Created bundles a stored invite with the one-time token and the link
// carrying it.
type Created struct {
	Invite    *Invite
	Token     string
	AcceptURL string
}

func (s *Service) Create(
	ctx context.Context,
	caller access.Caller,
	req CreateInviteRequest,
) (*Created, error) {
	callerRole, err := s.evaluator.Authorize(ctx, caller, access.ActionInviteCreate)
	if err != nil {
		return nil, err
	}

	role, err := access.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if !Invitable(role) {
		return nil, fmt.Errorf("role %s cannot be granted by invite: %w", role, core.ErrInvalidInput)
	}
	if !callerRole.AtLeast(role) {
		return nil, core.ForbiddenError("")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", core.ErrInvalidInput)
	}

	token, err := core.GenerateOneTimeToken()
	if err != nil {
		return nil, fmt.Errorf("generate invite token: %w", err)
	}

	link, err := mailer.Link(s.cfg.PublicURL, s.cfg.AcceptPath, token)
	if err != nil {
		return nil, err
	}

	inv := &Invite{
		ID:        uuid.New().String(),
		TenantID:  caller.TenantID,
		Email:     email,
		Role:      role,
		TokenHash: core.HashToken(token),
		CreatedBy: caller.UserID,
		ExpiresAt: s.now().Add(s.cfg.TTL),
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.mailer.Send(ctx, mailer.Message{
		To:      email,
		Subject: "You have been invited to join a gym",
		Body:    fmt.Sprintf("You were invited as %s. The link expires at %s.", role, inv.ExpiresAt.Format(time.RFC1123)),
		Link:    link,
	}); err != nil {
		slog.WarnContext(ctx, "invite mail not delivered",
			"invite_id", inv.ID,
			"error", err,
		)
	}

	slog.InfoContext(ctx, "invite created",
		"invite_id", inv.ID,
		"tenant_id", inv.TenantID,
		"role", string(role),
		"created_by", caller.UserID,
	)

	return &Created{Invite: inv, Token: token, AcceptURL: link}, nil
}

// Accept consumes token on behalf of userID.
func (s *Service) Accept(ctx context.Context, userID, token string) (*Acceptance, error) {
	if userID == "" {
		return nil, fmt.Errorf("accept invite: %w", core.ErrUnauthorized)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("token is required: %w", core.ErrInvalidInput)
	}

	acc, err := s.repo.Accept(ctx, core.HashToken(token), userID, s.now())
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "invite accepted",
		"tenant_id", acc.TenantID,
		"user_id", userID,
		"role", string(acc.Role),
	)

	return acc, nil
}

func (s *Service) ListPending(ctx context.Context, caller access.Caller) ([]Invite, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionInviteCreate); err != nil {
		return nil, err
	}
	return s.repo.ListPending(ctx, caller.TenantID, s.now())
}

func (s *Service) Revoke(ctx context.Context, caller access.Caller, inviteID string) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionInviteCreate); err != nil {
		return err
	}
	return s.repo.Delete(ctx, caller.TenantID, inviteID)
}

// PurgeExpired drops unaccepted invites that expired more than grace ago.
func (s *Service) PurgeExpired(ctx context.Context, grace time.Duration) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().Add(-grace))
}
