// AngelaMos | 2026
// evaluator.go

package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fitsyy/gym-backend/internal/core"
)

// Caller identifies who is acting and in which tenant. Every tenant-scoped
// service operation receives one explicitly.
type Caller struct {
	UserID   string
	TenantID string
}

func (c Caller) Valid() bool {
	return c.UserID != "" && c.TenantID != ""
}

var ErrLookupFailed = errors.New("role lookup failed")

type Evaluator struct {
	memberships MembershipReader
	policy      Policy
}

func NewEvaluator(memberships MembershipReader, policy Policy) *Evaluator {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Evaluator{memberships: memberships, policy: policy}
}

func (e *Evaluator) Policy() Policy {
	return e.policy
}

// ResolveRole returns RoleNone, nil when the user is not a member. A failure
// to reach the store is returned as ErrLookupFailed wrapping
// core.ErrStoreUnavailable, never as RoleNone.
func (e *Evaluator) ResolveRole(
	ctx context.Context,
	tenantID, userID string,
) (Role, error) {
	if tenantID == "" || userID == "" {
		return RoleNone, nil
	}

	role, err := e.memberships.GetRole(ctx, tenantID, userID)
	if err != nil {
		if !errors.Is(err, core.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
		}
		return RoleNone, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	if role != RoleNone && !role.Valid() {
		slog.Warn("membership holds unknown role",
			"tenant_id", tenantID,
			"user_id", userID,
			"role", string(role),
		)
		return RoleNone, nil
	}

	return role, nil
}

// Require resolves the caller's role and fails with core.ErrForbidden unless
// it ranks at least minimum. The denial carries no detail about the action.
func (e *Evaluator) Require(
	ctx context.Context,
	caller Caller,
	minimum Role,
) (Role, error) {
	role, err := e.ResolveRole(ctx, caller.TenantID, caller.UserID)
	if err != nil {
		return RoleNone, err
	}

	if !IsAuthorized(role, minimum) {
		return role, core.ForbiddenError("")
	}

	return role, nil
}

// Authorize gates action by its policy minimum.
func (e *Evaluator) Authorize(
	ctx context.Context,
	caller Caller,
	action Action,
) (Role, error) {
	role, err := e.Require(ctx, caller, e.policy.Minimum(action))
	if err != nil && errors.Is(err, core.ErrForbidden) {
		slog.Debug("action denied",
			"action", string(action),
			"tenant_id", caller.TenantID,
			"user_id", caller.UserID,
			"role", role.String(),
		)
	}
	return role, err
}

// Can is Authorize without the error detail, for read-only capability
// reporting such as the tenant overview.
func (e *Evaluator) Can(role Role, action Action) bool {
	return IsAuthorized(role, e.policy.Minimum(action))
}
