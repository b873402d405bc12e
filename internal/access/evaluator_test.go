// AngelaMos | 2026
// evaluator_test.go

package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/access/accesstest"
	"github.com/fitsyy/gym-backend/internal/config"
	"github.com/fitsyy/gym-backend/internal/core"
)

func TestEvaluatorResolveRole(t *testing.T) {
	ctx := context.Background()
	m := accesstest.NewMemberships()
	m.Set("t1", "u1", access.RoleTrainer)
	ev := m.Evaluator()

	role, err := ev.ResolveRole(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleTrainer, role)

	role, err = ev.ResolveRole(ctx, "t2", "u1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleNone, role)

	role, err = ev.ResolveRole(ctx, "", "u1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleNone, role)
}

func TestEvaluatorLookupFailureIsNotNone(t *testing.T) {
	m := accesstest.NewMemberships()
	m.Set("t1", "u1", access.RoleOwner)
	m.Err = errors.New("connection refused")

	_, err := m.Evaluator().ResolveRole(context.Background(), "t1", "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, access.ErrLookupFailed)
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, core.ErrForbidden)
}

func TestEvaluatorUnknownStoredRole(t *testing.T) {
	m := accesstest.NewMemberships()
	m.Set("t1", "u1", access.Role("ADMIN"))

	role, err := m.Evaluator().ResolveRole(context.Background(), "t1", "u1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleNone, role)
}

func TestEvaluatorAuthorize(t *testing.T) {
	ctx := context.Background()
	m := accesstest.NewMemberships()
	m.Set("t1", "staff", access.RoleStaff)
	m.Set("t1", "manager", access.RoleManager)
	ev := m.Evaluator()

	_, err := ev.Authorize(ctx, access.Caller{UserID: "staff", TenantID: "t1"}, access.ActionSlotAssign)
	require.ErrorIs(t, err, core.ErrForbidden)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "insufficient permissions", appErr.Message)

	role, err := ev.Authorize(ctx, access.Caller{UserID: "manager", TenantID: "t1"}, access.ActionSlotAssign)
	require.NoError(t, err)
	assert.Equal(t, access.RoleManager, role)

	_, err = ev.Authorize(ctx, access.Caller{UserID: "stranger", TenantID: "t1"}, access.ActionTenantRead)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestEvaluatorCan(t *testing.T) {
	ev := accesstest.NewMemberships().Evaluator()

	assert.True(t, ev.Can(access.RoleOwner, access.ActionTenantDelete))
	assert.False(t, ev.Can(access.RoleManager, access.ActionTenantDelete))
	assert.True(t, ev.Can(access.RoleMember, access.ActionBookingWrite))
	assert.False(t, ev.Can(access.RoleNone, access.ActionTenantRead))
	assert.False(t, ev.Can(access.RoleManager, access.Action("unknown.action")))
}

func TestNewPolicyOverrides(t *testing.T) {
	p, err := access.NewPolicy(config.AccessConfig{
		MemberWriteMinRole:  "staff",
		BookingWriteMinRole: "TRAINER",
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleStaff, p.Minimum(access.ActionMemberWrite))
	assert.Equal(t, access.RoleTrainer, p.Minimum(access.ActionBookingWrite))
	assert.Equal(t, access.RoleOwner, p.Minimum(access.ActionTenantDelete))

	_, err = access.NewPolicy(config.AccessConfig{
		MemberWriteMinRole:  "root",
		BookingWriteMinRole: "MEMBER",
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}
