// AngelaMos | 2026
// slug_test.go

package tenant_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/tenant"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Iron Temple", "iron-temple"},
		{"Güçlü Şehir Spor", "guclu-sehir-spor"},
		{"İSTANBUL Fıtness", "istanbul-fitness"},
		{"  --Hello!!  World--  ", "hello-world"},
		{"24/7 Gym", "24-7-gym"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tenant.Slugify(tt.in))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := tenant.Slugify(strings.Repeat("ab ", 30))
	assert.LessOrEqual(t, len(got), tenant.MaxSlugLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	require.NoError(t, tenant.ValidateSlug(got))
}

func TestValidateSlug(t *testing.T) {
	require.NoError(t, tenant.ValidateSlug("gym-42"))

	for _, bad := range []string{"", "Gym", "a--b", "-a", "a-", "a_b", strings.Repeat("a", 41)} {
		assert.ErrorIs(t, tenant.ValidateSlug(bad), core.ErrInvalidInput, bad)
	}
}

func TestValidateName(t *testing.T) {
	name, err := tenant.ValidateName("  Spor Salonu ")
	require.NoError(t, err)
	assert.Equal(t, "Spor Salonu", name)

	_, err = tenant.ValidateName(strings.Repeat("ş", tenant.MaxNameLength+1))
	require.ErrorIs(t, err, core.ErrInvalidInput)
}
