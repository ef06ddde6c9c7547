package kernel_test

import (
	"strings"
	"testing"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("trims and keeps casing", func(t *testing.T) {
		email, err := kernel.NewEmail("  Alice@Example.com ")

		require.NoError(t, err)
		assert.Equal(t, "Alice@Example.com", email.String())
		assert.Equal(t, "alice@example.com", email.Normalized())
	})

	invalid := []struct {
		name     string
		raw      string
		sentinel error
	}{
		{"empty", "   ", errs.ErrValueIsRequired},
		{"no at sign", "alice.example.com", errs.ErrValueIsInvalid},
		{"display name", "Alice <alice@example.com>", errs.ErrValueIsInvalid},
		{"too long", strings.Repeat("a", 250) + "@x.hu", errs.ErrValueIsInvalid},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewEmail(tc.raw)
			require.ErrorIs(t, err, tc.sentinel)
		})
	}
}

func TestEmail_Matches(t *testing.T) {
	email, err := kernel.NewEmail("alice@example.com")
	require.NoError(t, err)

	assert.True(t, email.Matches("ALICE@example.com"))
	assert.True(t, email.Matches(" alice@example.com "))
	assert.False(t, email.Matches("bob@example.com"))

	var zero kernel.Email
	assert.True(t, zero.IsZero())
	assert.False(t, zero.Matches(""))
}
