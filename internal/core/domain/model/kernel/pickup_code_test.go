package kernel_test

import (
	"bytes"
	"regexp"
	"testing"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPickupCode(t *testing.T) {
	t.Run("upper-cases input", func(t *testing.T) {
		code, err := kernel.NewPickupCode(" ab3 ")

		require.NoError(t, err)
		assert.Equal(t, "AB3", code.String())
	})

	t.Run("accepts short and punctuated codes", func(t *testing.T) {
		for _, raw := range []string{"A", "7", "AB-3", "ÁB3", "ABCDEFGHIJKL"} {
			code, err := kernel.NewPickupCode(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, raw, code.String())
		}
	})

	testCases := []struct {
		name     string
		raw      string
		sentinel error
	}{
		{"empty", "", errs.ErrValueIsRequired},
		{"blank", "   ", errs.ErrValueIsRequired},
		{"too long", "ABCDEFGHIJKLM", errs.ErrValueIsInvalid},
		{"inner space", "AB 3", errs.ErrValueIsInvalid},
		{"control character", "AB\t3", errs.ErrValueIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewPickupCode(tc.raw)
			require.ErrorIs(t, err, tc.sentinel)
		})
	}
}

func TestNewRandomPickupCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{2}[0-9]$`)

	for range 100 {
		code, err := kernel.NewRandomPickupCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code.String())

		reparsed, err := kernel.NewPickupCode(code.String())
		require.NoError(t, err)
		assert.Equal(t, code, reparsed)
	}
}

func TestNewRandomPickupCodeFrom_ExhaustedReader(t *testing.T) {
	_, err := kernel.NewRandomPickupCodeFrom(bytes.NewReader(nil))

	require.Error(t, err)
}

func TestPickupCode_ZeroValue(t *testing.T) {
	var code kernel.PickupCode

	assert.True(t, code.IsZero())
	require.ErrorIs(t, code.Validate(), errs.ErrValueIsRequired)
}
