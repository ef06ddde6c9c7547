package envelope_test

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"buffet/internal/pkg/envelope"
	"buffet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, envelope.KeySize)
}

func newCodec(t *testing.T, b byte) *envelope.Codec {
	t.Helper()
	c, err := envelope.NewCodec(testKey(b))
	require.NoError(t, err)
	return c
}

func TestNewCodec_KeyLength(t *testing.T) {
	for _, size := range []int{0, 16, 24, 31, 33} {
		_, err := envelope.NewCodec(make([]byte, size))
		require.ErrorIs(t, err, errs.ErrEncryption, "size %d", size)
	}

	_, err := envelope.NewCodec(testKey(1))
	require.NoError(t, err)
}

func TestParseKey(t *testing.T) {
	t.Run("valid hex key", func(t *testing.T) {
		key, err := envelope.ParseKey(strings.Repeat("ab", envelope.KeySize))
		require.NoError(t, err)
		assert.Len(t, key, envelope.KeySize)
	})

	t.Run("not hex", func(t *testing.T) {
		_, err := envelope.ParseKey("fallback-secret-key")
		require.ErrorIs(t, err, errs.ErrEncryption)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := envelope.ParseKey("abcd")
		require.ErrorIs(t, err, errs.ErrEncryption)
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newCodec(t, 7)

	inputs := []string{
		"x@y.com",
		"Alice@Example.com",
		"a:b:c",
		":leading",
		"trailing:",
		"árvíztűrő tükörfúrógép",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			sealed, err := c.Encrypt(in)
			require.NoError(t, err)

			opened, err := c.Decrypt(sealed)
			require.NoError(t, err)
			assert.Equal(t, in, opened)
		})
	}
}

func TestCodec_EnvelopeFormat(t *testing.T) {
	c := newCodec(t, 7)

	sealed, err := c.Encrypt("x@y.com")
	require.NoError(t, err)

	ivHex, ctHex, ok := strings.Cut(sealed, ":")
	require.True(t, ok)

	iv, err := hex.DecodeString(ivHex)
	require.NoError(t, err)
	assert.Len(t, iv, envelope.IVSize)

	_, err = hex.DecodeString(ctHex)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "x@y.com")
}

func TestCodec_FreshIVPerCall(t *testing.T) {
	c := newCodec(t, 7)

	first, err := c.Encrypt("x@y.com")
	require.NoError(t, err)
	second, err := c.Encrypt("x@y.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodec_EncryptEmpty(t *testing.T) {
	_, err := newCodec(t, 7).Encrypt("")
	require.ErrorIs(t, err, errs.ErrEncryption)
}

func TestCodec_DecryptFailures(t *testing.T) {
	c := newCodec(t, 7)
	sealed, err := c.Encrypt("x@y.com")
	require.NoError(t, err)
	ivHex, ctHex, _ := strings.Cut(sealed, ":")

	testCases := []struct {
		name     string
		envelope string
	}{
		{"empty", ""},
		{"no separator", ivHex + ctHex},
		{"empty iv", ":" + ctHex},
		{"empty ciphertext", ivHex + ":"},
		{"iv not hex", "zz" + ivHex[2:] + ":" + ctHex},
		{"ciphertext not hex", ivHex + ":" + "zz" + ctHex[2:]},
		{"short iv", ivHex[:8] + ":" + ctHex},
		{"tampered ciphertext", ivHex + ":" + flipLastHex(ctHex)},
		{"legacy plaintext", "x@y.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Decrypt(tc.envelope)
			require.ErrorIs(t, err, errs.ErrDecryption)
		})
	}

	t.Run("wrong key", func(t *testing.T) {
		_, err := newCodec(t, 8).Decrypt(sealed)
		require.ErrorIs(t, err, errs.ErrDecryption)
	})
}

func TestCodec_NilReceiver(t *testing.T) {
	var c *envelope.Codec

	_, err := c.Encrypt("x@y.com")
	require.ErrorIs(t, err, errs.ErrEncryption)

	_, err = c.Decrypt("00:00")
	require.ErrorIs(t, err, errs.ErrDecryption)
}

func flipLastHex(s string) string {
	last := s[len(s)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return s[:len(s)-1] + string(replacement)
}
