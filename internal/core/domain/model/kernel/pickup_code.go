package kernel

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"buffet/internal/pkg/errs"
)

const (
	maxPickupCodeLength = 12

	pickupLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	pickupDigits  = "0123456789"
)

// PickupCode is the short code a customer reads out at the counter. It is
// the only credential needed for anonymous tracking, so it is never derived
// from other order fields.
type PickupCode struct {
	code string
}

// NewPickupCode upper-cases and validates a caller supplied code. Any
// printable code without whitespace up to twelve characters is accepted.
func NewPickupCode(raw string) (PickupCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return PickupCode{}, errs.NewValueIsRequiredError("pickupCode")
	}
	if utf8.RuneCountInString(code) > maxPickupCodeLength {
		return PickupCode{}, errs.NewValueIsInvalidErrorWithCause(
			"pickupCode",
			fmt.Errorf("length must be at most %d", maxPickupCodeLength),
		)
	}
	for _, r := range code {
		if !unicode.IsGraphic(r) || unicode.IsSpace(r) {
			return PickupCode{}, errs.NewValueIsInvalidErrorWithCause(
				"pickupCode",
				fmt.Errorf("%q is not a printable character", r),
			)
		}
	}
	return PickupCode{code: code}, nil
}

// NewRandomPickupCode draws two letters and a digit, e.g. "AB3".
func NewRandomPickupCode() (PickupCode, error) {
	return NewRandomPickupCodeFrom(rand.Reader)
}

// NewRandomPickupCodeFrom is NewRandomPickupCode with an explicit entropy source.
func NewRandomPickupCodeFrom(r io.Reader) (PickupCode, error) {
	var b strings.Builder
	for _, alphabet := range []string{pickupLetters, pickupLetters, pickupDigits} {
		n, err := rand.Int(r, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return PickupCode{}, fmt.Errorf("generate pickup code: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return PickupCode{code: b.String()}, nil
}

func (p PickupCode) String() string {
	return p.code
}

func (p PickupCode) IsZero() bool {
	return p.code == ""
}

func (p PickupCode) Validate() error {
	if p.code == "" {
		return errs.NewValueIsRequiredError("pickupCode")
	}
	return nil
}
