package kernel

import (
	"net/mail"
	"strings"

	"buffet/internal/pkg/errs"
)

const maxEmailLength = 254

// Email is a syntactically valid contact address. Its string form keeps the
// caller's casing; Normalized is used for identity comparisons.
type Email struct {
	address string
}

// NewEmail trims and validates an address. Display names ("Bob <b@x.hu>")
// are rejected so the stored value is always a bare address.
func NewEmail(raw string) (Email, error) {
	address := strings.TrimSpace(raw)
	if address == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if len(address) > maxEmailLength {
		return Email{}, errs.NewValueIsInvalidError("email")
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if parsed.Address != address {
		return Email{}, errs.NewValueIsInvalidError("email")
	}

	return Email{address: address}, nil
}

func (e Email) String() string {
	return e.address
}

// Normalized returns the lower-cased address.
func (e Email) Normalized() string {
	return NormalizeEmail(e.address)
}

func (e Email) IsZero() bool {
	return e.address == ""
}

// Matches compares against another address case-insensitively.
func (e Email) Matches(other string) bool {
	return e.address != "" && strings.EqualFold(e.address, strings.TrimSpace(other))
}

// NormalizeEmail trims and lower-cases an address for identity lookups.
func NormalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
