// Package identity describes the already-authenticated caller of an
// operation. Accounts themselves live in the external auth service; the
// order core only reads the claims it was handed.
package identity

import (
	"strings"

	"buffet/internal/core/domain/model/kernel"
)

// Role is the account kind carried in the session token.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBuffet Role = "buffet"
	RoleUser   Role = "user"
)

// ParseRole maps a claim value to a Role. Unknown values fall back to RoleUser,
// the least privileged role.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleBuffet:
		return RoleBuffet
	default:
		return RoleUser
	}
}

func (r Role) String() string {
	return string(r)
}

// Principal is an authenticated requester. A nil *Principal means anonymous.
type Principal struct {
	ID    string
	Email string
	Role  Role
}

// IsBuffet reports whether the principal acts for a buffet.
func (p *Principal) IsBuffet() bool {
	return p != nil && p.Role == RoleBuffet
}

// HasEmail reports whether the token carried an email claim.
func (p *Principal) HasEmail() bool {
	return p != nil && strings.TrimSpace(p.Email) != ""
}

// NormalizedEmail returns the lower-cased email claim.
func (p *Principal) NormalizedEmail() string {
	if p == nil {
		return ""
	}
	return kernel.NormalizeEmail(p.Email)
}
