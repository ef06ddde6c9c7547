package ports

import (
	"context"

	"buffet/internal/core/domain/model/kernel"
)

// IdentityDirectory answers whether an email address belongs to a registered
// account. Accounts are owned by the authentication service; the order core
// only reads them.
type IdentityDirectory interface {
	// IsRegistered reports whether a user or buffet account uses email.
	// The comparison is case-insensitive.
	IsRegistered(ctx context.Context, email kernel.Email) (bool, error)
}
