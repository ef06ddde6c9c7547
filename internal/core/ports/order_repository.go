// Package ports defines the contracts between the buffet order core and its
// infrastructure: persistence, identity lookup, the email cipher, mail
// transport and notification bookkeeping.
package ports

import (
	"context"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
)

// OrderRepository defines the write-side persistence contract for order
// aggregates. Implementations bound to a UnitOfWork run inside its transaction.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// Returns a ConflictError for "pickupCode" when the code is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change with a compare-and-swap on the version
	// the aggregate was loaded with.
	//
	// Returns:
	//   - ObjectNotFoundError if the order does not exist
	//   - ConcurrencyError if another writer changed the order in between
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// OrderReader defines the read-side queries over stored orders. Listings are
// ordered newest first (by creation time).
type OrderReader interface {
	// GetByPickupCode finds the order carrying code.
	// Returns ObjectNotFoundError when no order matches.
	GetByPickupCode(ctx context.Context, code kernel.PickupCode) (*order.Order, error)

	// ListAll returns every order.
	ListAll(ctx context.Context) ([]*order.Order, error)

	// ListByBuffet returns the orders owned by buffetID.
	ListByBuffet(ctx context.Context, buffetID string) ([]*order.Order, error)

	// ListWithContactEmail returns the orders that carry an encrypted envelope.
	ListWithContactEmail(ctx context.Context) ([]*order.Order, error)

	// CountByStatus returns the number of orders per status. Statuses without
	// orders may be missing from the map.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
