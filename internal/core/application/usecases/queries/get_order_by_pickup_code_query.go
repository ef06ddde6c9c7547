package queries

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/guard"
)

var (
	ErrGetOrderByPickupCodeQueryIsNotConstructed = errors.New(
		"GetOrderByPickupCodeQuery must be created via NewGetOrderByPickupCodeQuery constructor",
	)
)

// GetOrderByPickupCodeQuery is the anonymous tracking lookup: the pickup code
// is the only credential.
type GetOrderByPickupCodeQuery struct {
	pickupCode kernel.PickupCode

	guard guard.ConstructorGuard
}

// NewGetOrderByPickupCodeQuery validates the code. An empty code is a
// ValueIsRequiredError. Lookup is case-insensitive since codes are stored
// upper-cased.
func NewGetOrderByPickupCodeQuery(pickupCode string) (GetOrderByPickupCodeQuery, error) {
	code, err := kernel.NewPickupCode(pickupCode)
	if err != nil {
		return GetOrderByPickupCodeQuery{}, err
	}

	return GetOrderByPickupCodeQuery{
		pickupCode: code,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderByPickupCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByPickupCodeQueryIsNotConstructed)
}

func (q GetOrderByPickupCodeQuery) PickupCode() kernel.PickupCode {
	return q.pickupCode
}
