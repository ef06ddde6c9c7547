package queries

import (
	"errors"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/guard"
)

var (
	ErrGetMyOrdersQueryIsNotConstructed = errors.New(
		"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
	)
)

// GetMyOrdersQuery lists the orders whose contact address is the requester's.
type GetMyOrdersQuery struct {
	email kernel.Email

	guard guard.ConstructorGuard
}

// NewGetMyOrdersQuery takes the email claim of the authenticated requester.
func NewGetMyOrdersQuery(requesterEmail string) (GetMyOrdersQuery, error) {
	email, err := kernel.NewEmail(requesterEmail)
	if err != nil {
		return GetMyOrdersQuery{}, err
	}

	return GetMyOrdersQuery{
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

func (q GetMyOrdersQuery) Email() kernel.Email {
	return q.email
}
