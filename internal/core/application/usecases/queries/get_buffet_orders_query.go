package queries

import (
	"errors"
	"strings"

	"buffet/internal/pkg/errs"
	"buffet/internal/pkg/guard"
)

var (
	ErrGetBuffetOrdersQueryIsNotConstructed = errors.New(
		"GetBuffetOrdersQuery must be created via NewGetBuffetOrdersQuery constructor",
	)
)

// GetBuffetOrdersQuery lists the orders of one buffet for its staff.
type GetBuffetOrdersQuery struct {
	buffetID string

	guard guard.ConstructorGuard
}

func NewGetBuffetOrdersQuery(buffetID string) (GetBuffetOrdersQuery, error) {
	buffetID = strings.TrimSpace(buffetID)
	if buffetID == "" {
		return GetBuffetOrdersQuery{}, errs.NewValueIsRequiredError("buffetId")
	}

	return GetBuffetOrdersQuery{
		buffetID: buffetID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetBuffetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBuffetOrdersQueryIsNotConstructed)
}

func (q GetBuffetOrdersQuery) BuffetID() string {
	return q.buffetID
}
