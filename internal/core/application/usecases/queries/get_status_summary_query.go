package queries

import (
	"errors"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/guard"
)

var (
	ErrGetStatusSummaryQueryIsNotConstructed = errors.New(
		"GetStatusSummaryQuery must be created via NewGetStatusSummaryQuery constructor",
	)
)

// GetStatusSummaryQuery counts the stored orders per status.
type GetStatusSummaryQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatusSummaryQuery() GetStatusSummaryQuery {
	return GetStatusSummaryQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatusSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusSummaryQueryIsNotConstructed)
}

// StatusSummary holds one count per status, zeros included.
type StatusSummary map[order.Status]int

// Backlog is the number of orders the kitchen has not handed over yet.
func (s StatusSummary) Backlog() int {
	return s[order.Pending] + s[order.Preparing] + s[order.Ready]
}
