// Package queries contains read-only operations over stored orders.
// Implements the Query side of the CQRS architecture: each query is a value
// built by a constructor and executed by a dedicated handler.
package queries

import (
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
)

// OrderView is the read model of an order.
//
// ContactEmail is the stored envelope. DecryptedEmail is only filled by the
// listings that are allowed to see the plaintext, and stays nil when the
// envelope cannot be opened.
type OrderView struct {
	ID             kernel.UUID
	Items          []string
	Total          int
	Status         order.Status
	ContactEmail   *string
	PickupCode     string
	PickupTime     time.Time
	CreatedAt      time.Time
	BuffetID       string
	DecryptedEmail *string
}

func newOrderView(o *order.Order, decrypted *string) OrderView {
	return OrderView{
		ID:             o.ID(),
		Items:          o.Items(),
		Total:          o.Total(),
		Status:         o.Status(),
		ContactEmail:   o.ContactEmail(),
		PickupCode:     o.PickupCode().String(),
		PickupTime:     o.PickupTime(),
		CreatedAt:      o.CreatedAt(),
		BuffetID:       o.BuffetID(),
		DecryptedEmail: decrypted,
	}
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o, nil))
	}
	return views
}
