package ports

import (
	"context"
	"time"

	"buffet/internal/core/domain/model/order"
)

// Mail is a plain text email ready to send.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers composed mail.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// NotificationGuard records that a notification was sent so a retried
// request cannot send it twice.
type NotificationGuard interface {
	// Acquire marks key as taken for ttl. It returns false when key was
	// already taken.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives key up so a later Acquire can take it again.
	Release(ctx context.Context, key string) error
}

// OrderNotifier triggers the customer facing emails of an order. Calls return
// immediately; delivery failures are logged by the implementation and never
// reach the caller.
type OrderNotifier interface {
	// OrderConfirmed sends the checkout confirmation to email.
	OrderConfirmed(ctx context.Context, o *order.Order, email string)

	// OrderReady sends the "ready for pickup" email to email.
	OrderReady(ctx context.Context, o *order.Order, email string)
}
