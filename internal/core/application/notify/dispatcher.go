// Package notify sends the customer facing emails of the order lifecycle.
//
// Delivery is best effort: the dispatcher runs every send in a tracked
// goroutine detached from the request, bounds it with a timeout, and reports
// failures only through logs and metrics. Order state never depends on the
// outcome of a send.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/services"
	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
	"buffet/internal/pkg/telemetry"
)

// Notification kinds used in logs, metrics and errors.
const (
	KindConfirmed = "confirmed"
	KindReady     = "ready"
)

const (
	// DefaultTimeout bounds one asynchronous send.
	DefaultTimeout = 10 * time.Second

	// ReadyGuardTTL is how long a sent ready email blocks another one.
	ReadyGuardTTL = 7 * 24 * time.Hour
)

// Recorder counts notification outcomes.
type Recorder interface {
	NotificationSent(kind, result string)
}

// Dispatcher implements ports.OrderNotifier on top of a Mailer.
//
// Example:
//
//	d := notify.NewDispatcher(composer, mailer, guard, metrics, logger, 10*time.Second)
//	d.OrderReady(ctx, o, "x@y.com") // returns immediately
//	...
//	d.Wait() // on shutdown
type Dispatcher struct {
	composer *services.ReceiptComposer
	mailer   ports.Mailer
	guard    ports.NotificationGuard
	recorder Recorder
	logger   *slog.Logger
	timeout  time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher. A non-positive timeout means DefaultTimeout.
func NewDispatcher(
	composer *services.ReceiptComposer,
	mailer ports.Mailer,
	guard ports.NotificationGuard,
	recorder Recorder,
	logger *slog.Logger,
	timeout time.Duration,
) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Dispatcher{
		composer: composer,
		mailer:   mailer,
		guard:    guard,
		recorder: recorder,
		logger:   logger.With("component", "NotificationDispatcher"),
		timeout:  timeout,
	}
}

// OrderConfirmed sends the checkout confirmation in the background.
func (d *Dispatcher) OrderConfirmed(ctx context.Context, o *order.Order, email string) {
	d.async(ctx, KindConfirmed, o, func(ctx context.Context) error {
		return d.SendConfirmed(ctx, o, email)
	})
}

// OrderReady sends the ready email in the background.
func (d *Dispatcher) OrderReady(ctx context.Context, o *order.Order, email string) {
	d.async(ctx, KindReady, o, func(ctx context.Context) error {
		return d.SendReady(ctx, o, email)
	})
}

// Wait blocks until every background send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// SendConfirmed composes and sends the confirmation synchronously.
// Failures are NotificationError.
func (d *Dispatcher) SendConfirmed(ctx context.Context, o *order.Order, email string) error {
	receipt, err := d.composer.Confirmed(o)
	if err != nil {
		return d.fail(KindConfirmed, err)
	}
	return d.send(ctx, KindConfirmed, email, receipt)
}

// SendReady composes and sends the ready email synchronously. A second call
// for the same order is skipped while the guard holds its key. When the
// guard itself fails the email is sent anyway. A failed send releases the
// key so a later ready write can retry instead of waiting out ReadyGuardTTL.
func (d *Dispatcher) SendReady(ctx context.Context, o *order.Order, email string) error {
	if err := o.Validate(); err != nil {
		return d.fail(KindReady, err)
	}

	key := ReadyGuardKey(o)
	acquired, err := d.guard.Acquire(ctx, key, ReadyGuardTTL)
	if err != nil {
		d.logger.WarnContext(ctx, "notification guard unavailable, sending anyway",
			"order_id", o.ID().String(),
			"error", err,
		)
		acquired = true
	}
	if !acquired {
		d.recorder.NotificationSent(KindReady, telemetry.ResultSkipped)
		d.logger.InfoContext(ctx, "ready email already sent", "order_id", o.ID().String())
		return nil
	}

	receipt, err := d.composer.Ready(o)
	if err == nil {
		err = d.send(ctx, KindReady, email, receipt)
	} else {
		err = d.fail(KindReady, err)
	}
	if err != nil {
		d.release(ctx, key)
	}
	return err
}

// release runs detached from ctx, which is often the expired deadline that
// made the send fail.
func (d *Dispatcher) release(ctx context.Context, key string) {
	if err := d.guard.Release(context.WithoutCancel(ctx), key); err != nil {
		d.logger.WarnContext(ctx, "failed to release notification guard",
			"key", key,
			"error", err,
		)
	}
}

// ReadyGuardKey is the guard key of the ready email of o.
func ReadyGuardKey(o *order.Order) string {
	return "notified:ready:" + o.ID().String()
}

func (d *Dispatcher) send(ctx context.Context, kind, email string, receipt services.Receipt) error {
	err := d.mailer.Send(ctx, ports.Mail{
		To:      email,
		Subject: receipt.Subject,
		Body:    receipt.Body,
	})
	if err != nil {
		return d.fail(kind, err)
	}

	d.recorder.NotificationSent(kind, telemetry.ResultSent)
	return nil
}

func (d *Dispatcher) fail(kind string, cause error) error {
	d.recorder.NotificationSent(kind, telemetry.ResultFailed)
	return errs.NewNotificationError(kind, cause)
}

func (d *Dispatcher) async(ctx context.Context, kind string, o *order.Order, fn func(context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			d.logger.ErrorContext(ctx, "failed to send notification",
				"kind", kind,
				"order_id", o.ID().String(),
				"error", err,
			)
		}
	}()
}

// NopGuard acquires every key. It is used when no Redis is configured.
type NopGuard struct{}

func (NopGuard) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

func (NopGuard) Release(context.Context, string) error {
	return nil
}
