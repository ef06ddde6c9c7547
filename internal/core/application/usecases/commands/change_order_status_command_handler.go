package commands

import (
	"context"
	"errors"
	"log/slog"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler drives the order state machine.
//
// Business rules:
//   - Only the current status or its immediate successor is accepted
//   - A changed order is written with a compare-and-swap on its version; the
//     loser of a race gets a ConcurrencyError and sends nothing
//   - The ready email is sent once, when the order enters Ready and carries
//     a contact envelope
//   - A broken envelope is logged and never fails the transition
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	cipher     ports.EmailCipher
	notifier   ports.OrderNotifier
	recorder   ports.LifecycleRecorder
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	cipher ports.EmailCipher,
	notifier ports.OrderNotifier,
	recorder ports.LifecycleRecorder,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		cipher:     cipher,
		notifier:   notifier,
		recorder:   recorder,
		logger:     logger.With("component", "ChangeOrderStatusCommandHandler"),
	}
}

// Handle applies the transition and returns the order as stored afterwards.
//
// Returns:
//   - ObjectNotFoundError if the order does not exist
//   - StatusTransitionError for backward moves
//   - ConcurrencyError if the order changed since it was read
//   - StorageError for persistence failures
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, transition, err := h.apply(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if transition.Changed() {
		h.recorder.StatusChanged(transition.From, transition.To)
	}

	if transition.Has(order.EffectNotifyReady) {
		h.notifyReady(ctx, o)
	}

	return o, nil
}

func (h *ChangeOrderStatusCommandHandler) apply(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, order.Transition, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Transition{}, errs.NewStorageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, order.Transition{}, err
		}
		return nil, order.Transition{}, errs.NewStorageError("get order", err)
	}

	transition, err := o.ChangeStatus(cmd.Status())
	if err != nil {
		return nil, order.Transition{}, err
	}

	if !transition.Changed() {
		return o, transition, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) || errors.Is(err, errs.ErrObjectNotFound) {
			return nil, order.Transition{}, err
		}
		return nil, order.Transition{}, errs.NewStorageError("update order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.Transition{}, errs.NewStorageError("commit transaction", err)
	}

	return o, transition, nil
}

func (h *ChangeOrderStatusCommandHandler) notifyReady(ctx context.Context, o *order.Order) {
	envelope := o.ContactEmail()
	if envelope == nil {
		return
	}

	email, err := h.cipher.Decrypt(*envelope)
	if err != nil {
		h.logger.WarnContext(ctx, "contact email cannot be decrypted, ready email skipped",
			"order_id", o.ID().String(),
			"error", err,
		)
		return
	}

	h.notifier.OrderReady(ctx, o, email)
}
