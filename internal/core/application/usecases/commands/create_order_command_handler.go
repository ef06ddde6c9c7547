package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

// MaxPickupCodeAttempts bounds how many generated pickup codes are tried
// before a unique-index conflict is returned to the caller.
const MaxPickupCodeAttempts = 5

// CreateOrderCommandHandler places new orders.
//
// Business rules:
//   - The pickup time must lie after the current time
//   - An address that belongs to a registered account can only be used by a
//     logged-in caller; otherwise nothing is persisted
//   - The contact address is encrypted before it reaches the aggregate
//   - A generated pickup code is redrawn on conflict, a supplied one is not
//   - The confirmation email is triggered after commit and never fails the call
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, directory, codec, dispatcher, recorder, time.Now)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // ask the customer to log in
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.IdentityDirectory
	cipher     ports.EmailCipher
	notifier   ports.OrderNotifier
	recorder   ports.LifecycleRecorder
	now        func() time.Time
	newCode    func() (kernel.PickupCode, error)
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// now supplies the creation time and the reference for the pickup time check.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.IdentityDirectory,
	cipher ports.EmailCipher,
	notifier ports.OrderNotifier,
	recorder ports.LifecycleRecorder,
	now func() time.Time,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		cipher:     cipher,
		notifier:   notifier,
		recorder:   recorder,
		now:        now,
		newCode:    kernel.NewRandomPickupCode,
	}
}

// WithPickupCodeGenerator returns a copy of the handler drawing generated
// pickup codes from gen.
func (h CreateOrderCommandHandler) WithPickupCodeGenerator(gen func() (kernel.PickupCode, error)) CreateOrderCommandHandler {
	h.newCode = gen
	return h
}

// Handle validates, persists and announces a new order.
//
// Returns the persisted order (carrying the envelope, never the plaintext) or:
//   - ValueIsRequiredError / ValueIsInvalidError for bad input
//   - ForbiddenError for an anonymous checkout with a registered address
//   - EncryptionError if the address cannot be sealed
//   - ConflictError if the pickup code is taken
//   - StorageError for persistence failures
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.now()
	if !cmd.PickupTime().After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("pickupTime", errors.New("must be in the future"))
	}

	if err := h.checkOwnership(ctx, cmd); err != nil {
		return nil, err
	}

	envelope, err := h.seal(cmd.Email())
	if err != nil {
		return nil, err
	}

	created, err := h.place(ctx, cmd, now, envelope)
	if err != nil {
		return nil, err
	}

	h.recorder.OrderCreated()

	if slices.Contains(created.PlacementEffects(), order.EffectNotifyConfirmed) {
		h.notifier.OrderConfirmed(ctx, created, cmd.Email().String())
	}

	return created, nil
}

func (h *CreateOrderCommandHandler) checkOwnership(ctx context.Context, cmd CreateOrderCommand) error {
	if cmd.Email().IsZero() || cmd.Requester() != nil {
		return nil
	}

	registered, err := h.directory.IsRegistered(ctx, cmd.Email())
	if err != nil {
		return errs.NewStorageError("check registered identity", err)
	}
	if registered {
		return errs.NewForbiddenError("registered identity requires login")
	}
	return nil
}

func (h *CreateOrderCommandHandler) seal(email kernel.Email) (*string, error) {
	if email.IsZero() {
		return nil, nil
	}

	envelope, err := h.cipher.Encrypt(email.String())
	if err != nil {
		if !errors.Is(err, errs.ErrEncryption) {
			err = errs.NewEncryptionError(err)
		}
		return nil, err
	}
	return &envelope, nil
}

// place persists the order, redrawing a generated pickup code when it
// collides. Each attempt runs in its own transaction since a failed insert
// aborts the surrounding one.
func (h *CreateOrderCommandHandler) place(
	ctx context.Context,
	cmd CreateOrderCommand,
	now time.Time,
	envelope *string,
) (*order.Order, error) {
	id := kernel.NewUUID()
	code := cmd.PickupCode()
	generated := code.IsZero()

	for attempt := 1; ; attempt++ {
		if generated {
			var err error
			if code, err = h.newCode(); err != nil {
				return nil, err
			}
		}

		o, err := order.NewOrder(id, cmd.Items(), code, cmd.PickupTime(), now, cmd.BuffetID(), envelope)
		if err != nil {
			return nil, err
		}

		err = h.persist(ctx, o)
		if err == nil {
			return o, nil
		}

		if generated && errors.Is(err, errs.ErrConflict) && attempt < MaxPickupCodeAttempts {
			continue
		}
		return nil, err
	}
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewStorageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return err
		}
		return errs.NewStorageError(fmt.Sprintf("add order %s", o.ID()), err)
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewStorageError("commit transaction", err)
	}

	return nil
}
