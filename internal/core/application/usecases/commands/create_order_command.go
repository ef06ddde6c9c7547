package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"buffet/internal/core/domain/model/identity"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/errs"
	"buffet/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a checkout: a paid basket turned into a
// pending order for one buffet.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    []string{"Sonkás szendvics (890 Ft)"},
//	    "",                        // let the engine generate a pickup code
//	    time.Now().Add(20*time.Minute),
//	    "buf1",
//	    "x@y.com",
//	    nil,                       // anonymous customer
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	items      []string
	pickupCode kernel.PickupCode
	pickupTime time.Time
	buffetID   string
	email      kernel.Email
	requester  *identity.Principal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// pickupCode and email are optional and may be empty. requester is nil for
// anonymous customers. The "pickup time lies in the future" rule depends on
// the clock and is checked by the handler.
func NewCreateOrderCommand(
	items []string,
	pickupCode string,
	pickupTime time.Time,
	buffetID string,
	email string,
	requester *identity.Principal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItems(items),
		cmd.setPickupCode(pickupCode),
		cmd.setPickupTime(pickupTime),
		cmd.setBuffetID(buffetID),
		cmd.setEmail(email),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Items returns a copy of the item lines.
func (c CreateOrderCommand) Items() []string {
	return slices.Clone(c.items)
}

// PickupCode returns the caller supplied code. The zero value means the
// handler generates one.
func (c CreateOrderCommand) PickupCode() kernel.PickupCode {
	return c.pickupCode
}

func (c CreateOrderCommand) PickupTime() time.Time {
	return c.pickupTime
}

func (c CreateOrderCommand) BuffetID() string {
	return c.buffetID
}

// Email returns the contact address. The zero value means none was given.
func (c CreateOrderCommand) Email() kernel.Email {
	return c.email
}

// Requester returns the authenticated caller, or nil.
func (c CreateOrderCommand) Requester() *identity.Principal {
	return c.requester
}

func (c *CreateOrderCommand) setItems(items []string) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("line %d is blank", i))
		}
	}

	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setPickupCode(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	code, err := kernel.NewPickupCode(raw)
	if err != nil {
		return err
	}

	c.pickupCode = code
	return nil
}

func (c *CreateOrderCommand) setPickupTime(pickupTime time.Time) error {
	if pickupTime.IsZero() {
		return errs.NewValueIsRequiredError("pickupTime")
	}

	c.pickupTime = pickupTime
	return nil
}

func (c *CreateOrderCommand) setBuffetID(buffetID string) error {
	buffetID = strings.TrimSpace(buffetID)
	if buffetID == "" {
		return errs.NewValueIsRequiredError("buffetId")
	}

	c.buffetID = buffetID
	return nil
}

func (c *CreateOrderCommand) setEmail(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	email, err := kernel.NewEmail(raw)
	if err != nil {
		return err
	}

	c.email = email
	return nil
}
