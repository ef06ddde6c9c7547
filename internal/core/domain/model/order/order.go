package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

const initialVersion = 1

// Order is the aggregate root of the buffet order core. It tracks one
// customer order from checkout until the customer collects it at the counter.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Belongs to exactly one buffet (buffetID is never empty)
//   - Has at least one item line, none of them blank
//   - Pickup time lies after the creation time
//   - The contact email, when present, is only ever held as an encrypted envelope
//   - Status transitions follow the forward-only state machine in Status
//
// Items, pickup code, pickup time, creation time and buffet are immutable.
// The only mutation is ChangeStatus.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// items are human-readable lines, each ending in a price annotation
	items []string

	// status represents the current state in the order lifecycle
	status Status

	// contactEmail is the encrypted envelope of the customer's address (nil if none)
	contactEmail *string

	// pickupCode is the code the customer presents at the counter
	pickupCode kernel.PickupCode

	// pickupTime is the requested collection time
	pickupTime time.Time

	// createdAt is the checkout time
	createdAt time.Time

	// buffetID identifies the owning buffet
	buffetID string

	// version is the optimistic concurrency token after pending changes
	version int

	// persistedVersion is the version this instance was loaded or created with
	persistedVersion int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new pending Order. This is the only way to create an
// order at checkout, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order
//   - items: Non-empty item lines, e.g. "Sonkás szendvics (890 Ft)"
//   - pickupCode: Code the customer will present at the counter
//   - pickupTime: Requested collection time, must be after createdAt
//   - createdAt: Checkout time
//   - buffetID: Owning buffet (required)
//   - contactEmail: Encrypted envelope of the contact address, or nil
//
// Example:
//
//	code, _ := kernel.NewPickupCode("AB3")
//	o, err := order.NewOrder(kernel.NewUUID(), []string{"Kakaós csiga (350 Ft)"},
//	    code, now.Add(20*time.Minute), now, "buf1", nil)
func NewOrder(
	id kernel.UUID,
	items []string,
	pickupCode kernel.PickupCode,
	pickupTime time.Time,
	createdAt time.Time,
	buffetID string,
	contactEmail *string,
) (*Order, error) {
	o := &Order{
		status:           Pending,
		version:          initialVersion,
		persistedVersion: initialVersion,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setPickupCode(pickupCode),
		o.setTimes(pickupTime, createdAt),
		o.setBuffetID(buffetID),
		o.setContactEmail(contactEmail),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order read from storage. It applies the same
// validation as NewOrder except the pickup-after-creation rule, which only
// holds at checkout time, and accepts any valid status and version.
func RestoreOrder(
	id kernel.UUID,
	items []string,
	status Status,
	contactEmail *string,
	pickupCode kernel.PickupCode,
	pickupTime time.Time,
	createdAt time.Time,
	buffetID string,
	version int,
) (*Order, error) {
	o := &Order{
		pickupTime:       pickupTime,
		createdAt:        createdAt,
		version:          version,
		persistedVersion: version,
		isConstructed:    true,
	}

	if version < initialVersion {
		return nil, errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is less than %d", version, initialVersion))
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setStatus(status),
		o.setPickupCode(pickupCode),
		o.setBuffetID(buffetID),
		o.setContactEmail(contactEmail),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Repositories call it before writing.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the item lines.
func (o *Order) Items() []string {
	return slices.Clone(o.items)
}

// Total returns the sum of the annotated item prices in forints.
func (o *Order) Total() int {
	return Total(o.items)
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ContactEmail returns the encrypted envelope, or nil when the order was
// placed without an address. The plaintext is never held by the aggregate.
func (o *Order) ContactEmail() *string {
	if o.contactEmail == nil {
		return nil
	}
	envelope := *o.contactEmail
	return &envelope
}

// HasContactEmail reports whether the order carries an envelope.
func (o *Order) HasContactEmail() bool {
	return o.contactEmail != nil
}

// PickupCode returns the customer's pickup code.
func (o *Order) PickupCode() kernel.PickupCode {
	return o.pickupCode
}

// PickupTime returns the requested collection time.
func (o *Order) PickupTime() time.Time {
	return o.pickupTime
}

// CreatedAt returns the checkout time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// BuffetID returns the owning buffet's identifier.
func (o *Order) BuffetID() string {
	return o.buffetID
}

// Version returns the concurrency token including pending changes.
func (o *Order) Version() int {
	return o.version
}

// PersistedVersion returns the concurrency token the order was loaded with.
// Repositories use it as the compare-and-swap expectation.
func (o *Order) PersistedVersion() int {
	return o.persistedVersion
}

// PlacementEffects returns the effects of placing this order: a confirmation
// email when a contact address was given.
func (o *Order) PlacementEffects() []Effect {
	if !o.HasContactEmail() {
		return nil
	}
	return []Effect{EffectNotifyConfirmed}
}

// ChangeStatus moves the order to next according to Status.TransitionTo.
//
// This method enforces the following business rules:
//   - Only the current status or its immediate successor is accepted
//   - Re-writing the current status changes nothing and requests no effects
//   - EffectNotifyReady is only requested when a contact envelope exists
//
// Returns:
//   - Transition describing from/to and the effects to perform
//   - error if the transition is not allowed
//
// Example:
//
//	tr, err := o.ChangeStatus(order.Ready)
//	if err != nil {
//	    return err
//	}
//	if tr.Has(order.EffectNotifyReady) {
//	    // decrypt and send the ready email after persisting
//	}
func (o *Order) ChangeStatus(next Status) (Transition, error) {
	from := o.status

	to, effects, err := from.TransitionTo(next)
	if err != nil {
		return Transition{}, err
	}

	if to == from {
		return Transition{From: from, To: to}, nil
	}

	o.status = to
	o.version = o.persistedVersion + 1

	if !o.HasContactEmail() {
		effects = slices.DeleteFunc(effects, func(e Effect) bool { return e == EffectNotifyReady })
	}

	return Transition{From: from, To: to, Effects: effects}, nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setItems validates and copies the item lines.
func (o *Order) setItems(items []string) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("line %d is blank", i))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPickupCode(code kernel.PickupCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.pickupCode = code
	return nil
}

// setTimes enforces that a new order is picked up after it was placed.
func (o *Order) setTimes(pickupTime, createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if pickupTime.IsZero() {
		return errs.NewValueIsRequiredError("pickupTime")
	}
	if !pickupTime.After(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"pickupTime",
			fmt.Errorf("%s is not after %s", pickupTime.Format(time.RFC3339), createdAt.Format(time.RFC3339)),
		)
	}
	o.pickupTime = pickupTime
	o.createdAt = createdAt
	return nil
}

func (o *Order) setBuffetID(buffetID string) error {
	buffetID = strings.TrimSpace(buffetID)
	if buffetID == "" {
		return errs.NewValueIsRequiredError("buffetId")
	}
	o.buffetID = buffetID
	return nil
}

func (o *Order) setContactEmail(envelope *string) error {
	if envelope == nil {
		o.contactEmail = nil
		return nil
	}
	if strings.TrimSpace(*envelope) == "" {
		return errs.NewValueIsInvalidError("contactEmail")
	}
	value := *envelope
	o.contactEmail = &value
	return nil
}
