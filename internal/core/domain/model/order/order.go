package order

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrTrackingCodeIsRequired is returned when attempting to create an order
	// without a tracking code.
	ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("tracking code")

	// ErrDeliveryPhotoIsRequired is returned when attaching an empty delivery photo.
	ErrDeliveryPhotoIsRequired = errs.NewValueIsRequiredError("delivery photo")
)

// Order represents a parcel delivery order. It is the aggregate root that
// manages the order lifecycle from creation through pickup and transit to
// delivery or return.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty tracking code
//   - Must reference exactly one recipient
//   - Status transitions only along the edges of the lifecycle state machine
//   - Per-status timestamps are set at most once, only on entering that state
//   - The delivery photo is set only on the transition into Delivered
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Authorization for status changes is
// enforced by the TransitionAuthority domain service, not by the aggregate.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// trackingCode is the opaque public identifier, immutable after creation
	trackingCode string

	// recipientID references the parcel's recipient (required)
	recipientID kernel.UUID

	// deliverymanID is the assigned delivery agent (nil until assignment)
	deliverymanID *kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// deliveryPhoto is the proof-of-delivery reference, set on Delivered only
	deliveryPhoto string

	// timestamps for each lifecycle state, filled monotonically in
	// transition order and never cleared
	createdAt        time.Time
	awaitingPickupAt *time.Time
	pickedUpAt       *time.Time
	deliveredAt      *time.Time
	returnedAt       *time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with validation.
// This is the only way to create a fresh order, ensuring all invariants hold.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - trackingCode: Opaque public tracking identifier (must be non-empty)
//   - recipientID: Identifier of the parcel recipient (must be valid UUID)
//
// Returns the created order with createdAt stamped, or a validation error.
func NewOrder(id kernel.UUID, trackingCode string, recipientID kernel.UUID) (*Order, error) {
	order := &Order{
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTrackingCode(trackingCode),
		order.setRecipientID(recipientID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, this constructor restores the order to its previously
// persisted state, including status, assignment, photo, and timestamps.
// The restored order behaves identically to one created through normal
// domain operations.
func RestoreOrder(
	id kernel.UUID,
	trackingCode string,
	recipientID kernel.UUID,
	deliverymanID *kernel.UUID,
	status Status,
	deliveryPhoto string,
	createdAt time.Time,
	awaitingPickupAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	returnedAt *time.Time,
) (*Order, error) {
	order := &Order{
		deliveryPhoto:    deliveryPhoto,
		createdAt:        createdAt,
		awaitingPickupAt: awaitingPickupAt,
		pickedUpAt:       pickedUpAt,
		deliveredAt:      deliveredAt,
		returnedAt:       returnedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTrackingCode(trackingCode),
		order.setRecipientID(recipientID),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	if deliverymanID != nil {
		if err := deliverymanID.Validate(); err != nil {
			return nil, err
		}
		assigned := *deliverymanID
		order.deliverymanID = &assigned
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise. Call when reconstructing
// orders from persistence to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingCode returns the opaque public tracking identifier.
func (o *Order) TrackingCode() string {
	return o.trackingCode
}

// RecipientID returns the identifier of the parcel recipient.
func (o *Order) RecipientID() kernel.UUID {
	return o.recipientID
}

// Deliveryman returns the assigned delivery agent's ID, or nil if unassigned.
func (o *Order) Deliveryman() *kernel.UUID {
	return o.deliverymanID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryPhoto returns the proof-of-delivery reference.
// Empty until the order enters Delivered.
func (o *Order) DeliveryPhoto() string {
	return o.deliveryPhoto
}

// CreatedAt returns the creation time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AwaitingPickupAt returns when the order first entered AwaitingPickup, or nil.
func (o *Order) AwaitingPickupAt() *time.Time {
	return o.awaitingPickupAt
}

// PickedUpAt returns when the order first entered PickedUp, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the order entered Delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// ReturnedAt returns when the order first entered Returned, or nil.
func (o *Order) ReturnedAt() *time.Time {
	return o.returnedAt
}

// IsAssignedTo reports whether the given account is the order's assigned
// delivery agent.
func (o *Order) IsAssignedTo(accountID kernel.UUID) bool {
	return o.deliverymanID != nil && o.deliverymanID.IsEqual(accountID)
}

// AssignDeliveryman assigns the order to a delivery agent.
// Assignment is rejected once the order reached its terminal state.
// Reassignment before delivery is allowed.
func (o *Order) AssignDeliveryman(deliverymanID kernel.UUID) error {
	if err := deliverymanID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.status, o.status)
	}

	o.deliverymanID = &deliverymanID
	return nil
}

// AttachDeliveryPhoto records the proof-of-delivery reference.
// Must be called before the transition into Delivered; the photo is never
// replaced once the order is delivered.
func (o *Order) AttachDeliveryPhoto(photo string) error {
	if photo == "" {
		return ErrDeliveryPhotoIsRequired
	}
	if o.status == Delivered {
		return NewInvalidTransitionError(Delivered, Delivered)
	}

	o.deliveryPhoto = photo
	return nil
}

// MoveTo advances the order to the next lifecycle status.
//
// The transition must exist in the state machine's transition table,
// otherwise an InvalidTransitionError carrying the attempted from/to pair
// is returned. On success the corresponding per-status timestamp is stamped
// with the current time if not already set; re-entering a state through a
// Returned cycle never overwrites an earlier timestamp.
func (o *Order) MoveTo(next Status) error {
	if err := o.status.ValidateTransitionTo(next); err != nil {
		return err
	}

	o.status = next
	o.stamp(next)
	return nil
}

// stamp records the entry time for the given status, set-once semantics.
func (o *Order) stamp(status Status) {
	now := time.Now().UTC()

	switch status {
	case AwaitingPickup:
		if o.awaitingPickupAt == nil {
			o.awaitingPickupAt = &now
		}
	case PickedUp:
		if o.pickedUpAt == nil {
			o.pickedUpAt = &now
		}
	case Delivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &now
		}
	case Returned:
		if o.returnedAt == nil {
			o.returnedAt = &now
		}
	case Unknown, Pending:
		// Pending is stamped by createdAt at construction.
	}
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setTrackingCode validates and sets the immutable tracking code.
func (o *Order) setTrackingCode(trackingCode string) error {
	if trackingCode == "" {
		return ErrTrackingCodeIsRequired
	}
	o.trackingCode = trackingCode
	return nil
}

// setRecipientID validates and sets the recipient reference.
func (o *Order) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	o.recipientID = recipientID
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
