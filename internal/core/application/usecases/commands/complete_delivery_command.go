package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a request to mark an order as delivered
// with a proof-of-delivery photo. The photo payload is carried as-is; whether
// it is present is a domain precondition checked by the handler before any
// upload happens, not a constructor validation.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	photo   []byte

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
// Validates that both identifiers are valid; the photo may be empty here and
// is rejected later by the delivery precondition check.
func NewCompleteDeliveryCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	photo []byte,
) (CompleteDeliveryCommand, error) {
	deliveryCommand := CompleteDeliveryCommand{
		photo: photo,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryCommand.setOrderID(orderID),
		deliveryCommand.setActorID(actorID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the acting account.
func (c CompleteDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Photo returns the proof-of-delivery photo payload.
func (c CompleteDeliveryCommand) Photo() []byte {
	return c.photo
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
