package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrRecipientNameIsRequired = errors.New("recipient name is required")
	ErrStreetIsRequired        = errors.New("street is required")
	ErrCityIsRequired          = errors.New("city is required")
	ErrZipCodeIsRequired       = errors.New("zip code is required")
)

// CreateOrderCommand represents a request to register a new delivery order
// together with its recipient. An optional delivery agent may be assigned at
// creation time; otherwise the order waits unassigned in Pending.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "Ada Lovelace",
//	    "123 Main Street", "Downtown", "Springfield", "IL", "62701", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	recipientName string
	street        string
	neighborhood  string
	city          string
	state         string
	zipCode       string
	deliverymanID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that the order ID is valid and the required recipient address
// fields are present. Neighborhood and state may be empty; the deliveryman
// is optional and validated only when provided.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	recipientName string,
	street string,
	neighborhood string,
	city string,
	state string,
	zipCode string,
	deliverymanID *kernel.UUID,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		neighborhood: neighborhood,
		state:        state,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setRecipientName(recipientName),
		orderCommand.setStreet(street),
		orderCommand.setCity(city),
		orderCommand.setZipCode(zipCode),
		orderCommand.setDeliverymanID(deliverymanID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RecipientName returns the addressee's name.
func (c CreateOrderCommand) RecipientName() string {
	return c.recipientName
}

// Street returns the delivery destination street address.
func (c CreateOrderCommand) Street() string {
	return c.street
}

// Neighborhood returns the destination neighborhood, possibly empty.
func (c CreateOrderCommand) Neighborhood() string {
	return c.neighborhood
}

// City returns the destination city.
func (c CreateOrderCommand) City() string {
	return c.city
}

// State returns the destination state or region, possibly empty.
func (c CreateOrderCommand) State() string {
	return c.state
}

// ZipCode returns the destination postal code.
func (c CreateOrderCommand) ZipCode() string {
	return c.zipCode
}

// DeliverymanID returns the optional delivery agent to assign, or nil.
func (c CreateOrderCommand) DeliverymanID() *kernel.UUID {
	return c.deliverymanID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRecipientName(name string) error {
	if name == "" {
		return ErrRecipientNameIsRequired
	}

	c.recipientName = name
	return nil
}

func (c *CreateOrderCommand) setStreet(street string) error {
	if street == "" {
		return ErrStreetIsRequired
	}

	c.street = street
	return nil
}

func (c *CreateOrderCommand) setCity(city string) error {
	if city == "" {
		return ErrCityIsRequired
	}

	c.city = city
	return nil
}

func (c *CreateOrderCommand) setZipCode(zipCode string) error {
	if zipCode == "" {
		return ErrZipCodeIsRequired
	}

	c.zipCode = zipCode
	return nil
}

func (c *CreateOrderCommand) setDeliverymanID(deliverymanID *kernel.UUID) error {
	if deliverymanID == nil {
		return nil
	}

	if err := deliverymanID.Validate(); err != nil {
		return err
	}

	assigned := *deliverymanID
	c.deliverymanID = &assigned
	return nil
}
