package commands

import (
	"context"
	"errors"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/recipient"
)

// ErrAssigneeIsNotDeliveryman is returned when the account chosen as the
// order's delivery agent does not have the deliveryman role.
var ErrAssigneeIsNotDeliveryman = errors.New("assigned account is not a delivery agent")

// CreateOrderCommandHandler handles the business logic for order creation.
// Registers the recipient, generates a tracking code and creates the order in
// Pending status, optionally assigning a delivery agent.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "Ada Lovelace",
//	    "456 Oak Avenue", "", "Springfield", "IL", "62701", nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory for transactional persistence across the order and
// recipient aggregates.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Persists the recipient and the order atomically; when a delivery agent is
// requested its account must exist and carry the deliveryman role.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.DeliverymanID() != nil {
		acc, err := uow.AccountRepository().Get(ctx, *cmd.DeliverymanID())
		if err != nil {
			return err
		}
		if !acc.IsDeliveryman() {
			return ErrAssigneeIsNotDeliveryman
		}
	}

	rec, err := recipient.NewRecipient(
		kernel.NewUUID(),
		cmd.RecipientName(),
		cmd.Street(),
		cmd.Neighborhood(),
		cmd.City(),
		cmd.State(),
		cmd.ZipCode(),
	)
	if err != nil {
		return err
	}

	if err = uow.RecipientRepository().Add(ctx, rec); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), newTrackingCode(), rec.ID())
	if err != nil {
		return err
	}

	if cmd.DeliverymanID() != nil {
		if err = aggregate.AssignDeliveryman(*cmd.DeliverymanID()); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// newTrackingCode generates an opaque public tracking identifier.
// Derived from a random UUID so codes are unguessable without a counter.
func newTrackingCode() string {
	raw := strings.ReplaceAll(kernel.NewUUID().String(), "-", "")
	return "PF-" + strings.ToUpper(raw[:12])
}
