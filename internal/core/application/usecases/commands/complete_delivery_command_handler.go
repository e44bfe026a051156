package commands

import (
	"context"
	"log/slog"

	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// CompleteDeliveryCommandHandler handles delivery completion.
//
// The sequence is deliberate: the delivery preconditions (assigned agent,
// non-empty photo) are checked before the photo is uploaded, so no blob is
// stored for a request that will be rejected. Only after the photo reference
// is attached does the order move to Delivered.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderAccountUoWFactory
	authority  services.TransitionAuthority
	photos     ports.PhotoStorage
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderAccountUoWFactory,
	authority services.TransitionAuthority,
	photos ports.PhotoStorage,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		photos:     photos,
		publisher:  publisher,
		logger:     logger.With("component", "complete_delivery_handler"),
	}
}

// Handle processes the delivery completion command.
//
// Error semantics:
//   - errs.ObjectNotFoundError when the order does not exist
//   - services.ErrTransitionForbidden when the actor is not the assigned agent
//   - services.ErrDeliveryProofIsRequired when the photo payload is empty
//   - order.ErrInvalidTransition when the order is not in a deliverable state
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.authority.ValidateForDelivery(aggregate, cmd.ActorID(), cmd.Photo()); err != nil {
		return err
	}

	photoRef, err := h.photos.Store(ctx, aggregate.ID(), cmd.Photo())
	if err != nil {
		return err
	}

	if err = aggregate.AttachDeliveryPhoto(photoRef); err != nil {
		return err
	}

	if err = aggregate.MoveTo(order.Delivered); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishStatusChanged(ctx, aggregate); err != nil {
		h.logger.WarnContext(ctx, "failed to publish status-changed event",
			"order_id", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err)
	}

	return nil
}
