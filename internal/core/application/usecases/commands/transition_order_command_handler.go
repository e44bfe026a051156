package commands

import (
	"context"
	"log/slog"

	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// TransitionOrderCommandHandler handles order lifecycle transitions.
// Loads the order and the acting account, delegates the authorization and
// state-machine decision to the TransitionAuthority, persists the result and
// publishes a status-changed event.
//
// The event publication is best-effort: the transition is already committed
// when the event is emitted, so a broker failure is logged and swallowed
// rather than rolling the transition back.
type TransitionOrderCommandHandler struct {
	uowFactory OrderAccountUoWFactory
	authority  services.TransitionAuthority
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderAccountUoWFactory,
	authority services.TransitionAuthority,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		publisher:  publisher,
		logger:     logger.With("component", "transition_order_handler"),
	}
}

// Handle processes the transition command.
//
// Error semantics surface directly from the layers below:
//   - errs.ObjectNotFoundError when the order or the actor does not exist
//   - services.ErrTransitionForbidden when the actor lacks authority
//   - order.ErrInvalidTransition when the edge is not in the transition table
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	actor, err := uow.AccountRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	if err = h.authority.ApplyTransition(aggregate, cmd.NextStatus(), actor.ID(), actor.Role()); err != nil {
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
