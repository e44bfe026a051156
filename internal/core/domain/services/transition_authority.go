package services

import (
	"errors"

	"parcelflow/internal/core/domain/model/account"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
)

var (
	// ErrTransitionForbidden is returned when the acting account lacks the
	// authority to perform the requested status transition.
	ErrTransitionForbidden = errors.New("account is not allowed to perform this transition")

	// ErrDeliveryProofIsRequired is returned when delivery completion is
	// attempted without a proof-of-delivery photo.
	ErrDeliveryProofIsRequired = errors.New("proof-of-delivery photo is required")
)

// TransitionAuthority is the domain service that owns the order status state
// machine and the authorization rule for who may move an order between states.
//
// Authorization rules:
//   - The order's assigned delivery agent may perform any transition the
//     state machine allows.
//   - An Admin may force an order into AwaitingPickup or PickedUp, but cannot
//     directly mark it Delivered or Returned; those require the assigned agent.
//
// Authorization is checked before transition validity, so a forbidden caller
// never learns whether the transition would otherwise succeed.
//
// Example usage:
//
//	authority := services.NewTransitionAuthority()
//	err := authority.ApplyTransition(ord, order.PickedUp, agentID, account.RoleDeliveryman)
//	if errors.Is(err, services.ErrTransitionForbidden) {
//	    // Caller lacks authority for this transition
//	}
type TransitionAuthority struct{}

// NewTransitionAuthority creates a new TransitionAuthority instance.
func NewTransitionAuthority() TransitionAuthority {
	return TransitionAuthority{}
}

// Authorize checks whether the acting account may move the order to the next
// status, without consulting the state machine.
//
// Returns nil when the actor is the order's assigned delivery agent, or when
// the actor is an Admin and the target status is AwaitingPickup or PickedUp.
// Returns ErrTransitionForbidden otherwise.
func (TransitionAuthority) Authorize(
	ord *order.Order,
	next order.Status,
	actorID kernel.UUID,
	actorRole account.Role,
) error {
	if ord.IsAssignedTo(actorID) {
		return nil
	}

	if actorRole == account.RoleAdmin && (next == order.AwaitingPickup || next == order.PickedUp) {
		return nil
	}

	return ErrTransitionForbidden
}

// ApplyTransition authorizes and performs a status transition on the order.
//
// The sequence is fixed: validate inputs, authorization check, state-machine
// check, then the mutation. On success the order's status is updated and the
// per-status timestamp is stamped; the caller is responsible for persisting
// the mutated order.
//
// Returns:
//   - ErrTransitionForbidden when the actor lacks authority
//   - order.ErrInvalidTransition (via InvalidTransitionError) when the edge
//     does not exist in the transition table
func (a TransitionAuthority) ApplyTransition(
	ord *order.Order,
	next order.Status,
	actorID kernel.UUID,
	actorRole account.Role,
) error {
	if err := ord.Validate(); err != nil {
		return err
	}

	if err := actorID.Validate(); err != nil {
		return err
	}

	if err := a.Authorize(ord, next, actorID, actorRole); err != nil {
		return err
	}

	return ord.MoveTo(next)
}

// ValidateForDelivery checks the preconditions for completing a delivery.
//
// Completion has an extra mandatory side input: the proof-of-delivery photo.
// The check runs strictly before the status is advanced to Delivered and
// before any photo upload happens, so no upload occurs for a request that
// will be rejected anyway.
//
// Returns:
//   - ErrTransitionForbidden when the actor is not the assigned agent
//   - ErrDeliveryProofIsRequired when the photo payload is empty
func (TransitionAuthority) ValidateForDelivery(
	ord *order.Order,
	actorID kernel.UUID,
	photo []byte,
) error {
	if err := ord.Validate(); err != nil {
		return err
	}

	if !ord.IsAssignedTo(actorID) {
		return ErrTransitionForbidden
	}

	if len(photo) == 0 {
		return ErrDeliveryProofIsRequired
	}

	return nil
}
