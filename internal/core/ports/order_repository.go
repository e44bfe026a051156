// Package ports defines the contracts between the domain core and
// infrastructure adapters. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByDeliveryman retrieves every order currently assigned to the
	// given delivery agent, in stable storage order. Used by the
	// nearby-delivery matching routine.
	GetAllByDeliveryman(ctx context.Context, deliverymanID kernel.UUID) ([]*order.Order, error)
}
