package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
)

// PhotoStorage stores proof-of-delivery photos.
// It is invoked only after the delivery precondition check passes, so no
// upload happens for a request that will be rejected anyway.
type PhotoStorage interface {
	// Store persists the photo payload for the given order and returns the
	// reference recorded on the order aggregate.
	Store(ctx context.Context, orderID kernel.UUID, photo []byte) (string, error)
}
