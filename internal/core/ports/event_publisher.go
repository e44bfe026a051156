package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/order"
)

// OrderEventPublisher notifies external consumers about order lifecycle
// changes. Publishing happens after the transition is committed; delivery is
// best-effort and failures must not roll back the transition.
type OrderEventPublisher interface {
	// PublishStatusChanged emits a status-changed event for the order.
	PublishStatusChanged(ctx context.Context, aggregate *order.Order) error
}
