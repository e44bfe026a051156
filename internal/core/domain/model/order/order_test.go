package order_test

import (
	"testing"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "BR-0001", kernel.NewUUID())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with stamped creation time", func(t *testing.T) {
		id := kernel.NewUUID()
		recipientID := kernel.NewUUID()

		o, err := order.NewOrder(id, "BR-0001", recipientID)

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "BR-0001", o.TrackingCode())
		assert.True(t, o.RecipientID().IsEqual(recipientID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Deliveryman())
		assert.Empty(t, o.DeliveryPhoto())
		assert.False(t, o.CreatedAt().IsZero())
		assert.Nil(t, o.AwaitingPickupAt())
		assert.Nil(t, o.PickedUpAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.ReturnedAt())
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "BR-0001", kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("rejects empty tracking code", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", kernel.NewUUID())
		require.ErrorIs(t, err, order.ErrTrackingCodeIsRequired)
	})

	t.Run("rejects invalid recipient", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "BR-0001", kernel.UUID{})
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newPendingOrder(t).Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignDeliveryman(t *testing.T) {
	t.Run("assigns and reassigns before delivery", func(t *testing.T) {
		o := newPendingOrder(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, o.AssignDeliveryman(first))
		require.NotNil(t, o.Deliveryman())
		assert.True(t, o.Deliveryman().IsEqual(first))
		assert.True(t, o.IsAssignedTo(first))

		require.NoError(t, o.AssignDeliveryman(second))
		assert.True(t, o.IsAssignedTo(second))
		assert.False(t, o.IsAssignedTo(first))
	})

	t.Run("rejects invalid agent id", func(t *testing.T) {
		o := newPendingOrder(t)
		require.Error(t, o.AssignDeliveryman(kernel.UUID{}))
	})

	t.Run("rejects assignment on delivered order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.AssignDeliveryman(kernel.NewUUID()))
		require.NoError(t, o.MoveTo(order.AwaitingPickup))
		require.NoError(t, o.MoveTo(order.PickedUp))
		require.NoError(t, o.AttachDeliveryPhoto("photos/proof.jpg"))
		require.NoError(t, o.MoveTo(order.Delivered))

		require.ErrorIs(t, o.AssignDeliveryman(kernel.NewUUID()), order.ErrInvalidTransition)
	})
}

func TestOrder_MoveTo(t *testing.T) {
	t.Run("walks the happy path and stamps timestamps", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.MoveTo(order.AwaitingPickup))
		assert.Equal(t, order.AwaitingPickup, o.Status())
		require.NotNil(t, o.AwaitingPickupAt())

		require.NoError(t, o.MoveTo(order.PickedUp))
		require.NotNil(t, o.PickedUpAt())

		require.NoError(t, o.MoveTo(order.Delivered))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Nil(t, o.ReturnedAt())
	})

	t.Run("rejects edges not in the table", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.MoveTo(order.PickedUp)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("delivered order rejects every transition", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.MoveTo(order.AwaitingPickup))
		require.NoError(t, o.MoveTo(order.PickedUp))
		require.NoError(t, o.MoveTo(order.Delivered))

		for _, next := range []order.Status{
			order.Pending, order.AwaitingPickup, order.PickedUp, order.Returned,
		} {
			require.ErrorIs(t, o.MoveTo(next), order.ErrInvalidTransition)
		}
	})

	t.Run("timestamps are set once across returned cycles", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.MoveTo(order.AwaitingPickup))
		require.NoError(t, o.MoveTo(order.PickedUp))
		require.NoError(t, o.MoveTo(order.Returned))

		firstAwaiting := o.AwaitingPickupAt()
		firstPicked := o.PickedUpAt()
		require.NotNil(t, firstAwaiting)
		require.NotNil(t, firstPicked)

		// Second delivery attempt re-enters both states.
		require.NoError(t, o.MoveTo(order.AwaitingPickup))
		require.NoError(t, o.MoveTo(order.PickedUp))

		assert.Equal(t, firstAwaiting, o.AwaitingPickupAt())
		assert.Equal(t, firstPicked, o.PickedUpAt())
	})
}

func TestOrder_AttachDeliveryPhoto(t *testing.T) {
	t.Run("attaches non-empty photo", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.AttachDeliveryPhoto("photos/proof.jpg"))
		assert.Equal(t, "photos/proof.jpg", o.DeliveryPhoto())
	})

	t.Run("rejects empty photo", func(t *testing.T) {
		o := newPendingOrder(t)
		require.ErrorIs(t, o.AttachDeliveryPhoto(""), order.ErrDeliveryPhotoIsRequired)
	})

	t.Run("rejects replacement after delivery", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.MoveTo(order.AwaitingPickup))
		require.NoError(t, o.MoveTo(order.PickedUp))
		require.NoError(t, o.AttachDeliveryPhoto("photos/proof.jpg"))
		require.NoError(t, o.MoveTo(order.Delivered))

		require.Error(t, o.AttachDeliveryPhoto("photos/other.jpg"))
		assert.Equal(t, "photos/proof.jpg", o.DeliveryPhoto())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		source := newPendingOrder(t)
		agentID := kernel.NewUUID()
		require.NoError(t, source.AssignDeliveryman(agentID))
		require.NoError(t, source.MoveTo(order.AwaitingPickup))
		require.NoError(t, source.MoveTo(order.PickedUp))

		restored, err := order.RestoreOrder(
			source.ID(),
			source.TrackingCode(),
			source.RecipientID(),
			source.Deliveryman(),
			source.Status(),
			source.DeliveryPhoto(),
			source.CreatedAt(),
			source.AwaitingPickupAt(),
			source.PickedUpAt(),
			source.DeliveredAt(),
			source.ReturnedAt(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(source))
		assert.Equal(t, order.PickedUp, restored.Status())
		assert.True(t, restored.IsAssignedTo(agentID))
		assert.Equal(t, source.AwaitingPickupAt(), restored.AwaitingPickupAt())
	})

	t.Run("restores delivered order with photo", func(t *testing.T) {
		source := newPendingOrder(t)
		require.NoError(t, source.AssignDeliveryman(kernel.NewUUID()))
		require.NoError(t, source.MoveTo(order.AwaitingPickup))
		require.NoError(t, source.MoveTo(order.PickedUp))
		require.NoError(t, source.AttachDeliveryPhoto("photos/proof.jpg"))
		require.NoError(t, source.MoveTo(order.Delivered))

		restored, err := order.RestoreOrder(
			source.ID(), source.TrackingCode(), source.RecipientID(),
			source.Deliveryman(), source.Status(), source.DeliveryPhoto(),
			source.CreatedAt(), source.AwaitingPickupAt(), source.PickedUpAt(),
			source.DeliveredAt(), source.ReturnedAt(),
		)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, restored.Status())
		assert.Equal(t, "photos/proof.jpg", restored.DeliveryPhoto())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		source := newPendingOrder(t)

		_, err := order.RestoreOrder(
			source.ID(), source.TrackingCode(), source.RecipientID(),
			nil, order.Unknown, "", source.CreatedAt(), nil, nil, nil, nil,
		)

		require.Error(t, err)
	})
}
