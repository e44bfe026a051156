// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and delivery agent assignment.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode     string     `gorm:"uniqueIndex"`
	RecipientID      uuid.UUID  `gorm:"type:uuid;index"`
	DeliverymanID    *uuid.UUID `gorm:"type:uuid;index"`
	Status           int        `gorm:"index"`
	DeliveryPhoto    string
	CreatedAt        time.Time
	AwaitingPickupAt *time.Time
	PickedUpAt       *time.Time
	DeliveredAt      *time.Time
	ReturnedAt       *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional delivery agent assignment and
// the per-status timestamps.
func fromDomain(aggregate *order.Order) OrderDTO {
	var deliverymanID *uuid.UUID
	if id := aggregate.Deliveryman(); id != nil {
		raw := id.Bytes()
		deliverymanID = &raw
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		TrackingCode:     aggregate.TrackingCode(),
		RecipientID:      aggregate.RecipientID().Bytes(),
		DeliverymanID:    deliverymanID,
		Status:           int(aggregate.Status()),
		DeliveryPhoto:    aggregate.DeliveryPhoto(),
		CreatedAt:        aggregate.CreatedAt(),
		AwaitingPickupAt: aggregate.AwaitingPickupAt(),
		PickedUpAt:       aggregate.PickedUpAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		ReturnedAt:       aggregate.ReturnedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, assignment, photo and
// timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var deliverymanID *kernel.UUID
	if dto.DeliverymanID != nil {
		dID, deliverymanErr := kernel.UUIDFromBytes((*dto.DeliverymanID)[:])
		if deliverymanErr != nil {
			return nil, deliverymanErr
		}

		deliverymanID = &dID
	}

	return order.RestoreOrder(
		id,
		dto.TrackingCode,
		recipientID,
		deliverymanID,
		order.Status(dto.Status),
		dto.DeliveryPhoto,
		dto.CreatedAt,
		dto.AwaitingPickupAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.ReturnedAt,
	)
}
