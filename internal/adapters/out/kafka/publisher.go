// Package kafka publishes order lifecycle events to a Kafka topic.
// Consumers downstream (notifications, analytics) react to status changes
// without coupling to the delivery backend.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"parcelflow/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// statusChangedEvent is the wire format of an order status change.
type statusChangedEvent struct {
	OrderID      string    `json:"order_id"`
	TrackingCode string    `json:"tracking_code"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// StatusPublisher implements the OrderEventPublisher port with kafka-go.
// Messages are keyed by order ID so all events of one order land on the same
// partition and stay ordered.
type StatusPublisher struct {
	writer *kafka.Writer
}

// NewStatusPublisher creates a publisher writing to the given brokers and topic.
func NewStatusPublisher(brokers []string, topic string) *StatusPublisher {
	return &StatusPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishStatusChanged emits a status-changed event for the order.
func (p *StatusPublisher) PublishStatusChanged(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(statusChangedEvent{
		OrderID:      aggregate.ID().String(),
		TrackingCode: aggregate.TrackingCode(),
		Status:       aggregate.Status().String(),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(aggregate.ID().String()),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (p *StatusPublisher) Close() error {
	return p.writer.Close()
}
