package queries

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentOrdersQueryHandler retrieves a delivery agent's orders from the database.
// Reads the orders table directly for listing purposes, bypassing aggregate
// reconstruction.
//
// Example:
//
//	handler := NewGetAgentOrdersQueryHandler(db)
//	query, _ := NewGetAgentOrdersQuery(agentID)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list agent orders: %v", err)
//	    return err
//	}
type GetAgentOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentOrdersQueryHandler creates a handler for agent order listings.
// Requires a GORM database connection for query execution.
func NewGetAgentOrdersQueryHandler(db *gorm.DB) GetAgentOrdersQueryHandler {
	return GetAgentOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders assigned to the agent.
// Results are sorted by creation time, newest last, for consistent output.
func (h GetAgentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAgentOrdersQuery,
) ([]GetAgentOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAgentOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			created_at
		FROM orders
		WHERE deliveryman_id = ?
		ORDER BY created_at, id
	`, query.DeliverymanID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetAgentOrdersQueryResponse
		var id uuid.UUID
		var trackingCode string
		var status int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&trackingCode,
			&status,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orderResp.ID = orderID
		orderResp.TrackingCode = trackingCode
		orderResp.Status = order.Status(status).String()
		orderResp.CreatedAt = createdAt
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
