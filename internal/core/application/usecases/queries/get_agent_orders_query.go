package queries

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrGetAgentOrdersQueryIsNotConstructed = errors.New(
	"GetAgentOrdersQuery must be created via NewGetAgentOrdersQuery constructor",
)

// GetAgentOrdersQuery retrieves the orders assigned to a delivery agent.
// Returns a flat read model straight from the database; no domain aggregates
// are reconstructed for this listing.
//
// Example:
//
//	query, err := NewGetAgentOrdersQuery(agentID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("%s [%s]\n", o.TrackingCode, o.Status)
//	}
type GetAgentOrdersQuery struct { //nolint:recvcheck //using for validation
	deliverymanID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgentOrdersQuery creates a query for a delivery agent's order list.
func NewGetAgentOrdersQuery(deliverymanID kernel.UUID) (GetAgentOrdersQuery, error) {
	query := GetAgentOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDeliverymanID(deliverymanID); err != nil {
		return GetAgentOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAgentOrdersQueryIsNotConstructed if validation fails.
func (q GetAgentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentOrdersQueryIsNotConstructed)
}

// DeliverymanID returns the delivery agent whose orders are listed.
func (q GetAgentOrdersQuery) DeliverymanID() kernel.UUID {
	return q.deliverymanID
}

func (q *GetAgentOrdersQuery) setDeliverymanID(deliverymanID kernel.UUID) error {
	if err := deliverymanID.Validate(); err != nil {
		return err
	}

	q.deliverymanID = deliverymanID
	return nil
}

// GetAgentOrdersQueryResponse represents one order in the agent's listing.
type GetAgentOrdersQueryResponse struct {
	ID           kernel.UUID
	TrackingCode string
	Status       string
	CreatedAt    time.Time
}
