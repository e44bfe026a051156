// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var (
	ErrGetNearbyDeliveriesQueryIsNotConstructed = errors.New(
		"GetNearbyDeliveriesQuery must be created via NewGetNearbyDeliveriesQuery constructor",
	)

	// ErrZipCodeIsMissing is returned when the reference postal code is empty.
	// Raised before any storage or resolver call is made.
	ErrZipCodeIsMissing = errors.New("zip code is required to find nearby deliveries")

	// ErrNoDeliveriesFound is returned when the delivery agent has no orders
	// assigned at all. Distinct from services.ErrNoNearbyDeliveries, which
	// means orders existed but none had usable coordinates.
	ErrNoDeliveriesFound = errors.New("no deliveries found for this delivery agent")

	// ErrOriginIsUnresolvable is returned when the reference postal code cannot
	// be turned into coordinates, neither directly nor via forward geocoding.
	// Provider transport failures are folded into this error and never leaked.
	ErrOriginIsUnresolvable = errors.New("reference postal code cannot be resolved to coordinates")
)

// GetNearbyDeliveriesQuery requests the agent's open orders ranked by
// great-circle distance from a reference postal code.
//
// Example:
//
//	query, err := NewGetNearbyDeliveriesQuery(agentID, "62701")
//	if err != nil {
//	    return fmt.Errorf("invalid nearby request: %w", err)
//	}
//
//	ranked, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, d := range ranked {
//	    fmt.Printf("%s -> %s\n", d.TrackingCode, d.DistanceLabel)
//	}
type GetNearbyDeliveriesQuery struct { //nolint:recvcheck //using for validation
	deliverymanID kernel.UUID
	zipCode       string

	guard guard.ConstructorGuard
}

// NewGetNearbyDeliveriesQuery creates a nearby-deliveries query.
// The postal code is mandatory: an empty value fails here with
// ErrZipCodeIsMissing, before any storage call happens.
func NewGetNearbyDeliveriesQuery(deliverymanID kernel.UUID, zipCode string) (GetNearbyDeliveriesQuery, error) {
	query := GetNearbyDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setDeliverymanID(deliverymanID),
		query.setZipCode(zipCode),
	); err != nil {
		return GetNearbyDeliveriesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetNearbyDeliveriesQueryIsNotConstructed if validation fails.
func (q GetNearbyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyDeliveriesQueryIsNotConstructed)
}

// DeliverymanID returns the delivery agent whose orders are ranked.
func (q GetNearbyDeliveriesQuery) DeliverymanID() kernel.UUID {
	return q.deliverymanID
}

// ZipCode returns the reference postal code.
func (q GetNearbyDeliveriesQuery) ZipCode() string {
	return q.zipCode
}

func (q *GetNearbyDeliveriesQuery) setDeliverymanID(deliverymanID kernel.UUID) error {
	if err := deliverymanID.Validate(); err != nil {
		return err
	}

	q.deliverymanID = deliverymanID
	return nil
}

func (q *GetNearbyDeliveriesQuery) setZipCode(zipCode string) error {
	if zipCode == "" {
		return ErrZipCodeIsMissing
	}

	q.zipCode = zipCode
	return nil
}

// GetNearbyDeliveriesQueryResponse is one entry of the nearby ranking.
// DistanceKm carries the numeric kilometers rounded to two decimals;
// DistanceLabel is its presentation form, e.g. "2.69 km".
type GetNearbyDeliveriesQueryResponse struct {
	OrderID       kernel.UUID
	TrackingCode  string
	Status        string
	RecipientName string
	FullAddress   string
	DistanceKm    float64
	DistanceLabel string
}
