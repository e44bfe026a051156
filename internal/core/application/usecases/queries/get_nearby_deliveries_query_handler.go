package queries

import (
	"context"
	"fmt"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/recipient"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// GetNearbyDeliveriesQueryHandler executes the nearby-delivery matching routine.
//
// The pipeline is fixed:
//  1. load the agent's orders; none at all -> ErrNoDeliveriesFound
//  2. resolve the reference postal code to an origin coordinate, falling back
//     to forward geocoding of the resolved street address; both failing ->
//     ErrOriginIsUnresolvable (provider errors folded in, never leaked)
//  3. delegate filtering and ranking to the NearbyMatcher
//
// Repositories here are read-only and not transaction-bound; the composition
// root wires them against the base database handle.
type GetNearbyDeliveriesQueryHandler struct {
	orders     ports.OrderRepository
	recipients ports.RecipientRepository
	resolver   ports.AddressResolver
	matcher    services.NearbyMatcher
}

// NewGetNearbyDeliveriesQueryHandler creates a handler for nearby-delivery queries.
func NewGetNearbyDeliveriesQueryHandler(
	orders ports.OrderRepository,
	recipients ports.RecipientRepository,
	resolver ports.AddressResolver,
	matcher services.NearbyMatcher,
) GetNearbyDeliveriesQueryHandler {
	return GetNearbyDeliveriesQueryHandler{
		orders:     orders,
		recipients: recipients,
		resolver:   resolver,
		matcher:    matcher,
	}
}

// Handle executes the query and returns the ascending distance ranking.
//
// Error semantics:
//   - ErrNoDeliveriesFound when the agent has no orders assigned
//   - ErrOriginIsUnresolvable when the postal code yields no coordinates
//   - services.ErrNoNearbyDeliveries when orders exist but none are rankable
func (h GetNearbyDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyDeliveriesQuery,
) ([]GetNearbyDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agentOrders, err := h.orders.GetAllByDeliveryman(ctx, query.DeliverymanID())
	if err != nil {
		return nil, err
	}
	if len(agentOrders) == 0 {
		return nil, ErrNoDeliveriesFound
	}

	origin, err := h.resolveOrigin(ctx, query.ZipCode())
	if err != nil {
		return nil, err
	}

	recipientIDs := make([]kernel.UUID, 0, len(agentOrders))
	for _, agentOrder := range agentOrders {
		recipientIDs = append(recipientIDs, agentOrder.RecipientID())
	}

	orderRecipients, err := h.recipients.GetAllByIDs(ctx, recipientIDs)
	if err != nil {
		return nil, err
	}

	recipientsByID := make(map[string]*recipient.Recipient, len(orderRecipients))
	for _, rec := range orderRecipients {
		recipientsByID[rec.ID().String()] = rec
	}

	candidates := make([]services.Candidate, 0, len(agentOrders))
	for _, agentOrder := range agentOrders {
		candidates = append(candidates, services.Candidate{
			Order:     agentOrder,
			Recipient: recipientsByID[agentOrder.RecipientID().String()],
		})
	}

	ranked, err := h.matcher.Rank(origin, candidates)
	if err != nil {
		return nil, err
	}

	responses := make([]GetNearbyDeliveriesQueryResponse, 0, len(ranked))
	for _, delivery := range ranked {
		response := GetNearbyDeliveriesQueryResponse{
			OrderID:       delivery.Order.ID(),
			TrackingCode:  delivery.Order.TrackingCode(),
			Status:        delivery.Order.Status().String(),
			DistanceKm:    delivery.DistanceKm,
			DistanceLabel: delivery.DistanceLabel,
		}
		if rec := recipientsByID[delivery.Order.RecipientID().String()]; rec != nil {
			response.RecipientName = rec.Name()
			response.FullAddress = rec.FullAddress()
		}
		responses = append(responses, response)
	}

	return responses, nil
}

// resolveOrigin turns the reference postal code into a coordinate.
// Prefers coordinates embedded in the postal-code response; falls back to
// forward geocoding of the resolved street address.
func (h GetNearbyDeliveriesQueryHandler) resolveOrigin(
	ctx context.Context,
	zipCode string,
) (kernel.GeoPoint, error) {
	resolved, err := h.resolver.ResolvePostalCode(ctx, zipCode)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %v", ErrOriginIsUnresolvable, err)
	}
	if resolved == nil {
		return kernel.GeoPoint{}, ErrOriginIsUnresolvable
	}

	if resolved.Location != nil {
		return *resolved.Location, nil
	}

	point, err := h.resolver.GeocodeAddress(ctx, formatResolvedAddress(resolved, zipCode))
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %v", ErrOriginIsUnresolvable, err)
	}
	if point == nil {
		return kernel.GeoPoint{}, ErrOriginIsUnresolvable
	}

	return *point, nil
}

// formatResolvedAddress builds the single-line address used for forward geocoding.
func formatResolvedAddress(resolved *ports.ResolvedAddress, zipCode string) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{resolved.Street, resolved.Neighborhood, resolved.City, resolved.Region} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	parts = append(parts, zipCode)
	return strings.Join(parts, ", ")
}
