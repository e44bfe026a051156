// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the parcel delivery system.
// It implements business workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - TransitionAuthority: authorization and validation for order status transitions
//   - NearbyMatcher: distance ranking of a delivery agent's open orders
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
