// Package order provides domain entities and business logic for parcel order
// management. It implements the Order aggregate root with lifecycle management
// and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, assignment, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, tracking code, and recipient
//   - Order status follows the workflow: Pending -> AwaitingPickup -> PickedUp -> Delivered | Returned
//   - Returned orders may re-enter AwaitingPickup or PickedUp for another attempt
//   - Delivered is terminal; per-status timestamps are set at most once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
