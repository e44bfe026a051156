// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcelflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// RecipientRepoFactory provides access to the recipient repository within a transaction.
	RecipientRepoFactory interface {
		RecipientRepository() ports.RecipientRepository
	}

	// OrderAccountUoW manages transactions for operations touching orders and
	// the acting account. Used by the transition and delivery-completion commands.
	OrderAccountUoW interface {
		TxManager
		OrderRepoFactory
		AccountRepoFactory
	}

	// OrderAccountUoWFactory creates new OrderAccountUoW instances.
	OrderAccountUoWFactory interface {
		Create() OrderAccountUoW
	}

	// RecipientUoW manages transactions for operations touching recipients only.
	// Used by the geocode backfill command.
	RecipientUoW interface {
		TxManager
		RecipientRepoFactory
	}

	// RecipientUoWFactory creates new RecipientUoW instances.
	RecipientUoWFactory interface {
		Create() RecipientUoW
	}

	// UoW manages transactions across order, account and recipient aggregates.
	// Used by commands that coordinate changes between multiple aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   recipientRepo := uow.RecipientRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AccountRepoFactory
		RecipientRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
