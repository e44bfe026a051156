package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/account"
	"parcelflow/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for accounts
// (administrators and delivery agents).
type AccountRepository interface {
	// Add persists a new account to storage.
	Add(ctx context.Context, acc *account.Account) error

	// Get retrieves an account by its unique identifier.
	// Returns errs.ObjectNotFoundError when the account does not exist.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)
}
