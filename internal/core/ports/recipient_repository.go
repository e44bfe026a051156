package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/recipient"
)

// RecipientRepository defines the persistence contract for recipients.
type RecipientRepository interface {
	// Add persists a new recipient to storage.
	Add(ctx context.Context, rec *recipient.Recipient) error

	// Update persists changes to an existing recipient.
	Update(ctx context.Context, rec *recipient.Recipient) error

	// Get retrieves a recipient by its unique identifier.
	// Returns errs.ObjectNotFoundError when the recipient does not exist.
	Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error)

	// GetAllByIDs retrieves the recipients for the given identifiers.
	// Missing identifiers are silently absent from the result.
	GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*recipient.Recipient, error)

	// GetAllWithoutLocation retrieves recipients whose address has not been
	// geocoded yet. Used by the geocode backfill job.
	GetAllWithoutLocation(ctx context.Context, limit int) ([]*recipient.Recipient, error)
}
