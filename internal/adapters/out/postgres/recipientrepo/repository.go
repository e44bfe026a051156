package recipientrepo

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/recipient"
	"parcelflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecipientRepository implements RecipientRepository using GORM.
type GormRecipientRepository struct {
	db *gorm.DB
}

// NewGormRecipientRepository creates a new GORM recipient repository.
func NewGormRecipientRepository(db *gorm.DB) *GormRecipientRepository {
	return &GormRecipientRepository{db: db}
}

// Add saves a new recipient to the database.
func (r *GormRecipientRepository) Add(ctx context.Context, rec *recipient.Recipient) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rec)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing recipient to the database.
// Uses Save rather than Updates so freshly geocoded coordinates overwrite
// the NULL columns.
func (r *GormRecipientRepository) Update(ctx context.Context, rec *recipient.Recipient) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rec)
	return r.db.WithContext(ctx).Save(&dto).Error
}

// Get retrieves a recipient by ID.
func (r *GormRecipientRepository) Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecipientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("recipient", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByIDs retrieves the recipients for the given identifiers.
// Missing identifiers are silently absent from the result.
func (r *GormRecipientRepository) GetAllByIDs(
	ctx context.Context,
	ids []kernel.UUID,
) ([]*recipient.Recipient, error) {
	if len(ids) == 0 {
		return []*recipient.Recipient{}, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []RecipientDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", rawIDs).Error; err != nil {
		return nil, err
	}

	recipients := make([]*recipient.Recipient, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}

	return recipients, nil
}

// GetAllWithoutLocation retrieves recipients whose address has not been
// geocoded yet, capped at limit. Used by the geocode backfill job.
func (r *GormRecipientRepository) GetAllWithoutLocation(
	ctx context.Context,
	limit int,
) ([]*recipient.Recipient, error) {
	var dtos []RecipientDTO
	err := r.db.WithContext(ctx).
		Limit(limit).
		Find(&dtos, "latitude IS NULL OR longitude IS NULL").Error
	if err != nil {
		return nil, err
	}

	recipients := make([]*recipient.Recipient, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}

	return recipients, nil
}
