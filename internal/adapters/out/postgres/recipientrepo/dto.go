// Package recipientrepo implements recipient persistence with GORM.
// Coordinates are stored as nullable columns: a recipient without a geocoded
// location is a valid record, not a constraint violation.
package recipientrepo

import (
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/recipient"

	"github.com/google/uuid"
)

// RecipientDTO represents the database structure for persisting recipients.
type RecipientDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Street       string
	Neighborhood string
	City         string
	State        string
	ZipCode      string `gorm:"index"`
	Latitude     *float64
	Longitude    *float64
}

// TableName specifies the database table name for recipient entities.
func (RecipientDTO) TableName() string {
	return "recipients"
}

func fromDomain(rec *recipient.Recipient) RecipientDTO {
	dto := RecipientDTO{
		ID:           rec.ID().Bytes(),
		Name:         rec.Name(),
		Street:       rec.Street(),
		Neighborhood: rec.Neighborhood(),
		City:         rec.City(),
		State:        rec.State(),
		ZipCode:      rec.ZipCode(),
	}

	if location := rec.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

func toDomain(dto RecipientDTO) (*recipient.Recipient, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return recipient.RestoreRecipient(
		id,
		dto.Name,
		dto.Street,
		dto.Neighborhood,
		dto.City,
		dto.State,
		dto.ZipCode,
		location,
	)
}
