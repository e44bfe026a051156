// Package accountrepo implements account persistence with GORM.
// Accounts are flat records; no nested structures or aggregates are involved.
package accountrepo

import (
	"parcelflow/internal/core/domain/model/account"
	"parcelflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting accounts.
type AccountDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
	Role int `gorm:"index"`
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(acc *account.Account) AccountDTO {
	return AccountDTO{
		ID:   acc.ID().Bytes(),
		Name: acc.Name(),
		Role: int(acc.Role()),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, dto.Name, account.Role(dto.Role))
}
