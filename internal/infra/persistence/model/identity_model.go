package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IdentityModel mirrors the 'identities' table. Metadata holds the provider supplied bag as jsonb.
type IdentityModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Email        *string           `gorm:"type:varchar(255);uniqueIndex"`
	Provider     string            `gorm:"type:varchar(50);not null"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time
	LastSignInAt *time.Time

	Authentications []AuthenticationModel `gorm:"foreignKey:IdentityID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:IdentityID"`
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}
