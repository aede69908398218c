package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'users' table. The id is the identity id, never generated here.
type ProfileModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                 string    `gorm:"type:varchar(255)"`
	Username              string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	DisplayName           *string   `gorm:"type:varchar(100)"`
	AvatarURL             *string   `gorm:"type:text"`
	Bio                   *string   `gorm:"type:text"`
	Points                int       `gorm:"not null"`
	Rank                  string    `gorm:"type:varchar(50);not null"`
	IsPremium             bool      `gorm:"not null"`
	PremiumUntil          *time.Time
	TotalUploads          int     `gorm:"not null"`
	TotalDownloads        int     `gorm:"not null"`
	EmailNotifications    bool    `gorm:"not null"`
	DownloadNotifications bool    `gorm:"not null"`
	ForumNotifications    bool    `gorm:"not null"`
	IsActive              bool    `gorm:"not null"`
	IsBanned              bool    `gorm:"not null"`
	BanReason             *string `gorm:"type:text"`
	BannedUntil           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "users"
}
