// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are generated by the application (uuid v7).
type AccountModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex:accounts_email_key;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Subscription      string    `gorm:"type:varchar(16);not null"`
	AvatarURL         string    `gorm:"type:varchar(512);not null"`
	VerificationToken string    `gorm:"type:varchar(64);index:accounts_verification_token_idx;not null"`
	Verified          bool      `gorm:"not null"`
	SessionToken      string    `gorm:"type:text;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
