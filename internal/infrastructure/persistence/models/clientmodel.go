package models

import (
	"time"

	"keyforge/internal/shared/constants"
)

// ClientModel persists end-user accounts. Username is unique per app.
type ClientModel struct {
	ID           uint      `gorm:"primarykey"`
	AppID        uint      `gorm:"not null;uniqueIndex:idx_client_app_username"`
	Username     string    `gorm:"not null;size:100;uniqueIndex:idx_client_app_username"`
	PasswordHash string    `gorm:"not null;size:255"`
	HWID         string    `gorm:"size:255"`
	LicenseID    *uint     `gorm:"index"`
	Banned       bool      `gorm:"not null;default:false"`
	ExpiresAt    time.Time `gorm:"not null"`
	LastLogin    *time.Time
	LoginCount   int `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ClientModel) TableName() string {
	return constants.TableClients
}
