package models

import (
	"time"

	"keyforge/internal/shared/constants"
)

// ResellerModel persists delegates. Username is unique per app.
// AllowDelete has no column: the delete action is owner-only and forced
// false in the domain, so persisting it would only invite drift.
type ResellerModel struct {
	ID              uint   `gorm:"primarykey"`
	AppID           uint   `gorm:"not null;uniqueIndex:idx_reseller_app_username"`
	Username        string `gorm:"not null;size:100;uniqueIndex:idx_reseller_app_username"`
	PasswordHash    string `gorm:"not null;size:255"`
	LicenseLimit    int    `gorm:"not null;default:0"`
	UsedLicenses    int    `gorm:"not null;default:0"`
	Active          bool   `gorm:"not null;default:true"`
	AllowCreate     bool   `gorm:"not null;default:false"`
	AllowBanUnban   bool   `gorm:"not null;default:false"`
	AllowEditExpiry bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ResellerModel) TableName() string {
	return constants.TableResellers
}
