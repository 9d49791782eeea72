package models

import (
	"time"

	"keyforge/internal/shared/constants"
)

// LicenseModel persists licenses. The unique index on Key is the source
// of truth for global key uniqueness; the generation retry loop treats a
// duplicate insert as a retry trigger. Used/UsedBy together encode the
// domain's Consumption variant and are only written via the guarded
// consume update.
type LicenseModel struct {
	ID          uint   `gorm:"primarykey"`
	AppID       uint   `gorm:"not null;index"`
	Key         string `gorm:"uniqueIndex;not null;size:32"`
	CreatedBy   uint   `gorm:"not null"`
	CreatorType string `gorm:"not null;size:20"`
	ResellerID  *uint  `gorm:"index"`
	Status      string `gorm:"not null;default:active;size:20;index"`
	Used        bool   `gorm:"not null;default:false"`
	UsedBy      *uint
	ExpiresAt   time.Time `gorm:"not null"`
	Note        string    `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LicenseModel) TableName() string {
	return constants.TableLicenses
}
