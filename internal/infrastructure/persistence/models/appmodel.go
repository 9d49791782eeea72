package models

import (
	"time"

	"keyforge/internal/shared/constants"
)

// AppModel persists tenant applications. Messages holds the sparse
// JSON map of client-facing message overrides.
type AppModel struct {
	ID                    uint   `gorm:"primarykey"`
	OwnerID               uint   `gorm:"not null;index"`
	Name                  string `gorm:"not null;size:100"`
	AppID                 string `gorm:"uniqueIndex;not null;size:32"`
	AppSecret             string `gorm:"not null;size:64"`
	Paused                bool   `gorm:"not null;default:false"`
	HwidLock              bool   `gorm:"not null;default:false"`
	AllowCustomLicenseKey bool   `gorm:"not null;default:false"`
	Messages              []byte `gorm:"type:json"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (AppModel) TableName() string {
	return constants.TableApps
}
