// Package models contains the gorm persistence models. They are the
// anti-corruption layer between the domain aggregates and the database;
// repositories map in both directions and nothing above them sees gorm.
package models

import (
	"time"

	"keyforge/internal/shared/constants"
)

// UserModel persists app owners. Plan limits are intentionally absent:
// they are derived from Plan at read time.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Username     string `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Plan         string `gorm:"not null;default:free;size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
