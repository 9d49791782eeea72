// Package migration runs schema migrations via gorm AutoMigrate.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"keyforge/internal/infrastructure/persistence/models"
	"keyforge/internal/shared/logger"
)

// AutoMigrateModels lists every persisted model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.AppModel{},
		&models.LicenseModel{},
		&models.ResellerModel{},
		&models.ClientModel{},
		&models.PaymentModel{},
		&models.RefundModel{},
	}
}

// Run migrates the full model set.
func Run(db *gorm.DB, log logger.Interface) error {
	mdls := AutoMigrateModels()
	log.Infow("starting database migration", "models_count", len(mdls))

	if err := db.AutoMigrate(mdls...); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("auto migrate: %w", err)
	}

	log.Infow("database migration completed")
	return nil
}
