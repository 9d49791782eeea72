package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"keyforge/internal/domain/app"
	"keyforge/internal/infrastructure/persistence/models"
	"keyforge/internal/shared/db"
	"keyforge/internal/shared/logger"
)

// AppRepository implements app.Repository on gorm.
type AppRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAppRepository creates a gorm-backed app repository.
func NewAppRepository(database *gorm.DB, log logger.Interface) app.Repository {
	return &AppRepository{db: database, logger: log}
}

func (r *AppRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *AppRepository) toModel(entity *app.App) (*models.AppModel, error) {
	var messages []byte
	if overrides := entity.Overrides(); len(overrides) > 0 {
		var err error
		messages, err = json.Marshal(overrides)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message overrides: %w", err)
		}
	}

	settings := entity.Settings()
	return &models.AppModel{
		ID:                    entity.ID(),
		OwnerID:               entity.OwnerID(),
		Name:                  entity.Name(),
		AppID:                 entity.AppID(),
		AppSecret:             entity.AppSecret(),
		Paused:                entity.Paused(),
		HwidLock:              settings.HwidLock,
		AllowCustomLicenseKey: settings.AllowCustomLicenseKey,
		Messages:              messages,
		CreatedAt:             entity.CreatedAt(),
		UpdatedAt:             entity.UpdatedAt(),
	}, nil
}

func (r *AppRepository) toEntity(model *models.AppModel) (*app.App, error) {
	var overrides map[app.MessageKey]string
	if len(model.Messages) > 0 {
		if err := json.Unmarshal(model.Messages, &overrides); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message overrides: %w", err)
		}
	}

	return app.ReconstructApp(
		model.ID,
		model.OwnerID,
		model.Name,
		model.AppID,
		model.AppSecret,
		model.Paused,
		app.Settings{
			HwidLock:              model.HwidLock,
			AllowCustomLicenseKey: model.AllowCustomLicenseKey,
		},
		overrides,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// Create inserts a new app and sets the generated ID back on the entity.
func (r *AppRepository) Create(ctx context.Context, entity *app.App) error {
	model, err := r.toModel(entity)
	if err != nil {
		return err
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create app", "app_id", model.AppID, "error", err)
		return fmt.Errorf("failed to create app: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set app ID: %w", err)
	}

	r.logger.Infow("app created", "id", model.ID, "app_id", model.AppID, "owner_id", model.OwnerID)
	return nil
}

func (r *AppRepository) GetByID(ctx context.Context, id uint) (*app.App, error) {
	var model models.AppModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get app by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	return r.toEntity(&model)
}

func (r *AppRepository) GetByAppID(ctx context.Context, appID string) (*app.App, error) {
	var model models.AppModel
	if err := r.conn(ctx).Where("app_id = ?", appID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get app by app_id", "app_id", appID, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	return r.toEntity(&model)
}

// GetByCredentials authenticates the client SDK: both the public appId
// and the secret must match.
func (r *AppRepository) GetByCredentials(ctx context.Context, appID, appSecret string) (*app.App, error) {
	var model models.AppModel
	if err := r.conn(ctx).Where("app_id = ? AND app_secret = ?", appID, appSecret).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get app by credentials", "app_id", appID, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	return r.toEntity(&model)
}

func (r *AppRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*app.App, error) {
	var appModels []*models.AppModel
	if err := r.conn(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&appModels).Error; err != nil {
		r.logger.Errorw("failed to list apps", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}

	apps := make([]*app.App, 0, len(appModels))
	for _, model := range appModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map app model, skipping", "id", model.ID, "error", err)
			continue
		}
		apps = append(apps, entity)
	}
	return apps, nil
}

func (r *AppRepository) CountByOwner(ctx context.Context, ownerID uint) (int, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.AppModel{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count apps", "owner_id", ownerID, "error", err)
		return 0, fmt.Errorf("failed to count apps: %w", err)
	}
	return int(count), nil
}

func (r *AppRepository) ExistsByAppID(ctx context.Context, appID string) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.AppModel{}).Where("app_id = ?", appID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check app_id existence: %w", err)
	}
	return count > 0, nil
}

// Update persists the app's mutable state (name, pause flag, settings,
// message overrides). Credentials never change after creation.
func (r *AppRepository) Update(ctx context.Context, entity *app.App) error {
	model, err := r.toModel(entity)
	if err != nil {
		return err
	}

	result := r.conn(ctx).Model(&models.AppModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"name":                     model.Name,
			"paused":                   model.Paused,
			"hwid_lock":                model.HwidLock,
			"allow_custom_license_key": model.AllowCustomLicenseKey,
			"messages":                 model.Messages,
			"updated_at":               model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update app", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update app: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("app %d not found", entity.ID())
	}
	return nil
}

// Delete removes the app and cascades to its licenses, resellers and
// clients inside one transaction.
func (r *AppRepository) Delete(ctx context.Context, id uint) error {
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("app_id = ?", id).Delete(&models.LicenseModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete app licenses: %w", err)
		}
		if err := tx.Where("app_id = ?", id).Delete(&models.ResellerModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete app resellers: %w", err)
		}
		if err := tx.Where("app_id = ?", id).Delete(&models.ClientModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete app clients: %w", err)
		}

		result := tx.Delete(&models.AppModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete app: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("app %d not found", id)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to delete app", "id", id, "error", err)
		return err
	}

	r.logger.Infow("app deleted with dependents", "id", id)
	return nil
}
