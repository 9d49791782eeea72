package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"keyforge/internal/domain/reseller"
	"keyforge/internal/infrastructure/persistence/models"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/db"
	"keyforge/internal/shared/logger"
)

// ResellerRepository implements reseller.Repository on gorm.
type ResellerRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewResellerRepository creates a gorm-backed reseller repository.
func NewResellerRepository(database *gorm.DB, log logger.Interface) reseller.Repository {
	return &ResellerRepository{db: database, logger: log}
}

func (r *ResellerRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *ResellerRepository) toModel(entity *reseller.Reseller) *models.ResellerModel {
	actions := entity.AllowedActions()
	return &models.ResellerModel{
		ID:              entity.ID(),
		AppID:           entity.AppID(),
		Username:        entity.Username(),
		PasswordHash:    entity.PasswordHash(),
		LicenseLimit:    entity.LicenseLimit(),
		UsedLicenses:    entity.UsedLicenses(),
		Active:          entity.Active(),
		AllowCreate:     actions.Create,
		AllowBanUnban:   actions.BanUnban,
		AllowEditExpiry: actions.EditExpiry,
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}
}

func (r *ResellerRepository) toEntity(model *models.ResellerModel) (*reseller.Reseller, error) {
	return reseller.ReconstructReseller(
		model.ID,
		model.AppID,
		model.Username,
		model.PasswordHash,
		model.LicenseLimit,
		model.UsedLicenses,
		model.Active,
		reseller.AllowedActions{
			Create:     model.AllowCreate,
			BanUnban:   model.AllowBanUnban,
			EditExpiry: model.AllowEditExpiry,
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// Create inserts a new reseller and sets the generated ID back on the
// entity.
func (r *ResellerRepository) Create(ctx context.Context, entity *reseller.Reseller) error {
	model := r.toModel(entity)

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create reseller", "app_id", model.AppID, "username", model.Username, "error", err)
		return fmt.Errorf("failed to create reseller: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set reseller ID: %w", err)
	}

	r.logger.Infow("reseller created", "id", model.ID, "app_id", model.AppID, "username", model.Username)
	return nil
}

func (r *ResellerRepository) GetByID(ctx context.Context, id uint) (*reseller.Reseller, error) {
	var model models.ResellerModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get reseller by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	return r.toEntity(&model)
}

func (r *ResellerRepository) GetByUsername(ctx context.Context, appID uint, username string) (*reseller.Reseller, error) {
	var model models.ResellerModel
	if err := r.conn(ctx).Where("app_id = ? AND username = ?", appID, username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get reseller by username", "app_id", appID, "username", username, "error", err)
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	return r.toEntity(&model)
}

func (r *ResellerRepository) ListByApp(ctx context.Context, appID uint) ([]*reseller.Reseller, error) {
	var resellerModels []*models.ResellerModel
	if err := r.conn(ctx).Where("app_id = ?", appID).Order("id").Find(&resellerModels).Error; err != nil {
		r.logger.Errorw("failed to list resellers", "app_id", appID, "error", err)
		return nil, fmt.Errorf("failed to list resellers: %w", err)
	}

	resellers := make([]*reseller.Reseller, 0, len(resellerModels))
	for _, model := range resellerModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map reseller model, skipping", "id", model.ID, "error", err)
			continue
		}
		resellers = append(resellers, entity)
	}
	return resellers, nil
}

// CountByOwner counts resellers across all of the owner's apps; the
// owner-level reseller quota spans apps.
func (r *ResellerRepository) CountByOwner(ctx context.Context, ownerID uint) (int, error) {
	var count int64
	err := r.conn(ctx).Model(&models.ResellerModel{}).
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.app_id", constants.TableApps, constants.TableApps, constants.TableResellers)).
		Where(fmt.Sprintf("%s.owner_id = ?", constants.TableApps), ownerID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count resellers by owner", "owner_id", ownerID, "error", err)
		return 0, fmt.Errorf("failed to count resellers: %w", err)
	}
	return int(count), nil
}

func (r *ResellerRepository) CountByApp(ctx context.Context, appID uint) (int, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.ResellerModel{}).Where("app_id = ?", appID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count resellers", "app_id", appID, "error", err)
		return 0, fmt.Errorf("failed to count resellers: %w", err)
	}
	return int(count), nil
}

// Update persists the reseller's mutable state (quota, active flag,
// permissions, used counter).
func (r *ResellerRepository) Update(ctx context.Context, entity *reseller.Reseller) error {
	model := r.toModel(entity)

	result := r.conn(ctx).Model(&models.ResellerModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"license_limit":     model.LicenseLimit,
			"used_licenses":     model.UsedLicenses,
			"active":            model.Active,
			"allow_create":      model.AllowCreate,
			"allow_ban_unban":   model.AllowBanUnban,
			"allow_edit_expiry": model.AllowEditExpiry,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update reseller", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update reseller: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reseller %d not found", entity.ID())
	}
	return nil
}

func (r *ResellerRepository) Delete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&models.ResellerModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete reseller", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete reseller: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reseller %d not found", id)
	}

	r.logger.Infow("reseller deleted", "id", id)
	return nil
}
