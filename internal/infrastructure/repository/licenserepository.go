package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"keyforge/internal/domain/license"
	"keyforge/internal/infrastructure/persistence/models"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/db"
	"keyforge/internal/shared/logger"
)

// LicenseRepository implements license.Repository on gorm.
type LicenseRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewLicenseRepository creates a gorm-backed license repository.
func NewLicenseRepository(database *gorm.DB, log logger.Interface) license.Repository {
	return &LicenseRepository{db: database, logger: log}
}

func (r *LicenseRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *LicenseRepository) toModel(entity *license.License) *models.LicenseModel {
	model := &models.LicenseModel{
		ID:          entity.ID(),
		AppID:       entity.AppID(),
		Key:         entity.Key(),
		CreatedBy:   entity.CreatedBy(),
		CreatorType: string(entity.CreatorType()),
		ResellerID:  entity.ResellerID(),
		Status:      string(entity.Status()),
		ExpiresAt:   entity.ExpiresAt(),
		Note:        entity.Note(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
	if clientID, ok := entity.Consumption().ClientID(); ok {
		model.Used = true
		model.UsedBy = &clientID
	}
	return model
}

func (r *LicenseRepository) toEntity(model *models.LicenseModel) (*license.License, error) {
	consumption := license.Unconsumed()
	if model.Used {
		if model.UsedBy == nil {
			return nil, fmt.Errorf("license %d marked used without a consumer", model.ID)
		}
		consumption = license.ConsumedBy(*model.UsedBy)
	}

	return license.ReconstructLicense(
		model.ID,
		model.AppID,
		model.Key,
		model.CreatedBy,
		license.CreatorType(model.CreatorType),
		model.ResellerID,
		license.Status(model.Status),
		consumption,
		model.ExpiresAt,
		model.Note,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// Create inserts a new license and sets the generated ID back on the
// entity. A duplicate key surfaces as the driver's unique constraint
// error for the caller's retry loop.
func (r *LicenseRepository) Create(ctx context.Context, entity *license.License) error {
	model := r.toModel(entity)

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create license", "app_id", model.AppID, "error", err)
		return fmt.Errorf("failed to create license: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set license ID: %w", err)
	}

	r.logger.Infow("license created", "id", model.ID, "app_id", model.AppID, "creator_type", model.CreatorType)
	return nil
}

func (r *LicenseRepository) GetByID(ctx context.Context, id uint) (*license.License, error) {
	var model models.LicenseModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	return r.toEntity(&model)
}

func (r *LicenseRepository) GetByKey(ctx context.Context, key string) (*license.License, error) {
	var model models.LicenseModel
	if err := r.conn(ctx).Where("`key` = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license by key", "error", err)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	return r.toEntity(&model)
}

func (r *LicenseRepository) applyFilter(query *gorm.DB, filter license.Filter) *gorm.DB {
	if filter.AppID != nil {
		query = query.Where("app_id = ?", *filter.AppID)
	}
	if filter.ResellerID != nil {
		query = query.Where("reseller_id = ?", *filter.ResellerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Consumed != nil {
		query = query.Where("used = ?", *filter.Consumed)
	}
	if filter.CreatorType != nil {
		query = query.Where("creator_type = ?", string(*filter.CreatorType))
	}
	return query
}

// List returns the filtered page plus the unpaged total.
func (r *LicenseRepository) List(ctx context.Context, filter license.Filter) ([]*license.License, int64, error) {
	query := r.applyFilter(r.conn(ctx).Model(&models.LicenseModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count licenses", "error", err)
		return nil, 0, fmt.Errorf("failed to count licenses: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	var licenseModels []*models.LicenseModel
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&licenseModels).Error
	if err != nil {
		r.logger.Errorw("failed to list licenses", "error", err)
		return nil, 0, fmt.Errorf("failed to list licenses: %w", err)
	}

	licenses := make([]*license.License, 0, len(licenseModels))
	for _, model := range licenseModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map license model, skipping", "id", model.ID, "error", err)
			continue
		}
		licenses = append(licenses, entity)
	}
	return licenses, total, nil
}

func (r *LicenseRepository) CountByApp(ctx context.Context, appID uint) (int, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.LicenseModel{}).Where("app_id = ?", appID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count licenses", "app_id", appID, "error", err)
		return 0, fmt.Errorf("failed to count licenses: %w", err)
	}
	return int(count), nil
}

func (r *LicenseRepository) CountActiveByReseller(ctx context.Context, resellerID uint) (int, error) {
	var count int64
	err := r.conn(ctx).Model(&models.LicenseModel{}).
		Where("reseller_id = ? AND status = ?", resellerID, string(license.StatusActive)).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count reseller licenses", "reseller_id", resellerID, "error", err)
		return 0, fmt.Errorf("failed to count reseller licenses: %w", err)
	}
	return int(count), nil
}

func (r *LicenseRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.LicenseModel{}).Where("`key` = ?", key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return count > 0, nil
}

// Update persists the license's mutable state. The key, app and creator
// columns never change after creation.
func (r *LicenseRepository) Update(ctx context.Context, entity *license.License) error {
	model := r.toModel(entity)

	result := r.conn(ctx).Model(&models.LicenseModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"used":       model.Used,
			"used_by":    model.UsedBy,
			"expires_at": model.ExpiresAt,
			"note":       model.Note,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update license", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update license: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("license %d not found", entity.ID())
	}
	return nil
}

// MarkConsumed binds clientID to the license only if it is still
// unconsumed. The WHERE guard makes concurrent redemptions of the same
// key race safely: exactly one caller sees true.
func (r *LicenseRepository) MarkConsumed(ctx context.Context, licenseID, clientID uint) (bool, error) {
	result := r.conn(ctx).Model(&models.LicenseModel{}).
		Where("id = ? AND used = ?", licenseID, false).
		Updates(map[string]interface{}{
			"used":       true,
			"used_by":    clientID,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark license consumed", "id", licenseID, "error", result.Error)
		return false, fmt.Errorf("failed to mark license consumed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Release clears the consumption state so the key can be redeemed again.
func (r *LicenseRepository) Release(ctx context.Context, licenseID uint) error {
	err := r.conn(ctx).Model(&models.LicenseModel{}).
		Where("id = ?", licenseID).
		Updates(map[string]interface{}{
			"used":       false,
			"used_by":    nil,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to release license", "id", licenseID, "error", err)
		return fmt.Errorf("failed to release license: %w", err)
	}
	return nil
}

func (r *LicenseRepository) Delete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&models.LicenseModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete license", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete license: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("license %d not found", id)
	}
	return nil
}

// DeleteBatch removes the given licenses and reports how many rows were
// actually deleted.
func (r *LicenseRepository) DeleteBatch(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.conn(ctx).Where("id IN ?", ids).Delete(&models.LicenseModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to batch delete licenses", "count", len(ids), "error", result.Error)
		return 0, fmt.Errorf("failed to batch delete licenses: %w", result.Error)
	}

	r.logger.Infow("licenses batch deleted", "requested", len(ids), "deleted", result.RowsAffected)
	return result.RowsAffected, nil
}

func (r *LicenseRepository) statsFor(query *gorm.DB) (*license.Stats, error) {
	type row struct {
		Total   int64
		Used    int64
		Active  int64
		Banned  int64
		Revoked int64
		Expired int64
	}

	// Expired is derived: stored status stays active past expiry, so the
	// active/expired split is computed against now.
	now := time.Now().UTC()
	var out row
	err := query.Select(
		"COUNT(*) AS total, "+
			"SUM(CASE WHEN used = ? THEN 1 ELSE 0 END) AS used, "+
			"SUM(CASE WHEN status = ? AND expires_at >= ? THEN 1 ELSE 0 END) AS active, "+
			"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS banned, "+
			"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS revoked, "+
			"SUM(CASE WHEN status = ? AND expires_at < ? THEN 1 ELSE 0 END) AS expired",
		true,
		string(license.StatusActive), now,
		string(license.StatusBanned),
		string(license.StatusRevoked),
		string(license.StatusActive), now,
	).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate license stats: %w", err)
	}

	return &license.Stats{
		Total:   out.Total,
		Used:    out.Used,
		Active:  out.Active,
		Banned:  out.Banned,
		Revoked: out.Revoked,
		Expired: out.Expired,
	}, nil
}

func (r *LicenseRepository) StatsByApp(ctx context.Context, appID uint) (*license.Stats, error) {
	stats, err := r.statsFor(r.conn(ctx).Model(&models.LicenseModel{}).Where("app_id = ?", appID))
	if err != nil {
		r.logger.Errorw("failed to get license stats", "app_id", appID, "error", err)
		return nil, err
	}
	return stats, nil
}

func (r *LicenseRepository) StatsByReseller(ctx context.Context, resellerID uint) (*license.Stats, error) {
	stats, err := r.statsFor(r.conn(ctx).Model(&models.LicenseModel{}).Where("reseller_id = ?", resellerID))
	if err != nil {
		r.logger.Errorw("failed to get license stats", "reseller_id", resellerID, "error", err)
		return nil, err
	}
	return stats, nil
}
