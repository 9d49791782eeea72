package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"keyforge/internal/domain/client"
	"keyforge/internal/infrastructure/persistence/models"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/db"
	"keyforge/internal/shared/logger"
)

// ClientRepository implements client.Repository on gorm.
type ClientRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewClientRepository creates a gorm-backed client repository.
func NewClientRepository(database *gorm.DB, log logger.Interface) client.Repository {
	return &ClientRepository{db: database, logger: log}
}

func (r *ClientRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *ClientRepository) toModel(entity *client.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:           entity.ID(),
		AppID:        entity.AppID(),
		Username:     entity.Username(),
		PasswordHash: entity.PasswordHash(),
		HWID:         entity.HWID(),
		LicenseID:    entity.LicenseID(),
		Banned:       entity.Banned(),
		ExpiresAt:    entity.ExpiresAt(),
		LastLogin:    entity.LastLogin(),
		LoginCount:   entity.LoginCount(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (r *ClientRepository) toEntity(model *models.ClientModel) (*client.Client, error) {
	return client.ReconstructClient(
		model.ID,
		model.AppID,
		model.Username,
		model.PasswordHash,
		model.HWID,
		model.LicenseID,
		model.Banned,
		model.ExpiresAt,
		model.LastLogin,
		model.LoginCount,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// Create inserts a new client account and sets the generated ID back on
// the entity.
func (r *ClientRepository) Create(ctx context.Context, entity *client.Client) error {
	model := r.toModel(entity)

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create client", "app_id", model.AppID, "username", model.Username, "error", err)
		return fmt.Errorf("failed to create client: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set client ID: %w", err)
	}

	r.logger.Infow("client created", "id", model.ID, "app_id", model.AppID, "username", model.Username)
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	var model models.ClientModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get client by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return r.toEntity(&model)
}

func (r *ClientRepository) GetByUsername(ctx context.Context, appID uint, username string) (*client.Client, error) {
	var model models.ClientModel
	if err := r.conn(ctx).Where("app_id = ? AND username = ?", appID, username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get client by username", "app_id", appID, "username", username, "error", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return r.toEntity(&model)
}

// List returns the filtered page plus the unpaged total.
func (r *ClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	query := r.conn(ctx).Model(&models.ClientModel{}).Where("app_id = ?", filter.AppID)
	if filter.Banned != nil {
		query = query.Where("banned = ?", *filter.Banned)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count clients", "app_id", filter.AppID, "error", err)
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	var clientModels []*models.ClientModel
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clientModels).Error
	if err != nil {
		r.logger.Errorw("failed to list clients", "app_id", filter.AppID, "error", err)
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*client.Client, 0, len(clientModels))
	for _, model := range clientModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map client model, skipping", "id", model.ID, "error", err)
			continue
		}
		clients = append(clients, entity)
	}
	return clients, total, nil
}

func (r *ClientRepository) ExistsByUsername(ctx context.Context, appID uint, username string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.ClientModel{}).
		Where("app_id = ? AND username = ?", appID, username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check client username existence: %w", err)
	}
	return count > 0, nil
}

// Update persists the client's mutable state (HWID, ban flag, expiry,
// login bookkeeping).
func (r *ClientRepository) Update(ctx context.Context, entity *client.Client) error {
	model := r.toModel(entity)

	result := r.conn(ctx).Model(&models.ClientModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"hwid":        model.HWID,
			"banned":      model.Banned,
			"expires_at":  model.ExpiresAt,
			"last_login":  model.LastLogin,
			"login_count": model.LoginCount,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update client", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("client %d not found", entity.ID())
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	result := r.conn(ctx).Delete(&models.ClientModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete client", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("client %d not found", id)
	}

	r.logger.Infow("client deleted", "id", id)
	return nil
}

func (r *ClientRepository) StatsByApp(ctx context.Context, appID uint) (*client.Stats, error) {
	type row struct {
		Total  int64
		Active int64
		Banned int64
	}

	var out row
	err := r.conn(ctx).Model(&models.ClientModel{}).
		Where("app_id = ?", appID).
		Select(
			"COUNT(*) AS total, "+
				"SUM(CASE WHEN banned = ? AND expires_at >= ? THEN 1 ELSE 0 END) AS active, "+
				"SUM(CASE WHEN banned = ? THEN 1 ELSE 0 END) AS banned",
			false, time.Now().UTC(),
			true,
		).Scan(&out).Error
	if err != nil {
		r.logger.Errorw("failed to get client stats", "app_id", appID, "error", err)
		return nil, fmt.Errorf("failed to aggregate client stats: %w", err)
	}

	return &client.Stats{Total: out.Total, Active: out.Active, Banned: out.Banned}, nil
}
