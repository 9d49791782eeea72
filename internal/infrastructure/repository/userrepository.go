// Package repository contains the gorm implementations of the domain
// repository interfaces. Every method resolves its connection through
// db.GetTxFromContext so calls inside a transaction join it.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"keyforge/internal/domain/user"
	"keyforge/internal/infrastructure/persistence/models"
	"keyforge/internal/shared/db"
	"keyforge/internal/shared/logger"
)

// UserRepository implements user.Repository on gorm.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a gorm-backed user repository.
func NewUserRepository(database *gorm.DB, log logger.Interface) user.Repository {
	return &UserRepository{db: database, logger: log}
}

func (r *UserRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *UserRepository) toModel(entity *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           entity.ID(),
		Email:        entity.Email(),
		Username:     entity.Username(),
		PasswordHash: entity.PasswordHash(),
		Plan:         string(entity.Plan()),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (r *UserRepository) toEntity(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.Username,
		model.PasswordHash,
		user.Plan(model.Plan),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// Create inserts a new owner account and sets the generated ID back on
// the entity.
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := r.toModel(entity)

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "email", model.Email, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "email", model.Email)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.toEntity(&model)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.conn(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.toEntity(&model)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel
	if err := r.conn(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.toEntity(&model)
}

// UpdatePlan persists a plan change (upgrade or downgrade).
func (r *UserRepository) UpdatePlan(ctx context.Context, entity *user.User) error {
	result := r.conn(ctx).Model(&models.UserModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"plan":       string(entity.Plan()),
			"updated_at": entity.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user plan", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update user plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", entity.ID())
	}

	r.logger.Infow("user plan updated", "id", entity.ID(), "plan", entity.Plan())
	return nil
}
