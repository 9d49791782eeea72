package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

// loadOwnedReseller resolves a reseller and verifies the calling owner
// controls its app.
func loadOwnedReseller(
	ctx context.Context,
	resellerRepo reseller.Repository,
	appRepo app.Repository,
	resellerID, ownerID uint,
) (*reseller.Reseller, error) {
	rs, err := resellerRepo.GetByID(ctx, resellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	if rs == nil {
		return nil, apperrors.NewNotFoundError("reseller not found")
	}

	targetApp, err := appRepo.GetByID(ctx, rs.AppID())
	if err != nil {
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}
	if !targetApp.IsOwnedBy(ownerID) {
		return nil, apperrors.NewForbiddenError("reseller belongs to another owner")
	}
	return rs, nil
}

// GetResellerUseCase loads one reseller for its app's owner.
type GetResellerUseCase struct {
	resellerRepo reseller.Repository
	appRepo      app.Repository
	logger       logger.Interface
}

func NewGetResellerUseCase(resellerRepo reseller.Repository, appRepo app.Repository, logger logger.Interface) *GetResellerUseCase {
	return &GetResellerUseCase{resellerRepo: resellerRepo, appRepo: appRepo, logger: logger}
}

func (uc *GetResellerUseCase) Execute(ctx context.Context, resellerID, ownerID uint) (*reseller.Reseller, error) {
	return loadOwnedReseller(ctx, uc.resellerRepo, uc.appRepo, resellerID, ownerID)
}

type UpdateResellerCommand struct {
	ResellerID uint
	OwnerID    uint
	// nil fields are left unchanged
	Active         *bool
	LicenseLimit   *int
	AllowedActions *reseller.AllowedActions
}

// UpdateResellerUseCase edits a reseller's quota, active flag and
// permissions. The delete permission stays off no matter what is sent.
type UpdateResellerUseCase struct {
	resellerRepo reseller.Repository
	appRepo      app.Repository
	logger       logger.Interface
}

func NewUpdateResellerUseCase(resellerRepo reseller.Repository, appRepo app.Repository, logger logger.Interface) *UpdateResellerUseCase {
	return &UpdateResellerUseCase{resellerRepo: resellerRepo, appRepo: appRepo, logger: logger}
}

func (uc *UpdateResellerUseCase) Execute(ctx context.Context, cmd UpdateResellerCommand) (*reseller.Reseller, error) {
	rs, err := loadOwnedReseller(ctx, uc.resellerRepo, uc.appRepo, cmd.ResellerID, cmd.OwnerID)
	if err != nil {
		return nil, err
	}

	if cmd.Active != nil {
		rs.SetActive(*cmd.Active)
	}
	if cmd.LicenseLimit != nil {
		if err := rs.SetLicenseLimit(*cmd.LicenseLimit); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.AllowedActions != nil {
		rs.SetAllowedActions(*cmd.AllowedActions)
	}

	if err := uc.resellerRepo.Update(ctx, rs); err != nil {
		uc.logger.Errorw("failed to update reseller", "id", cmd.ResellerID, "error", err)
		return nil, fmt.Errorf("failed to update reseller: %w", err)
	}

	uc.logger.Infow("reseller updated", "id", cmd.ResellerID)
	return rs, nil
}

// DeleteResellerUseCase removes a reseller. Deletion is blocked while
// any active license still references it so issued keys keep a
// responsible party.
type DeleteResellerUseCase struct {
	resellerRepo reseller.Repository
	appRepo      app.Repository
	licenseRepo  license.Repository
	logger       logger.Interface
}

func NewDeleteResellerUseCase(
	resellerRepo reseller.Repository,
	appRepo app.Repository,
	licenseRepo license.Repository,
	logger logger.Interface,
) *DeleteResellerUseCase {
	return &DeleteResellerUseCase{
		resellerRepo: resellerRepo,
		appRepo:      appRepo,
		licenseRepo:  licenseRepo,
		logger:       logger,
	}
}

func (uc *DeleteResellerUseCase) Execute(ctx context.Context, resellerID, ownerID uint) error {
	rs, err := loadOwnedReseller(ctx, uc.resellerRepo, uc.appRepo, resellerID, ownerID)
	if err != nil {
		return err
	}

	activeCount, err := uc.licenseRepo.CountActiveByReseller(ctx, rs.ID())
	if err != nil {
		return fmt.Errorf("failed to count reseller licenses: %w", err)
	}
	if activeCount > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("reseller still has %d active licenses", activeCount))
	}

	if err := uc.resellerRepo.Delete(ctx, rs.ID()); err != nil {
		uc.logger.Errorw("failed to delete reseller", "id", resellerID, "error", err)
		return fmt.Errorf("failed to delete reseller: %w", err)
	}

	uc.logger.Infow("reseller deleted", "id", resellerID)
	return nil
}
