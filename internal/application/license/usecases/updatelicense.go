package usecases

import (
	"context"
	"fmt"
	"time"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type UpdateLicenseCommand struct {
	LicenseID uint
	OwnerID   *uint
	// ResellerID actors may only touch expiry and need the edit_expiry
	// permission.
	ResellerID *uint
	Note       *string
	ExtendDays *int
	ExpiresAt  *time.Time
}

// UpdateLicenseUseCase edits a license's note and expiry.
type UpdateLicenseUseCase struct {
	licenseRepo  license.Repository
	appRepo      app.Repository
	resellerRepo reseller.Repository
	logger       logger.Interface
}

func NewUpdateLicenseUseCase(
	licenseRepo license.Repository,
	appRepo app.Repository,
	resellerRepo reseller.Repository,
	logger logger.Interface,
) *UpdateLicenseUseCase {
	return &UpdateLicenseUseCase{
		licenseRepo:  licenseRepo,
		appRepo:      appRepo,
		resellerRepo: resellerRepo,
		logger:       logger,
	}
}

func (uc *UpdateLicenseUseCase) Execute(ctx context.Context, cmd UpdateLicenseCommand) (*license.License, error) {
	access, err := authorizeLicense(
		ctx, uc.licenseRepo, uc.appRepo, uc.resellerRepo,
		cmd.LicenseID,
		actor{OwnerID: cmd.OwnerID, ResellerID: cmd.ResellerID},
		reseller.ActionEditExpiry,
	)
	if err != nil {
		return nil, err
	}
	lic := access.License

	if cmd.Note != nil {
		if access.Reseller != nil {
			return nil, apperrors.NewForbiddenError("resellers may only edit expiry")
		}
		if err := lic.SetNote(*cmd.Note); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.ExtendDays != nil {
		if err := lic.ExtendExpiry(*cmd.ExtendDays); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.ExpiresAt != nil {
		if err := lic.SetExpiry(*cmd.ExpiresAt); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.licenseRepo.Update(ctx, lic); err != nil {
		uc.logger.Errorw("failed to update license", "id", cmd.LicenseID, "error", err)
		return nil, fmt.Errorf("failed to update license: %w", err)
	}

	uc.logger.Infow("license updated", "id", cmd.LicenseID)
	return lic, nil
}
