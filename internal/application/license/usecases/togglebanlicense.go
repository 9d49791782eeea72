package usecases

import (
	"context"
	"errors"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type ToggleBanLicenseCommand struct {
	LicenseID  uint
	OwnerID    *uint
	ResellerID *uint
}

// ToggleBanLicenseUseCase flips a license between active and banned.
// Revoked licenses are immutable and the attempt is rejected.
type ToggleBanLicenseUseCase struct {
	licenseRepo  license.Repository
	appRepo      app.Repository
	resellerRepo reseller.Repository
	logger       logger.Interface
}

func NewToggleBanLicenseUseCase(
	licenseRepo license.Repository,
	appRepo app.Repository,
	resellerRepo reseller.Repository,
	logger logger.Interface,
) *ToggleBanLicenseUseCase {
	return &ToggleBanLicenseUseCase{
		licenseRepo:  licenseRepo,
		appRepo:      appRepo,
		resellerRepo: resellerRepo,
		logger:       logger,
	}
}

func (uc *ToggleBanLicenseUseCase) Execute(ctx context.Context, cmd ToggleBanLicenseCommand) (*license.License, error) {
	access, err := authorizeLicense(
		ctx, uc.licenseRepo, uc.appRepo, uc.resellerRepo,
		cmd.LicenseID,
		actor{OwnerID: cmd.OwnerID, ResellerID: cmd.ResellerID},
		reseller.ActionBanUnban,
	)
	if err != nil {
		return nil, err
	}
	lic := access.License

	if err := lic.ToggleBan(); err != nil {
		if errors.Is(err, license.ErrRevokedImmutable) {
			return nil, apperrors.NewConflictError("revoked licenses cannot be banned or unbanned")
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.licenseRepo.Update(ctx, lic); err != nil {
		uc.logger.Errorw("failed to update license", "id", cmd.LicenseID, "error", err)
		return nil, fmt.Errorf("failed to update license: %w", err)
	}

	uc.logger.Infow("license ban toggled", "id", cmd.LicenseID, "status", lic.Status())
	return lic, nil
}
