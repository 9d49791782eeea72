package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/shared/logger"
)

// DeleteLicenseUseCase removes a license. Deletion is owner-only (the
// reseller delete action is never granted). When the license was issued
// by a reseller its used counter is decremented.
type DeleteLicenseUseCase struct {
	licenseRepo  license.Repository
	appRepo      app.Repository
	resellerRepo reseller.Repository
	logger       logger.Interface
}

func NewDeleteLicenseUseCase(
	licenseRepo license.Repository,
	appRepo app.Repository,
	resellerRepo reseller.Repository,
	logger logger.Interface,
) *DeleteLicenseUseCase {
	return &DeleteLicenseUseCase{
		licenseRepo:  licenseRepo,
		appRepo:      appRepo,
		resellerRepo: resellerRepo,
		logger:       logger,
	}
}

func (uc *DeleteLicenseUseCase) Execute(ctx context.Context, licenseID, ownerID uint) error {
	access, err := authorizeLicense(ctx, uc.licenseRepo, uc.appRepo, uc.resellerRepo, licenseID, actor{OwnerID: &ownerID}, "")
	if err != nil {
		return err
	}
	lic := access.License

	if err := uc.licenseRepo.Delete(ctx, licenseID); err != nil {
		uc.logger.Errorw("failed to delete license", "id", licenseID, "error", err)
		return fmt.Errorf("failed to delete license: %w", err)
	}

	if lic.IsResellerCreated() {
		if err := uc.creditReseller(ctx, *lic.ResellerID()); err != nil {
			// The license is gone; the counter drifts by one at worst and
			// is logged for reconciliation.
			uc.logger.Warnw("failed to decrement reseller counter", "reseller_id", *lic.ResellerID(), "error", err)
		}
	}

	uc.logger.Infow("license deleted", "id", licenseID)
	return nil
}

func (uc *DeleteLicenseUseCase) creditReseller(ctx context.Context, resellerID uint) error {
	issuer, err := uc.resellerRepo.GetByID(ctx, resellerID)
	if err != nil {
		return err
	}
	if issuer == nil {
		return nil
	}
	issuer.DecrementUsedLicenses()
	return uc.resellerRepo.Update(ctx, issuer)
}
