package usecases

import (
	"context"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/shared/logger"
)

// GetLicenseUseCase loads one license for its app's owner.
type GetLicenseUseCase struct {
	licenseRepo  license.Repository
	appRepo      app.Repository
	resellerRepo reseller.Repository
	logger       logger.Interface
}

func NewGetLicenseUseCase(
	licenseRepo license.Repository,
	appRepo app.Repository,
	resellerRepo reseller.Repository,
	logger logger.Interface,
) *GetLicenseUseCase {
	return &GetLicenseUseCase{
		licenseRepo:  licenseRepo,
		appRepo:      appRepo,
		resellerRepo: resellerRepo,
		logger:       logger,
	}
}

func (uc *GetLicenseUseCase) Execute(ctx context.Context, licenseID, ownerID uint) (*license.License, error) {
	access, err := authorizeLicense(ctx, uc.licenseRepo, uc.appRepo, uc.resellerRepo, licenseID, actor{OwnerID: &ownerID}, "")
	if err != nil {
		return nil, err
	}
	return access.License, nil
}
