package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type BulkDeleteLicensesCommand struct {
	OwnerID    uint
	LicenseIDs []uint
}

type BulkDeleteLicensesResult struct {
	Deleted int64  `json:"deleted"`
	Skipped []uint `json:"skipped"`
}

// BulkDeleteLicensesUseCase removes owner-created licenses from the
// given set. Reseller-created licenses and licenses outside the owner's
// apps are skipped and reported, not treated as errors.
type BulkDeleteLicensesUseCase struct {
	licenseRepo license.Repository
	appRepo     app.Repository
	logger      logger.Interface
}

func NewBulkDeleteLicensesUseCase(licenseRepo license.Repository, appRepo app.Repository, logger logger.Interface) *BulkDeleteLicensesUseCase {
	return &BulkDeleteLicensesUseCase{licenseRepo: licenseRepo, appRepo: appRepo, logger: logger}
}

func (uc *BulkDeleteLicensesUseCase) Execute(ctx context.Context, cmd BulkDeleteLicensesCommand) (*BulkDeleteLicensesResult, error) {
	if len(cmd.LicenseIDs) == 0 {
		return nil, apperrors.NewValidationError("license ids are required")
	}

	ownedApps := map[uint]bool{}
	apps, err := uc.appRepo.ListByOwner(ctx, cmd.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to list apps", "owner_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	for _, a := range apps {
		ownedApps[a.ID()] = true
	}

	deletable := make([]uint, 0, len(cmd.LicenseIDs))
	skipped := make([]uint, 0)
	for _, licID := range cmd.LicenseIDs {
		lic, err := uc.licenseRepo.GetByID(ctx, licID)
		if err != nil {
			return nil, fmt.Errorf("failed to get license: %w", err)
		}
		if lic == nil || !ownedApps[lic.AppID()] || lic.IsResellerCreated() {
			skipped = append(skipped, licID)
			continue
		}
		deletable = append(deletable, licID)
	}

	deleted, err := uc.licenseRepo.DeleteBatch(ctx, deletable)
	if err != nil {
		uc.logger.Errorw("failed to batch delete licenses", "owner_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to batch delete licenses: %w", err)
	}

	uc.logger.Infow("licenses bulk deleted", "owner_id", cmd.OwnerID, "deleted", deleted, "skipped", len(skipped))
	return &BulkDeleteLicensesResult{Deleted: deleted, Skipped: skipped}, nil
}
