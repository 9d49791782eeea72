package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type DashboardResult struct {
	Reseller       *reseller.Reseller
	Stats          *license.Stats
	RemainingQuota int
	RecentLicenses []*license.License
}

// GetDashboardUseCase assembles the reseller's dashboard: its own
// record, aggregate stats over its issued licenses, and the most recent
// ones.
type GetDashboardUseCase struct {
	resellerRepo reseller.Repository
	licenseRepo  license.Repository
	logger       logger.Interface
}

func NewGetDashboardUseCase(resellerRepo reseller.Repository, licenseRepo license.Repository, logger logger.Interface) *GetDashboardUseCase {
	return &GetDashboardUseCase{resellerRepo: resellerRepo, licenseRepo: licenseRepo, logger: logger}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, resellerID uint) (*DashboardResult, error) {
	rs, err := uc.resellerRepo.GetByID(ctx, resellerID)
	if err != nil {
		uc.logger.Errorw("failed to get reseller", "id", resellerID, "error", err)
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	if rs == nil {
		return nil, apperrors.NewNotFoundError("reseller not found")
	}

	stats, err := uc.licenseRepo.StatsByReseller(ctx, resellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get license stats: %w", err)
	}

	rid := resellerID
	recent, _, err := uc.licenseRepo.List(ctx, license.Filter{
		ResellerID: &rid,
		Page:       1,
		PageSize:   10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent licenses: %w", err)
	}

	return &DashboardResult{
		Reseller:       rs,
		Stats:          stats,
		RemainingQuota: rs.RemainingQuota(),
		RecentLicenses: recent,
	}, nil
}

// ListResellerLicensesUseCase pages through the licenses a reseller
// issued.
type ListResellerLicensesUseCase struct {
	licenseRepo license.Repository
	logger      logger.Interface
}

func NewListResellerLicensesUseCase(licenseRepo license.Repository, logger logger.Interface) *ListResellerLicensesUseCase {
	return &ListResellerLicensesUseCase{licenseRepo: licenseRepo, logger: logger}
}

func (uc *ListResellerLicensesUseCase) Execute(ctx context.Context, resellerID uint, page, pageSize int) ([]*license.License, int64, error) {
	rid := resellerID
	licenses, total, err := uc.licenseRepo.List(ctx, license.Filter{
		ResellerID: &rid,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list reseller licenses", "reseller_id", resellerID, "error", err)
		return nil, 0, fmt.Errorf("failed to list reseller licenses: %w", err)
	}
	return licenses, total, nil
}

// GetResellerProfileUseCase returns the reseller's own record.
type GetResellerProfileUseCase struct {
	resellerRepo reseller.Repository
	logger       logger.Interface
}

func NewGetResellerProfileUseCase(resellerRepo reseller.Repository, logger logger.Interface) *GetResellerProfileUseCase {
	return &GetResellerProfileUseCase{resellerRepo: resellerRepo, logger: logger}
}

func (uc *GetResellerProfileUseCase) Execute(ctx context.Context, resellerID uint) (*reseller.Reseller, error) {
	rs, err := uc.resellerRepo.GetByID(ctx, resellerID)
	if err != nil {
		uc.logger.Errorw("failed to get reseller", "id", resellerID, "error", err)
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	if rs == nil {
		return nil, apperrors.NewNotFoundError("reseller not found")
	}
	return rs, nil
}
