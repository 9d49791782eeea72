package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/client"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type AppStatsResult struct {
	Licenses      *license.Stats `json:"licenses"`
	Clients       *client.Stats  `json:"clients"`
	ResellerCount int            `json:"reseller_count"`
}

// GetAppStatsUseCase aggregates license, client and reseller counts for
// one app.
type GetAppStatsUseCase struct {
	appRepo      app.Repository
	licenseRepo  license.Repository
	clientRepo   client.Repository
	resellerRepo reseller.Repository
	logger       logger.Interface
}

func NewGetAppStatsUseCase(
	appRepo app.Repository,
	licenseRepo license.Repository,
	clientRepo client.Repository,
	resellerRepo reseller.Repository,
	logger logger.Interface,
) *GetAppStatsUseCase {
	return &GetAppStatsUseCase{
		appRepo:      appRepo,
		licenseRepo:  licenseRepo,
		clientRepo:   clientRepo,
		resellerRepo: resellerRepo,
		logger:       logger,
	}
}

func (uc *GetAppStatsUseCase) Execute(ctx context.Context, appID, ownerID uint) (*AppStatsResult, error) {
	found, err := uc.appRepo.GetByID(ctx, appID)
	if err != nil {
		uc.logger.Errorw("failed to get app", "id", appID, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if found == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}
	if !found.IsOwnedBy(ownerID) {
		return nil, apperrors.NewForbiddenError("app belongs to another owner")
	}

	licenseStats, err := uc.licenseRepo.StatsByApp(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to get license stats: %w", err)
	}
	clientStats, err := uc.clientRepo.StatsByApp(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client stats: %w", err)
	}
	resellerCount, err := uc.resellerRepo.CountByApp(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to count resellers: %w", err)
	}

	return &AppStatsResult{
		Licenses:      licenseStats,
		Clients:       clientStats,
		ResellerCount: resellerCount,
	}, nil
}
