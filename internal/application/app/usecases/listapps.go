package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/shared/logger"
)

// ListAppsUseCase returns all apps owned by a user.
type ListAppsUseCase struct {
	appRepo app.Repository
	logger  logger.Interface
}

func NewListAppsUseCase(appRepo app.Repository, logger logger.Interface) *ListAppsUseCase {
	return &ListAppsUseCase{appRepo: appRepo, logger: logger}
}

func (uc *ListAppsUseCase) Execute(ctx context.Context, ownerID uint) ([]*app.App, error) {
	apps, err := uc.appRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		uc.logger.Errorw("failed to list apps", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	return apps, nil
}
