package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

// GetAppUseCase loads an app and enforces ownership.
type GetAppUseCase struct {
	appRepo app.Repository
	logger  logger.Interface
}

func NewGetAppUseCase(appRepo app.Repository, logger logger.Interface) *GetAppUseCase {
	return &GetAppUseCase{appRepo: appRepo, logger: logger}
}

func (uc *GetAppUseCase) Execute(ctx context.Context, appID, ownerID uint) (*app.App, error) {
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
	return found, nil
}
