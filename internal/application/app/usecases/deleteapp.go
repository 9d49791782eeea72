package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

// DeleteAppUseCase removes an app together with its licenses, resellers
// and clients.
type DeleteAppUseCase struct {
	appRepo app.Repository
	logger  logger.Interface
}

func NewDeleteAppUseCase(appRepo app.Repository, logger logger.Interface) *DeleteAppUseCase {
	return &DeleteAppUseCase{appRepo: appRepo, logger: logger}
}

func (uc *DeleteAppUseCase) Execute(ctx context.Context, appID, ownerID uint) error {
	found, err := uc.appRepo.GetByID(ctx, appID)
	if err != nil {
		uc.logger.Errorw("failed to get app", "id", appID, "error", err)
		return fmt.Errorf("failed to get app: %w", err)
	}
	if found == nil {
		return apperrors.NewNotFoundError("app not found")
	}
	if !found.IsOwnedBy(ownerID) {
		return apperrors.NewForbiddenError("app belongs to another owner")
	}

	if err := uc.appRepo.Delete(ctx, appID); err != nil {
		uc.logger.Errorw("failed to delete app", "id", appID, "error", err)
		return fmt.Errorf("failed to delete app: %w", err)
	}

	uc.logger.Infow("app deleted", "id", appID, "owner_id", ownerID)
	return nil
}
