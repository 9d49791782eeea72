package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type UpdateAppCommand struct {
	AppID   uint
	OwnerID uint
	// nil fields are left unchanged
	Name     *string
	Paused   *bool
	Settings *app.Settings
}

// UpdateAppUseCase edits the app's name, pause flag and settings.
// Credentials are immutable.
type UpdateAppUseCase struct {
	appRepo app.Repository
	logger  logger.Interface
}

func NewUpdateAppUseCase(appRepo app.Repository, logger logger.Interface) *UpdateAppUseCase {
	return &UpdateAppUseCase{appRepo: appRepo, logger: logger}
}

func (uc *UpdateAppUseCase) Execute(ctx context.Context, cmd UpdateAppCommand) (*app.App, error) {
	found, err := uc.appRepo.GetByID(ctx, cmd.AppID)
	if err != nil {
		uc.logger.Errorw("failed to get app", "id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if found == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}
	if !found.IsOwnedBy(cmd.OwnerID) {
		return nil, apperrors.NewForbiddenError("app belongs to another owner")
	}

	if cmd.Name != nil {
		if err := found.Rename(*cmd.Name); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.Paused != nil {
		found.SetPaused(*cmd.Paused)
	}
	if cmd.Settings != nil {
		found.UpdateSettings(*cmd.Settings)
	}

	if err := uc.appRepo.Update(ctx, found); err != nil {
		uc.logger.Errorw("failed to update app", "id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to update app: %w", err)
	}

	uc.logger.Infow("app updated", "id", cmd.AppID)
	return found, nil
}
