// Package usecases contains the app management application services.
package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/user"
	"keyforge/internal/shared/constants"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/id"
	"keyforge/internal/shared/logger"
)

type CreateAppCommand struct {
	OwnerID  uint
	Name     string
	Settings app.Settings
}

// CreateAppUseCase registers an app under the owner's plan quota and
// generates its credential pair.
type CreateAppUseCase struct {
	appRepo  app.Repository
	userRepo user.Repository
	logger   logger.Interface
}

func NewCreateAppUseCase(appRepo app.Repository, userRepo user.Repository, logger logger.Interface) *CreateAppUseCase {
	return &CreateAppUseCase{appRepo: appRepo, userRepo: userRepo, logger: logger}
}

func (uc *CreateAppUseCase) Execute(ctx context.Context, cmd CreateAppCommand) (*app.App, error) {
	owner, err := uc.userRepo.GetByID(ctx, cmd.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to get owner", "user_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	appCount, err := uc.appRepo.CountByOwner(ctx, cmd.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to count apps", "user_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to count apps: %w", err)
	}
	if !owner.Limits().CanCreateApp(appCount) {
		return nil, apperrors.NewForbiddenError("app limit reached for current plan")
	}

	appID, err := uc.generateAppID(ctx)
	if err != nil {
		return nil, err
	}
	appSecret, err := id.NewAppSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate app secret: %w", err)
	}

	newApp, err := app.NewApp(cmd.OwnerID, cmd.Name, appID, appSecret, cmd.Settings)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.appRepo.Create(ctx, newApp); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("app identifier collision, retry")
		}
		uc.logger.Errorw("failed to create app", "user_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	uc.logger.Infow("app created", "app_id", newApp.AppID(), "owner_id", cmd.OwnerID)
	return newApp, nil
}

// generateAppID retries against the unique index under a fixed budget;
// collisions on 16 random base62 chars are vanishingly rare but the
// budget keeps the loop bounded.
func (uc *CreateAppUseCase) generateAppID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < constants.KeyGenMaxAttempts; attempt++ {
		candidate, err := id.NewAppID()
		if err != nil {
			return "", fmt.Errorf("failed to generate app ID: %w", err)
		}
		exists, err := uc.appRepo.ExistsByAppID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check app ID: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", apperrors.NewInternalError("could not generate a unique app identifier")
}
