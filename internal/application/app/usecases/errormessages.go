package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type ErrorMessagesResult struct {
	Messages  map[app.MessageKey]string
	Overrides map[app.MessageKey]string
}

// GetErrorMessagesUseCase returns the app's effective client-facing
// messages plus the subset the owner has overridden.
type GetErrorMessagesUseCase struct {
	appRepo app.Repository
	logger  logger.Interface
}

func NewGetErrorMessagesUseCase(appRepo app.Repository, logger logger.Interface) *GetErrorMessagesUseCase {
	return &GetErrorMessagesUseCase{appRepo: appRepo, logger: logger}
}

func (uc *GetErrorMessagesUseCase) Execute(ctx context.Context, appID, ownerID uint) (*ErrorMessagesResult, error) {
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

	return &ErrorMessagesResult{
		Messages:  found.Messages(),
		Overrides: found.Overrides(),
	}, nil
}

type UpdateErrorMessagesCommand struct {
	AppID   uint
	OwnerID uint
	// Messages maps key → override; an empty value resets the key to its
	// default.
	Messages map[string]string
}

// UpdateErrorMessagesUseCase overrides client-facing messages. Unknown
// keys are rejected before anything is written.
type UpdateErrorMessagesUseCase struct {
	appRepo app.Repository
	logger  logger.Interface
}

func NewUpdateErrorMessagesUseCase(appRepo app.Repository, logger logger.Interface) *UpdateErrorMessagesUseCase {
	return &UpdateErrorMessagesUseCase{appRepo: appRepo, logger: logger}
}

func (uc *UpdateErrorMessagesUseCase) Execute(ctx context.Context, cmd UpdateErrorMessagesCommand) (*ErrorMessagesResult, error) {
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

	for key := range cmd.Messages {
		if !app.IsValidMessageKey(app.MessageKey(key)) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown message key: %s", key))
		}
	}
	for key, value := range cmd.Messages {
		if err := found.OverrideMessage(app.MessageKey(key), value); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.appRepo.Update(ctx, found); err != nil {
		uc.logger.Errorw("failed to update app messages", "id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to update app messages: %w", err)
	}

	uc.logger.Infow("app messages updated", "id", cmd.AppID, "keys", len(cmd.Messages))
	return &ErrorMessagesResult{
		Messages:  found.Messages(),
		Overrides: found.Overrides(),
	}, nil
}
