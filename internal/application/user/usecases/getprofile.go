package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/user"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type GetProfileResult struct {
	User     *user.User
	Limits   user.Limits
	AppCount int
}

// GetProfileUseCase returns the owner plus the limits derived from its
// current plan and the number of apps it owns.
type GetProfileUseCase struct {
	userRepo user.Repository
	appRepo  app.Repository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.Repository, appRepo app.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, appRepo: appRepo, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*GetProfileResult, error) {
	owner, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	appCount, err := uc.appRepo.CountByOwner(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count apps", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to count apps: %w", err)
	}

	return &GetProfileResult{
		User:     owner,
		Limits:   owner.Limits(),
		AppCount: appCount,
	}, nil
}
