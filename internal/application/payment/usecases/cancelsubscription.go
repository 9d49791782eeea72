package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/user"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

// CancelSubscriptionUseCase drops the owner back to the free plan
// immediately. Existing apps, resellers and licenses are untouched;
// the free limits only gate new creations.
type CancelSubscriptionUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewCancelSubscriptionUseCase(userRepo user.Repository, logger logger.Interface) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{userRepo: userRepo, logger: logger}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, userID uint) (*user.User, error) {
	owner, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if !owner.Plan().IsPremium() {
		return nil, apperrors.NewConflictError("no active subscription to cancel")
	}

	owner.Downgrade()
	if err := uc.userRepo.UpdatePlan(ctx, owner); err != nil {
		uc.logger.Errorw("failed to downgrade plan", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to downgrade plan: %w", err)
	}

	uc.logger.Infow("subscription cancelled", "user_id", userID)
	return owner, nil
}
