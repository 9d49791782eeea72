package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/domain/user"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

// freePlanResellerLicenseCap bounds a reseller's license quota under a
// free owner so delegation cannot exceed the owner's own per-app limit.
const freePlanResellerLicenseCap = 30

type CreateResellerCommand struct {
	OwnerID        uint
	AppID          uint
	Username       string
	Password       string
	LicenseLimit   int
	AllowedActions reseller.AllowedActions
}

// CreateResellerUseCase creates a delegate under the owner's plan
// quota. Free-plan owners have no reseller allowance at all.
type CreateResellerUseCase struct {
	resellerRepo reseller.Repository
	appRepo      app.Repository
	userRepo     user.Repository
	hasher       PasswordHasher
	logger       logger.Interface
}

func NewCreateResellerUseCase(
	resellerRepo reseller.Repository,
	appRepo app.Repository,
	userRepo user.Repository,
	hasher PasswordHasher,
	logger logger.Interface,
) *CreateResellerUseCase {
	return &CreateResellerUseCase{
		resellerRepo: resellerRepo,
		appRepo:      appRepo,
		userRepo:     userRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

func (uc *CreateResellerUseCase) Execute(ctx context.Context, cmd CreateResellerCommand) (*reseller.Reseller, error) {
	owner, err := uc.userRepo.GetByID(ctx, cmd.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to get owner", "user_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	targetApp, err := uc.appRepo.GetByID(ctx, cmd.AppID)
	if err != nil {
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}
	if !targetApp.IsOwnedBy(cmd.OwnerID) {
		return nil, apperrors.NewForbiddenError("app belongs to another owner")
	}

	resellerCount, err := uc.resellerRepo.CountByOwner(ctx, cmd.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count resellers: %w", err)
	}
	if !owner.Limits().CanCreateReseller(resellerCount) {
		return nil, apperrors.NewForbiddenError("reseller limit reached for current plan")
	}

	existing, err := uc.resellerRepo.GetByUsername(ctx, cmd.AppID, cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check reseller username: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("reseller username is already taken in this app")
	}

	licenseLimit := cmd.LicenseLimit
	if owner.Plan() == user.PlanFree {
		if licenseLimit == reseller.UnlimitedLicenses || licenseLimit > freePlanResellerLicenseCap {
			licenseLimit = freePlanResellerLicenseCap
		}
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	newReseller, err := reseller.NewReseller(cmd.AppID, cmd.Username, hash, licenseLimit, cmd.AllowedActions)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.resellerRepo.Create(ctx, newReseller); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("reseller username is already taken in this app")
		}
		uc.logger.Errorw("failed to create reseller", "app_id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to create reseller: %w", err)
	}

	uc.logger.Infow("reseller created", "id", newReseller.ID(), "app_id", cmd.AppID, "license_limit", licenseLimit)
	return newReseller, nil
}
