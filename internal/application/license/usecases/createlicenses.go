// Package usecases contains the license lifecycle application services.
package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/domain/user"
	"keyforge/internal/shared/constants"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/id"
	"keyforge/internal/shared/logger"
)

type CreateLicensesCommand struct {
	AppID uint
	// Exactly one of OwnerID / ResellerID is set; it decides which quota
	// and permission checks apply.
	OwnerID       *uint
	ResellerID    *uint
	Count         int
	ExpiresInDays int
	// CustomKey is only honored for a single owner-created license and
	// only when the app allows custom keys.
	CustomKey string
	Note      string
}

// CreateLicensesUseCase issues one or more license keys under the
// owner's per-app quota and, for reseller creators, the reseller's own
// quota and create permission.
type CreateLicensesUseCase struct {
	licenseRepo  license.Repository
	appRepo      app.Repository
	userRepo     user.Repository
	resellerRepo reseller.Repository
	logger       logger.Interface
}

func NewCreateLicensesUseCase(
	licenseRepo license.Repository,
	appRepo app.Repository,
	userRepo user.Repository,
	resellerRepo reseller.Repository,
	logger logger.Interface,
) *CreateLicensesUseCase {
	return &CreateLicensesUseCase{
		licenseRepo:  licenseRepo,
		appRepo:      appRepo,
		userRepo:     userRepo,
		resellerRepo: resellerRepo,
		logger:       logger,
	}
}

func (uc *CreateLicensesUseCase) Execute(ctx context.Context, cmd CreateLicensesCommand) ([]*license.License, error) {
	if cmd.Count < 1 {
		cmd.Count = 1
	}
	if cmd.ExpiresInDays <= 0 {
		return nil, apperrors.NewValidationError("expiry days must be positive")
	}

	targetApp, err := uc.appRepo.GetByID(ctx, cmd.AppID)
	if err != nil {
		uc.logger.Errorw("failed to get app", "id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}

	var creatorID uint
	creatorType := license.CreatorOwner
	var actingReseller *reseller.Reseller
	var resellerID *uint

	switch {
	case cmd.ResellerID != nil:
		actingReseller, err = uc.resellerRepo.GetByID(ctx, *cmd.ResellerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get reseller: %w", err)
		}
		if actingReseller == nil {
			return nil, apperrors.NewNotFoundError("reseller not found")
		}
		if actingReseller.AppID() != targetApp.ID() {
			return nil, apperrors.NewForbiddenError("reseller belongs to another app")
		}
		if !actingReseller.HasPermission(reseller.ActionCreate) {
			return nil, apperrors.NewForbiddenError("reseller may not create licenses")
		}
		if remaining := actingReseller.RemainingQuota(); remaining != reseller.UnlimitedLicenses && remaining < cmd.Count {
			return nil, apperrors.NewForbiddenError("reseller license limit reached")
		}
		creatorID = actingReseller.ID()
		creatorType = license.CreatorReseller
		rid := actingReseller.ID()
		resellerID = &rid
	case cmd.OwnerID != nil:
		if !targetApp.IsOwnedBy(*cmd.OwnerID) {
			return nil, apperrors.NewForbiddenError("app belongs to another owner")
		}
		creatorID = *cmd.OwnerID
	default:
		return nil, apperrors.NewValidationError("creator is required")
	}

	// The owner's per-app quota applies to every creator.
	owner, err := uc.userRepo.GetByID(ctx, targetApp.OwnerID())
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("owner not found")
	}
	licenseCount, err := uc.licenseRepo.CountByApp(ctx, targetApp.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count licenses: %w", err)
	}
	limits := owner.Limits()
	if limits.MaxLicensesPerApp != user.Unlimited && licenseCount+cmd.Count > limits.MaxLicensesPerApp {
		return nil, apperrors.NewForbiddenError("license limit reached for current plan")
	}

	if cmd.CustomKey != "" && (cmd.Count > 1 || creatorType != license.CreatorOwner) {
		return nil, apperrors.NewValidationError("custom keys apply to a single owner-created license")
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, cmd.ExpiresInDays)
	created := make([]*license.License, 0, cmd.Count)
	for i := 0; i < cmd.Count; i++ {
		lic, err := uc.createOne(ctx, targetApp, creatorID, creatorType, resellerID, cmd.CustomKey, expiresAt, cmd.Note)
		if err != nil {
			return nil, err
		}
		created = append(created, lic)
	}

	if actingReseller != nil {
		for range created {
			actingReseller.IncrementUsedLicenses()
		}
		if err := uc.resellerRepo.Update(ctx, actingReseller); err != nil {
			uc.logger.Errorw("failed to update reseller quota", "reseller_id", actingReseller.ID(), "error", err)
			return nil, fmt.Errorf("failed to update reseller quota: %w", err)
		}
	}

	uc.logger.Infow("licenses created",
		"app_id", targetApp.ID(),
		"count", len(created),
		"creator_type", creatorType,
	)
	return created, nil
}

func (uc *CreateLicensesUseCase) createOne(
	ctx context.Context,
	targetApp *app.App,
	creatorID uint,
	creatorType license.CreatorType,
	resellerID *uint,
	customKey string,
	expiresAt time.Time,
	note string,
) (*license.License, error) {
	if customKey != "" {
		return uc.createWithCustomKey(ctx, targetApp, creatorID, customKey, expiresAt, note)
	}

	// Retry against the unique index under a fixed budget. Collisions on
	// 96 random bits are vanishingly rare; the budget keeps the loop
	// bounded when the store misbehaves.
	var lastErr error
	for attempt := 0; attempt < constants.KeyGenMaxAttempts; attempt++ {
		key, err := id.NewLicenseKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate license key: %w", err)
		}

		lic, err := license.NewLicense(targetApp.ID(), key, creatorID, creatorType, resellerID, expiresAt, note)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}

		if err := uc.licenseRepo.Create(ctx, lic); err != nil {
			if apperrors.IsDuplicateError(err) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("failed to create license: %w", err)
		}
		return lic, nil
	}

	uc.logger.Errorw("license key generation budget exhausted", "app_id", targetApp.ID(), "error", lastErr)
	return nil, apperrors.NewInternalError("could not generate a unique license key")
}

func (uc *CreateLicensesUseCase) createWithCustomKey(
	ctx context.Context,
	targetApp *app.App,
	creatorID uint,
	customKey string,
	expiresAt time.Time,
	note string,
) (*license.License, error) {
	if !targetApp.Settings().AllowCustomLicenseKey {
		return nil, apperrors.NewForbiddenError("custom license keys are disabled for this app")
	}

	key := strings.ToLower(strings.TrimSpace(customKey))
	if !license.ValidKeyFormat(key) {
		return nil, apperrors.NewValidationError("license key must be 24 lowercase hex characters")
	}

	lic, err := license.NewLicense(targetApp.ID(), key, creatorID, license.CreatorOwner, nil, expiresAt, note)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.licenseRepo.Create(ctx, lic); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("license key already exists")
		}
		return nil, fmt.Errorf("failed to create license: %w", err)
	}
	return lic, nil
}
