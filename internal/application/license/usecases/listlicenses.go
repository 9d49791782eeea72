package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type ListLicensesCommand struct {
	AppID    uint
	OwnerID  uint
	Status   *license.Status
	Used     *bool
	Page     int
	PageSize int
}

// ListLicensesUseCase pages through an app's licenses for its owner.
type ListLicensesUseCase struct {
	licenseRepo license.Repository
	appRepo     app.Repository
	logger      logger.Interface
}

func NewListLicensesUseCase(licenseRepo license.Repository, appRepo app.Repository, logger logger.Interface) *ListLicensesUseCase {
	return &ListLicensesUseCase{licenseRepo: licenseRepo, appRepo: appRepo, logger: logger}
}

func (uc *ListLicensesUseCase) Execute(ctx context.Context, cmd ListLicensesCommand) ([]*license.License, int64, error) {
	targetApp, err := uc.appRepo.GetByID(ctx, cmd.AppID)
	if err != nil {
		uc.logger.Errorw("failed to get app", "id", cmd.AppID, "error", err)
		return nil, 0, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, 0, apperrors.NewNotFoundError("app not found")
	}
	if !targetApp.IsOwnedBy(cmd.OwnerID) {
		return nil, 0, apperrors.NewForbiddenError("app belongs to another owner")
	}

	appID := targetApp.ID()
	licenses, total, err := uc.licenseRepo.List(ctx, license.Filter{
		AppID:    &appID,
		Status:   cmd.Status,
		Consumed: cmd.Used,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list licenses", "app_id", appID, "error", err)
		return nil, 0, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, total, nil
}
