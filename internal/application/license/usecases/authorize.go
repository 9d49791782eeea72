package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	apperrors "keyforge/internal/shared/errors"
)

// actor identifies who is performing a license operation. Exactly one
// of OwnerID / ResellerID is set.
type actor struct {
	OwnerID    *uint
	ResellerID *uint
}

// licenseAccess bundles what authorization resolved.
type licenseAccess struct {
	License  *license.License
	App      *app.App
	Reseller *reseller.Reseller // nil for owner actors
}

// authorizeLicense loads the license and checks the actor may touch it.
// Owners must own the app; resellers must belong to the app, be active,
// and hold the given permission.
func authorizeLicense(
	ctx context.Context,
	licenseRepo license.Repository,
	appRepo app.Repository,
	resellerRepo reseller.Repository,
	licenseID uint,
	who actor,
	required reseller.Action,
) (*licenseAccess, error) {
	lic, err := licenseRepo.GetByID(ctx, licenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	if lic == nil {
		return nil, apperrors.NewNotFoundError("license not found")
	}

	targetApp, err := appRepo.GetByID(ctx, lic.AppID())
	if err != nil {
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}

	switch {
	case who.ResellerID != nil:
		actingReseller, err := resellerRepo.GetByID(ctx, *who.ResellerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get reseller: %w", err)
		}
		if actingReseller == nil {
			return nil, apperrors.NewNotFoundError("reseller not found")
		}
		if actingReseller.AppID() != targetApp.ID() {
			return nil, apperrors.NewForbiddenError("license belongs to another app")
		}
		if !actingReseller.HasPermission(required) {
			return nil, apperrors.NewForbiddenError(fmt.Sprintf("reseller may not perform %s", required))
		}
		return &licenseAccess{License: lic, App: targetApp, Reseller: actingReseller}, nil
	case who.OwnerID != nil:
		if !targetApp.IsOwnedBy(*who.OwnerID) {
			return nil, apperrors.NewForbiddenError("license belongs to another owner")
		}
		return &licenseAccess{License: lic, App: targetApp}, nil
	default:
		return nil, apperrors.NewValidationError("actor is required")
	}
}
