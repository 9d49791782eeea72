package usecases

import (
	"context"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/domain/user"
)

type mockLicenseRepo struct {
	CreateFn                func(ctx context.Context, lic *license.License) error
	GetByIDFn               func(ctx context.Context, id uint) (*license.License, error)
	GetByKeyFn              func(ctx context.Context, key string) (*license.License, error)
	ListFn                  func(ctx context.Context, filter license.Filter) ([]*license.License, int64, error)
	CountByAppFn            func(ctx context.Context, appID uint) (int, error)
	CountActiveByResellerFn func(ctx context.Context, resellerID uint) (int, error)
	ExistsByKeyFn           func(ctx context.Context, key string) (bool, error)
	UpdateFn                func(ctx context.Context, lic *license.License) error
	MarkConsumedFn          func(ctx context.Context, licenseID, clientID uint) (bool, error)
	ReleaseFn               func(ctx context.Context, licenseID uint) error
	DeleteFn                func(ctx context.Context, id uint) error
	DeleteBatchFn           func(ctx context.Context, ids []uint) (int64, error)
	StatsByAppFn            func(ctx context.Context, appID uint) (*license.Stats, error)
	StatsByResellerFn       func(ctx context.Context, resellerID uint) (*license.Stats, error)
}

func (m *mockLicenseRepo) Create(ctx context.Context, lic *license.License) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, lic)
	}
	return lic.SetID(1)
}

func (m *mockLicenseRepo) GetByID(ctx context.Context, id uint) (*license.License, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockLicenseRepo) GetByKey(ctx context.Context, key string) (*license.License, error) {
	if m.GetByKeyFn != nil {
		return m.GetByKeyFn(ctx, key)
	}
	return nil, nil
}

func (m *mockLicenseRepo) List(ctx context.Context, filter license.Filter) ([]*license.License, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockLicenseRepo) CountByApp(ctx context.Context, appID uint) (int, error) {
	if m.CountByAppFn != nil {
		return m.CountByAppFn(ctx, appID)
	}
	return 0, nil
}

func (m *mockLicenseRepo) CountActiveByReseller(ctx context.Context, resellerID uint) (int, error) {
	if m.CountActiveByResellerFn != nil {
		return m.CountActiveByResellerFn(ctx, resellerID)
	}
	return 0, nil
}

func (m *mockLicenseRepo) ExistsByKey(ctx context.Context, key string) (bool, error) {
	if m.ExistsByKeyFn != nil {
		return m.ExistsByKeyFn(ctx, key)
	}
	return false, nil
}

func (m *mockLicenseRepo) Update(ctx context.Context, lic *license.License) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, lic)
	}
	return nil
}

func (m *mockLicenseRepo) MarkConsumed(ctx context.Context, licenseID, clientID uint) (bool, error) {
	if m.MarkConsumedFn != nil {
		return m.MarkConsumedFn(ctx, licenseID, clientID)
	}
	return true, nil
}

func (m *mockLicenseRepo) Release(ctx context.Context, licenseID uint) error {
	if m.ReleaseFn != nil {
		return m.ReleaseFn(ctx, licenseID)
	}
	return nil
}

func (m *mockLicenseRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockLicenseRepo) DeleteBatch(ctx context.Context, ids []uint) (int64, error) {
	if m.DeleteBatchFn != nil {
		return m.DeleteBatchFn(ctx, ids)
	}
	return int64(len(ids)), nil
}

func (m *mockLicenseRepo) StatsByApp(ctx context.Context, appID uint) (*license.Stats, error) {
	if m.StatsByAppFn != nil {
		return m.StatsByAppFn(ctx, appID)
	}
	return &license.Stats{}, nil
}

func (m *mockLicenseRepo) StatsByReseller(ctx context.Context, resellerID uint) (*license.Stats, error) {
	if m.StatsByResellerFn != nil {
		return m.StatsByResellerFn(ctx, resellerID)
	}
	return &license.Stats{}, nil
}

type mockAppRepo struct {
	CreateFn           func(ctx context.Context, a *app.App) error
	GetByIDFn          func(ctx context.Context, id uint) (*app.App, error)
	GetByAppIDFn       func(ctx context.Context, appID string) (*app.App, error)
	GetByCredentialsFn func(ctx context.Context, appID, appSecret string) (*app.App, error)
	ListByOwnerFn      func(ctx context.Context, ownerID uint) ([]*app.App, error)
	CountByOwnerFn     func(ctx context.Context, ownerID uint) (int, error)
	ExistsByAppIDFn    func(ctx context.Context, appID string) (bool, error)
	UpdateFn           func(ctx context.Context, a *app.App) error
	DeleteFn           func(ctx context.Context, id uint) error
}

func (m *mockAppRepo) Create(ctx context.Context, a *app.App) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return a.SetID(1)
}

func (m *mockAppRepo) GetByID(ctx context.Context, id uint) (*app.App, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAppRepo) GetByAppID(ctx context.Context, appID string) (*app.App, error) {
	if m.GetByAppIDFn != nil {
		return m.GetByAppIDFn(ctx, appID)
	}
	return nil, nil
}

func (m *mockAppRepo) GetByCredentials(ctx context.Context, appID, appSecret string) (*app.App, error) {
	if m.GetByCredentialsFn != nil {
		return m.GetByCredentialsFn(ctx, appID, appSecret)
	}
	return nil, nil
}

func (m *mockAppRepo) ListByOwner(ctx context.Context, ownerID uint) ([]*app.App, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockAppRepo) CountByOwner(ctx context.Context, ownerID uint) (int, error) {
	if m.CountByOwnerFn != nil {
		return m.CountByOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockAppRepo) ExistsByAppID(ctx context.Context, appID string) (bool, error) {
	if m.ExistsByAppIDFn != nil {
		return m.ExistsByAppIDFn(ctx, appID)
	}
	return false, nil
}

func (m *mockAppRepo) Update(ctx context.Context, a *app.App) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, a)
	}
	return nil
}

func (m *mockAppRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

type mockUserRepo struct {
	CreateFn        func(ctx context.Context, u *user.User) error
	GetByIDFn       func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*user.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	UpdatePlanFn    func(ctx context.Context, u *user.User) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return u.SetID(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdatePlan(ctx context.Context, u *user.User) error {
	if m.UpdatePlanFn != nil {
		return m.UpdatePlanFn(ctx, u)
	}
	return nil
}

type mockResellerRepo struct {
	CreateFn        func(ctx context.Context, r *reseller.Reseller) error
	GetByIDFn       func(ctx context.Context, id uint) (*reseller.Reseller, error)
	GetByUsernameFn func(ctx context.Context, appID uint, username string) (*reseller.Reseller, error)
	ListByAppFn     func(ctx context.Context, appID uint) ([]*reseller.Reseller, error)
	CountByOwnerFn  func(ctx context.Context, ownerID uint) (int, error)
	CountByAppFn    func(ctx context.Context, appID uint) (int, error)
	UpdateFn        func(ctx context.Context, r *reseller.Reseller) error
	DeleteFn        func(ctx context.Context, id uint) error
}

func (m *mockResellerRepo) Create(ctx context.Context, r *reseller.Reseller) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return r.SetID(1)
}

func (m *mockResellerRepo) GetByID(ctx context.Context, id uint) (*reseller.Reseller, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockResellerRepo) GetByUsername(ctx context.Context, appID uint, username string) (*reseller.Reseller, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, appID, username)
	}
	return nil, nil
}

func (m *mockResellerRepo) ListByApp(ctx context.Context, appID uint) ([]*reseller.Reseller, error) {
	if m.ListByAppFn != nil {
		return m.ListByAppFn(ctx, appID)
	}
	return nil, nil
}

func (m *mockResellerRepo) CountByOwner(ctx context.Context, ownerID uint) (int, error) {
	if m.CountByOwnerFn != nil {
		return m.CountByOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockResellerRepo) CountByApp(ctx context.Context, appID uint) (int, error) {
	if m.CountByAppFn != nil {
		return m.CountByAppFn(ctx, appID)
	}
	return 0, nil
}

func (m *mockResellerRepo) Update(ctx context.Context, r *reseller.Reseller) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, r)
	}
	return nil
}

func (m *mockResellerRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
