package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/user"
)

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

func newTestOwner(t *testing.T, id uint, premium bool) *user.User {
	t.Helper()
	owner, err := user.NewUser("owner@example.com", "owner", "hash")
	require.NoError(t, err)
	require.NoError(t, owner.SetID(id))
	if premium {
		owner.Upgrade()
	}
	return owner
}
