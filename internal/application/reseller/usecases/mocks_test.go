package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/domain/user"
)

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

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

type fakeIssuer struct {
	lastSubject uint
	lastRole    string
}

func (f *fakeIssuer) Issue(subjectID uint, role string) (*TokenPair, error) {
	f.lastSubject = subjectID
	f.lastRole = role
	return &TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 1800}, nil
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

func newTestApp(t *testing.T, id, ownerID uint) *app.App {
	t.Helper()
	a, err := app.NewApp(ownerID, "demo app", "abcDEF1234567890", "s3cretS3cretS3cretS3cretS3cret12", app.Settings{})
	require.NoError(t, err)
	require.NoError(t, a.SetID(id))
	return a
}

func newTestReseller(t *testing.T, id, appID uint, limit int) *reseller.Reseller {
	t.Helper()
	rs, err := reseller.NewReseller(appID, "dealer", "hashed:dealerpass", limit, reseller.AllowedActions{Create: true})
	require.NoError(t, err)
	require.NoError(t, rs.SetID(id))
	return rs
}
