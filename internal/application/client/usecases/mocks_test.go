package usecases

import (
	"context"
	"errors"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/client"
	"keyforge/internal/domain/license"
)

type mockClientRepo struct {
	CreateFn           func(ctx context.Context, c *client.Client) error
	GetByIDFn          func(ctx context.Context, id uint) (*client.Client, error)
	GetByUsernameFn    func(ctx context.Context, appID uint, username string) (*client.Client, error)
	ListFn             func(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error)
	ExistsByUsernameFn func(ctx context.Context, appID uint, username string) (bool, error)
	UpdateFn           func(ctx context.Context, c *client.Client) error
	DeleteFn           func(ctx context.Context, id uint) error
	StatsByAppFn       func(ctx context.Context, appID uint) (*client.Stats, error)
}

func (m *mockClientRepo) Create(ctx context.Context, c *client.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return c.SetID(1)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockClientRepo) GetByUsername(ctx context.Context, appID uint, username string) (*client.Client, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, appID, username)
	}
	return nil, nil
}

func (m *mockClientRepo) List(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockClientRepo) ExistsByUsername(ctx context.Context, appID uint, username string) (bool, error) {
	if m.ExistsByUsernameFn != nil {
		return m.ExistsByUsernameFn(ctx, appID, username)
	}
	return false, nil
}

func (m *mockClientRepo) Update(ctx context.Context, c *client.Client) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}

func (m *mockClientRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockClientRepo) StatsByApp(ctx context.Context, appID uint) (*client.Stats, error) {
	if m.StatsByAppFn != nil {
		return m.StatsByAppFn(ctx, appID)
	}
	return &client.Stats{}, nil
}

type mockLicenseRepo struct {
	GetByKeyFn     func(ctx context.Context, key string) (*license.License, error)
	MarkConsumedFn func(ctx context.Context, licenseID, clientID uint) (bool, error)
	ReleaseFn      func(ctx context.Context, licenseID uint) error

	license.Repository
}

func (m *mockLicenseRepo) GetByKey(ctx context.Context, key string) (*license.License, error) {
	if m.GetByKeyFn != nil {
		return m.GetByKeyFn(ctx, key)
	}
	return nil, nil
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

type mockAppRepo struct {
	GetByIDFn          func(ctx context.Context, id uint) (*app.App, error)
	GetByCredentialsFn func(ctx context.Context, appID, appSecret string) (*app.App, error)

	app.Repository
}

func (m *mockAppRepo) GetByID(ctx context.Context, id uint) (*app.App, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAppRepo) GetByCredentials(ctx context.Context, appID, appSecret string) (*app.App, error) {
	if m.GetByCredentialsFn != nil {
		return m.GetByCredentialsFn(ctx, appID, appSecret)
	}
	return nil, nil
}

// fakeHasher prefixes instead of hashing so tests can assert both
// directions without bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("invalid credentials")
	}
	return nil
}

// fakeTxManager runs the function directly; rollback is observed
// through the error return.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
