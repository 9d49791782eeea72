package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/client"
	"keyforge/internal/domain/license"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

const (
	testAppID     = "abcDEF1234567890"
	testAppSecret = "s3cretS3cretS3cretS3cretS3cret12"
	testKey       = "a1b2c3d4e5f60718293a4b5c"
)

func newRegisterApp(t *testing.T, settings app.Settings) *app.App {
	a, err := app.NewApp(1, "demo app", testAppID, testAppSecret, settings)
	require.NoError(t, err)
	require.NoError(t, a.SetID(10))
	return a
}

func newRegisterLicense(t *testing.T, appID uint) *license.License {
	lic, err := license.NewLicense(appID, testKey, 1, license.CreatorOwner, nil, time.Now().Add(30*24*time.Hour), "")
	require.NoError(t, err)
	require.NoError(t, lic.SetID(50))
	return lic
}

func registerCommand() RegisterClientCommand {
	return RegisterClientCommand{
		AppID:      testAppID,
		AppSecret:  testAppSecret,
		LicenseKey: testKey,
		Username:   "player1",
		Password:   "pass1234",
		HWID:       "HW-1",
	}
}

func TestRegisterClient_Success(t *testing.T) {
	ctx := context.Background()
	testApp := newRegisterApp(t, app.Settings{})
	lic := newRegisterLicense(t, 10)

	var consumedBy uint
	licenseRepo := &mockLicenseRepo{
		GetByKeyFn: func(_ context.Context, key string) (*license.License, error) {
			if key == testKey {
				return lic, nil
			}
			return nil, nil
		},
		MarkConsumedFn: func(_ context.Context, licenseID, clientID uint) (bool, error) {
			consumedBy = clientID
			return true, nil
		},
	}
	appRepo := &mockAppRepo{
		GetByCredentialsFn: func(_ context.Context, appID, secret string) (*app.App, error) {
			if appID == testAppID && secret == testAppSecret {
				return testApp, nil
			}
			return nil, nil
		},
	}
	tx := &fakeTxManager{}
	uc := NewRegisterClientUseCase(&mockClientRepo{}, licenseRepo, appRepo, fakeHasher{}, tx, logger.NewLogger())

	result, err := uc.Execute(ctx, registerCommand())
	require.NoError(t, err)
	assert.Equal(t, uint(1), consumedBy)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, lic.ExpiresAt(), result.ExpiresAt)
	require.NotNil(t, result.Client.LicenseID())
	assert.Equal(t, uint(50), *result.Client.LicenseID())
	assert.Equal(t, "HW-1", result.Client.HWID())
}

func TestRegisterClient_CheckOrder(t *testing.T) {
	ctx := context.Background()

	run := func(t *testing.T, testApp *app.App, lic *license.License, cmd RegisterClientCommand, taken bool) error {
		licenseRepo := &mockLicenseRepo{
			GetByKeyFn: func(_ context.Context, key string) (*license.License, error) {
				if lic != nil && key == lic.Key() {
					return lic, nil
				}
				return nil, nil
			},
		}
		appRepo := &mockAppRepo{
			GetByCredentialsFn: func(_ context.Context, appID, secret string) (*app.App, error) {
				if appID == testAppID && secret == testAppSecret {
					return testApp, nil
				}
				return nil, nil
			},
		}
		clientRepo := &mockClientRepo{
			ExistsByUsernameFn: func(_ context.Context, _ uint, _ string) (bool, error) { return taken, nil },
		}
		uc := NewRegisterClientUseCase(clientRepo, licenseRepo, appRepo, fakeHasher{}, &fakeTxManager{}, logger.NewLogger())
		_, err := uc.Execute(ctx, cmd)
		return err
	}

	t.Run("unknown app credentials", func(t *testing.T) {
		cmd := registerCommand()
		cmd.AppSecret = "wrong"
		err := run(t, newRegisterApp(t, app.Settings{}), nil, cmd, false)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgAppNotFound), apperrors.GetAppError(err).Message)
	})

	t.Run("unknown license key", func(t *testing.T) {
		err := run(t, newRegisterApp(t, app.Settings{}), nil, registerCommand(), false)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgLicenseNotFound), apperrors.GetAppError(err).Message)
	})

	t.Run("license from another app reads as not found", func(t *testing.T) {
		foreign := newRegisterLicense(t, 99)
		err := run(t, newRegisterApp(t, app.Settings{}), foreign, registerCommand(), false)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgLicenseNotFound), apperrors.GetAppError(err).Message)
	})

	t.Run("paused app reported after key match", func(t *testing.T) {
		testApp := newRegisterApp(t, app.Settings{})
		testApp.SetPaused(true)
		err := run(t, testApp, newRegisterLicense(t, 10), registerCommand(), false)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgAppPaused), apperrors.GetAppError(err).Message)
	})

	t.Run("consumed license reported before ban state", func(t *testing.T) {
		lic := newRegisterLicense(t, 10)
		require.NoError(t, lic.Consume(77, time.Now()))
		require.NoError(t, lic.ToggleBan())
		err := run(t, newRegisterApp(t, app.Settings{}), lic, registerCommand(), false)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgLicenseUsed), apperrors.GetAppError(err).Message)
	})

	t.Run("banned license", func(t *testing.T) {
		lic := newRegisterLicense(t, 10)
		require.NoError(t, lic.ToggleBan())
		err := run(t, newRegisterApp(t, app.Settings{}), lic, registerCommand(), false)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgLicenseBanned), apperrors.GetAppError(err).Message)
	})

	t.Run("revoked license", func(t *testing.T) {
		lic := newRegisterLicense(t, 10)
		lic.Revoke()
		err := run(t, newRegisterApp(t, app.Settings{}), lic, registerCommand(), false)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgLicenseRevoked), apperrors.GetAppError(err).Message)
	})

	t.Run("short username rejected with configured message", func(t *testing.T) {
		testApp := newRegisterApp(t, app.Settings{})
		require.NoError(t, testApp.OverrideMessage(app.MsgUsernameTooShort, "pick a longer name"))
		cmd := registerCommand()
		cmd.Username = "ab"
		err := run(t, testApp, newRegisterLicense(t, 10), cmd, false)
		require.Error(t, err)
		assert.Equal(t, "pick a longer name", apperrors.GetAppError(err).Message)
	})

	t.Run("taken username", func(t *testing.T) {
		err := run(t, newRegisterApp(t, app.Settings{}), newRegisterLicense(t, 10), registerCommand(), true)
		require.Error(t, err)
		assert.Equal(t, app.DefaultMessage(app.MsgUsernameTaken), apperrors.GetAppError(err).Message)
	})
}

func TestRegisterClient_ConsumeRace(t *testing.T) {
	ctx := context.Background()
	testApp := newRegisterApp(t, app.Settings{})
	lic := newRegisterLicense(t, 10)

	deleted := false
	clientRepo := &mockClientRepo{
		DeleteFn: func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		},
	}
	licenseRepo := &mockLicenseRepo{
		GetByKeyFn: func(_ context.Context, _ string) (*license.License, error) { return lic, nil },
		MarkConsumedFn: func(_ context.Context, _, _ uint) (bool, error) {
			// Another registration already bound the key.
			return false, nil
		},
	}
	appRepo := &mockAppRepo{
		GetByCredentialsFn: func(_ context.Context, _, _ string) (*app.App, error) { return testApp, nil },
	}
	uc := NewRegisterClientUseCase(clientRepo, licenseRepo, appRepo, fakeHasher{}, &fakeTxManager{}, logger.NewLogger())

	_, err := uc.Execute(ctx, registerCommand())
	require.Error(t, err)
	assert.Equal(t, app.DefaultMessage(app.MsgLicenseUsed), apperrors.GetAppError(err).Message)
	assert.Equal(t, 409, apperrors.GetAppError(err).Code)
	// The client insert is rolled back by the transaction, not an
	// explicit delete.
	assert.False(t, deleted)
}

func TestDeleteClient_ReleasesLicense(t *testing.T) {
	ctx := context.Background()
	testApp := newRegisterApp(t, app.Settings{})

	licenseID := uint(50)
	acct, err := client.NewClient(10, "player1", "hashed:pw", &licenseID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, acct.SetID(7))

	released := uint(0)
	clientRepo := &mockClientRepo{
		GetByIDFn: func(_ context.Context, _ uint) (*client.Client, error) { return acct, nil },
	}
	licenseRepo := &mockLicenseRepo{
		ReleaseFn: func(_ context.Context, id uint) error {
			released = id
			return nil
		},
	}
	appRepo := &mockAppRepo{
		GetByIDFn: func(_ context.Context, _ uint) (*app.App, error) { return testApp, nil },
	}
	uc := NewDeleteClientUseCase(clientRepo, appRepo, licenseRepo, &fakeTxManager{}, logger.NewLogger())

	require.NoError(t, uc.Execute(ctx, 7, 1))
	assert.Equal(t, uint(50), released)
}
