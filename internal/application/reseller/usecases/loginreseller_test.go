package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/reseller"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

func TestLoginReseller(t *testing.T) {
	ctx := context.Background()
	testApp := newTestApp(t, 10, 1)

	appRepo := &mockAppRepo{
		GetByAppIDFn: func(_ context.Context, appID string) (*app.App, error) {
			if appID == testApp.AppID() {
				return testApp, nil
			}
			return nil, nil
		},
	}

	newRepo := func(rs *reseller.Reseller) *mockResellerRepo {
		return &mockResellerRepo{
			GetByUsernameFn: func(_ context.Context, appID uint, username string) (*reseller.Reseller, error) {
				if rs != nil && appID == rs.AppID() && username == rs.Username() {
					return rs, nil
				}
				return nil, nil
			},
		}
	}

	t.Run("issues reseller tokens for valid credentials", func(t *testing.T) {
		rs := newTestReseller(t, 5, 10, 100)
		issuer := &fakeIssuer{}
		uc := NewLoginResellerUseCase(newRepo(rs), appRepo, fakeHasher{}, issuer, logger.NewLogger())

		result, err := uc.Execute(ctx, LoginResellerCommand{
			AppID:    testApp.AppID(),
			Username: "dealer",
			Password: "dealerpass",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(5), result.Reseller.ID())
		assert.Equal(t, "access", result.Tokens.AccessToken)
		assert.Equal(t, uint(5), issuer.lastSubject)
		assert.Equal(t, "reseller", issuer.lastRole)
	})

	t.Run("unknown app, unknown username and wrong password share one message", func(t *testing.T) {
		rs := newTestReseller(t, 5, 10, 100)
		uc := NewLoginResellerUseCase(newRepo(rs), appRepo, fakeHasher{}, &fakeIssuer{}, logger.NewLogger())

		_, badApp := uc.Execute(ctx, LoginResellerCommand{AppID: "missing-app-id-00", Username: "dealer", Password: "dealerpass"})
		_, badUser := uc.Execute(ctx, LoginResellerCommand{AppID: testApp.AppID(), Username: "nobody", Password: "dealerpass"})
		_, badPass := uc.Execute(ctx, LoginResellerCommand{AppID: testApp.AppID(), Username: "dealer", Password: "wrong"})

		require.Error(t, badApp)
		require.Error(t, badUser)
		require.Error(t, badPass)
		assert.Equal(t, badApp.Error(), badUser.Error())
		assert.Equal(t, badUser.Error(), badPass.Error())
	})

	t.Run("deactivated reseller is rejected explicitly", func(t *testing.T) {
		rs := newTestReseller(t, 5, 10, 100)
		rs.SetActive(false)
		uc := NewLoginResellerUseCase(newRepo(rs), appRepo, fakeHasher{}, &fakeIssuer{}, logger.NewLogger())

		_, err := uc.Execute(ctx, LoginResellerCommand{
			AppID:    testApp.AppID(),
			Username: "dealer",
			Password: "dealerpass",
		})

		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}
