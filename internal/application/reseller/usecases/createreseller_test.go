package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/domain/user"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

func TestCreateReseller(t *testing.T) {
	ctx := context.Background()
	testApp := newTestApp(t, 10, 1)

	appRepo := &mockAppRepo{
		GetByIDFn: func(_ context.Context, id uint) (*app.App, error) { return testApp, nil },
	}

	t.Run("free owner cannot create resellers", func(t *testing.T) {
		userRepo := &mockUserRepo{
			GetByIDFn: func(_ context.Context, id uint) (*user.User, error) {
				return newTestOwner(t, 1, false), nil
			},
		}
		uc := NewCreateResellerUseCase(&mockResellerRepo{}, appRepo, userRepo, fakeHasher{}, logger.NewLogger())

		_, err := uc.Execute(ctx, CreateResellerCommand{
			OwnerID:      1,
			AppID:        10,
			Username:     "dealer",
			Password:     "dealerpass",
			LicenseLimit: 50,
		})

		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	premiumRepo := &mockUserRepo{
		GetByIDFn: func(_ context.Context, id uint) (*user.User, error) {
			return newTestOwner(t, 1, true), nil
		},
	}

	t.Run("premium owner creates a reseller", func(t *testing.T) {
		var created *reseller.Reseller
		resellerRepo := &mockResellerRepo{
			CreateFn: func(_ context.Context, r *reseller.Reseller) error {
				created = r
				return r.SetID(5)
			},
		}
		uc := NewCreateResellerUseCase(resellerRepo, appRepo, premiumRepo, fakeHasher{}, logger.NewLogger())

		result, err := uc.Execute(ctx, CreateResellerCommand{
			OwnerID:        1,
			AppID:          10,
			Username:       "dealer",
			Password:       "dealerpass",
			LicenseLimit:   100,
			AllowedActions: reseller.AllowedActions{Create: true, BanUnban: true, Delete: true},
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(5), result.ID())
		assert.Equal(t, 100, result.LicenseLimit())
		assert.Equal(t, "hashed:dealerpass", result.PasswordHash())
		assert.True(t, result.Active())
		// Delete stays owner-only no matter what the request asked for.
		assert.False(t, result.AllowedActions().Delete)
	})

	t.Run("rejects an app owned by someone else", func(t *testing.T) {
		foreignAppRepo := &mockAppRepo{
			GetByIDFn: func(_ context.Context, id uint) (*app.App, error) {
				return newTestApp(t, 10, 99), nil
			},
		}
		uc := NewCreateResellerUseCase(&mockResellerRepo{}, foreignAppRepo, premiumRepo, fakeHasher{}, logger.NewLogger())

		_, err := uc.Execute(ctx, CreateResellerCommand{
			OwnerID:      1,
			AppID:        10,
			Username:     "dealer",
			Password:     "dealerpass",
			LicenseLimit: 10,
		})

		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("rejects a duplicate username within the app", func(t *testing.T) {
		resellerRepo := &mockResellerRepo{
			GetByUsernameFn: func(_ context.Context, appID uint, username string) (*reseller.Reseller, error) {
				return newTestReseller(t, 3, appID, 10), nil
			},
		}
		uc := NewCreateResellerUseCase(resellerRepo, appRepo, premiumRepo, fakeHasher{}, logger.NewLogger())

		_, err := uc.Execute(ctx, CreateResellerCommand{
			OwnerID:      1,
			AppID:        10,
			Username:     "dealer",
			Password:     "dealerpass",
			LicenseLimit: 10,
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})
}
