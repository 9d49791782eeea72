package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/user"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

func TestLoginUser(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			if email == "owner@example.com" {
				return existingOwner(t, 3, email, "owner"), nil
			}
			return nil, nil
		},
	}

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		issuer := &fakeIssuer{}
		uc := NewLoginUserUseCase(repo, fakeHasher{}, issuer, logger.NewLogger())

		result, err := uc.Execute(context.Background(), LoginUserCommand{
			Email:    "  Owner@Example.com ",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(3), result.User.ID())
		assert.Equal(t, "refresh", result.Tokens.RefreshToken)
		assert.Equal(t, uint(3), issuer.lastSubject)
		assert.Equal(t, "owner", issuer.lastRole)
	})

	t.Run("unknown email and wrong password share one message", func(t *testing.T) {
		uc := NewLoginUserUseCase(repo, fakeHasher{}, &fakeIssuer{}, logger.NewLogger())

		_, unknownErr := uc.Execute(context.Background(), LoginUserCommand{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		_, wrongErr := uc.Execute(context.Background(), LoginUserCommand{
			Email:    "owner@example.com",
			Password: "not-the-password",
		})

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())

		appErr := apperrors.GetAppError(wrongErr)
		require.NotNil(t, appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}
