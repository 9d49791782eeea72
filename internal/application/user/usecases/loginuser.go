package usecases

import (
	"context"
	"fmt"
	"strings"

	"keyforge/internal/domain/user"
	"keyforge/internal/shared/constants"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	User   *user.User
	Tokens *TokenPair
}

// LoginUserUseCase authenticates an owner by email and password. Unknown
// email and wrong password fail with the same message.
type LoginUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	owner, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user for login", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if err := uc.hasher.Verify(cmd.Password, owner.PasswordHash()); err != nil {
		uc.logger.Warnw("owner login failed", "user_id", owner.ID())
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	tokens, err := uc.tokens.Issue(owner.ID(), constants.RoleOwner)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", owner.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("owner logged in", "user_id", owner.ID())
	return &LoginUserResult{User: owner, Tokens: tokens}, nil
}
