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

type RegisterUserCommand struct {
	Email    string
	Username string
	Password string
}

type RegisterUserResult struct {
	User   *user.User
	Tokens *TokenPair
}

// RegisterUserUseCase creates an owner account on the free plan and
// logs it in.
type RegisterUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email is already registered")
	}

	existing, err = uc.userRepo.GetByUsername(ctx, strings.TrimSpace(cmd.Username))
	if err != nil {
		uc.logger.Errorw("failed to check username", "error", err)
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("username is already taken")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	newUser, err := user.NewUser(email, cmd.Username, hash)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("email or username is already taken")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := uc.tokens.Issue(newUser.ID(), constants.RoleOwner)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", newUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("owner registered", "user_id", newUser.ID(), "email", email)
	return &RegisterUserResult{User: newUser, Tokens: tokens}, nil
}
