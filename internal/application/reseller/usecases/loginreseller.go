package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/shared/constants"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type LoginResellerCommand struct {
	AppID    string
	Username string
	Password string
}

type LoginResellerResult struct {
	Reseller *reseller.Reseller
	Tokens   *TokenPair
}

// LoginResellerUseCase authenticates a reseller within its app.
// Unknown app, unknown username and wrong password all fail with the
// same message; an inactive reseller is rejected explicitly.
type LoginResellerUseCase struct {
	resellerRepo reseller.Repository
	appRepo      app.Repository
	hasher       PasswordHasher
	tokens       TokenIssuer
	logger       logger.Interface
}

func NewLoginResellerUseCase(
	resellerRepo reseller.Repository,
	appRepo app.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginResellerUseCase {
	return &LoginResellerUseCase{
		resellerRepo: resellerRepo,
		appRepo:      appRepo,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

func (uc *LoginResellerUseCase) Execute(ctx context.Context, cmd LoginResellerCommand) (*LoginResellerResult, error) {
	targetApp, err := uc.appRepo.GetByAppID(ctx, cmd.AppID)
	if err != nil {
		uc.logger.Errorw("failed to get app for reseller login", "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	rs, err := uc.resellerRepo.GetByUsername(ctx, targetApp.ID(), cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	if rs == nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	if err := uc.hasher.Verify(cmd.Password, rs.PasswordHash()); err != nil {
		uc.logger.Warnw("reseller login failed", "reseller_id", rs.ID())
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if !rs.Active() {
		return nil, apperrors.NewForbiddenError("reseller account is deactivated")
	}

	tokens, err := uc.tokens.Issue(rs.ID(), constants.RoleReseller)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "reseller_id", rs.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("reseller logged in", "reseller_id", rs.ID(), "app_id", targetApp.ID())
	return &LoginResellerResult{Reseller: rs, Tokens: tokens}, nil
}
