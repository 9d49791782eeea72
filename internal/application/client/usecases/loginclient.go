package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/client"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type LoginClientCommand struct {
	AppID     string
	AppSecret string
	Username  string
	Password  string
	HWID      string
}

type LoginClientResult struct {
	Client    *client.Client
	ExpiresAt time.Time
}

// LoginClientUseCase authenticates a client account. The checks run in
// a fixed order: app paused, unknown username, wrong password, banned,
// expired, HWID. When the app's hwidLock is off the supplied HWID is
// adopted or updated on every login; when on, a stored HWID must match.
type LoginClientUseCase struct {
	clientRepo client.Repository
	appRepo    app.Repository
	hasher     PasswordHasher
	logger     logger.Interface
}

func NewLoginClientUseCase(
	clientRepo client.Repository,
	appRepo app.Repository,
	hasher PasswordHasher,
	logger logger.Interface,
) *LoginClientUseCase {
	return &LoginClientUseCase{
		clientRepo: clientRepo,
		appRepo:    appRepo,
		hasher:     hasher,
		logger:     logger,
	}
}

func (uc *LoginClientUseCase) Execute(ctx context.Context, cmd LoginClientCommand) (*LoginClientResult, error) {
	targetApp, err := uc.appRepo.GetByCredentials(ctx, cmd.AppID, cmd.AppSecret)
	if err != nil {
		uc.logger.Errorw("failed to get app for client login", "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError(app.DefaultMessage(app.MsgAppNotFound))
	}
	if targetApp.Paused() {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgAppPaused))
	}

	username := strings.TrimSpace(cmd.Username)
	acct, err := uc.clientRepo.GetByUsername(ctx, targetApp.ID(), username)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if acct == nil {
		return nil, apperrors.NewUnauthorizedError(targetApp.Message(app.MsgInvalidCredentials))
	}
	if err := uc.hasher.Verify(cmd.Password, acct.PasswordHash()); err != nil {
		return nil, apperrors.NewUnauthorizedError(targetApp.Message(app.MsgInvalidCredentials))
	}

	now := time.Now().UTC()
	if acct.Banned() {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgClientBanned))
	}
	if acct.IsExpired(now) {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgClientExpired))
	}

	hwidLock := targetApp.Settings().HwidLock
	if hwidLock && cmd.HWID == "" {
		return nil, apperrors.NewValidationError(targetApp.Message(app.MsgHwidRequired))
	}
	if !acct.CheckHWID(cmd.HWID, hwidLock) {
		uc.logger.Warnw("client HWID mismatch", "client_id", acct.ID(), "app_id", targetApp.ID())
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgHwidMismatch))
	}
	acct.AdoptHWID(cmd.HWID)

	acct.RecordLogin(now)
	if err := uc.clientRepo.Update(ctx, acct); err != nil {
		uc.logger.Errorw("failed to record client login", "client_id", acct.ID(), "error", err)
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	uc.logger.Infow("client logged in", "client_id", acct.ID(), "app_id", targetApp.ID())
	return &LoginClientResult{Client: acct, ExpiresAt: acct.ExpiresAt()}, nil
}
