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

type ValidateSessionCommand struct {
	AppID     string
	AppSecret string
	Username  string
	HWID      string
}

type ValidateSessionResult struct {
	Valid     bool      `json:"valid"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateSessionUseCase is the read-only mid-session check: ban,
// expiry and HWID. It never mutates the client record.
type ValidateSessionUseCase struct {
	clientRepo client.Repository
	appRepo    app.Repository
	logger     logger.Interface
}

func NewValidateSessionUseCase(clientRepo client.Repository, appRepo app.Repository, logger logger.Interface) *ValidateSessionUseCase {
	return &ValidateSessionUseCase{clientRepo: clientRepo, appRepo: appRepo, logger: logger}
}

func (uc *ValidateSessionUseCase) Execute(ctx context.Context, cmd ValidateSessionCommand) (*ValidateSessionResult, error) {
	targetApp, err := uc.appRepo.GetByCredentials(ctx, cmd.AppID, cmd.AppSecret)
	if err != nil {
		uc.logger.Errorw("failed to get app for session validation", "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError(app.DefaultMessage(app.MsgAppNotFound))
	}
	if targetApp.Paused() {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgAppPaused))
	}

	acct, err := uc.clientRepo.GetByUsername(ctx, targetApp.ID(), strings.TrimSpace(cmd.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if acct == nil {
		return nil, apperrors.NewUnauthorizedError(targetApp.Message(app.MsgInvalidCredentials))
	}

	now := time.Now().UTC()
	if acct.Banned() {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgClientBanned))
	}
	if acct.IsExpired(now) {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgClientExpired))
	}
	if !acct.CheckHWID(cmd.HWID, targetApp.Settings().HwidLock) {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgHwidMismatch))
	}

	return &ValidateSessionResult{Valid: true, ExpiresAt: acct.ExpiresAt()}, nil
}
