package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/client"
	"keyforge/internal/domain/license"
	"keyforge/internal/shared/constants"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type RegisterClientCommand struct {
	AppID      string
	AppSecret  string
	LicenseKey string
	Username   string
	Password   string
	HWID       string
}

type RegisterClientResult struct {
	Client    *client.Client
	ExpiresAt time.Time
}

// RegisterClientUseCase redeems a license key into a client account.
// The checks run in a fixed order and every failure renders the app's
// configured message; nothing is written until all checks pass, and the
// write itself pairs the insert with a conditional consume in one
// transaction.
type RegisterClientUseCase struct {
	clientRepo  client.Repository
	licenseRepo license.Repository
	appRepo     app.Repository
	hasher      PasswordHasher
	txManager   TransactionManager
	logger      logger.Interface
}

func NewRegisterClientUseCase(
	clientRepo client.Repository,
	licenseRepo license.Repository,
	appRepo app.Repository,
	hasher PasswordHasher,
	txManager TransactionManager,
	logger logger.Interface,
) *RegisterClientUseCase {
	return &RegisterClientUseCase{
		clientRepo:  clientRepo,
		licenseRepo: licenseRepo,
		appRepo:     appRepo,
		hasher:      hasher,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *RegisterClientUseCase) Execute(ctx context.Context, cmd RegisterClientCommand) (*RegisterClientResult, error) {
	targetApp, err := uc.appRepo.GetByCredentials(ctx, cmd.AppID, cmd.AppSecret)
	if err != nil {
		uc.logger.Errorw("failed to get app for registration", "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError(app.DefaultMessage(app.MsgAppNotFound))
	}

	key := strings.ToLower(strings.TrimSpace(cmd.LicenseKey))
	lic, err := uc.licenseRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	if lic == nil || lic.AppID() != targetApp.ID() {
		return nil, apperrors.NewNotFoundError(targetApp.Message(app.MsgLicenseNotFound))
	}
	if targetApp.Paused() {
		return nil, apperrors.NewForbiddenError(targetApp.Message(app.MsgAppPaused))
	}

	now := time.Now().UTC()
	if err := lic.CanBeConsumed(now); err != nil {
		return nil, uc.licenseRejection(targetApp, err)
	}

	username := strings.TrimSpace(cmd.Username)
	if len(username) < constants.MinClientUsernameLength {
		return nil, apperrors.NewValidationError(targetApp.Message(app.MsgUsernameTooShort))
	}
	taken, err := uc.clientRepo.ExistsByUsername(ctx, targetApp.ID(), username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, apperrors.NewConflictError(targetApp.Message(app.MsgUsernameTaken))
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	licenseID := lic.ID()
	newClient, err := client.NewClient(targetApp.ID(), username, hash, &licenseID, lic.ExpiresAt())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.HWID != "" {
		newClient.AdoptHWID(cmd.HWID)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.clientRepo.Create(txCtx, newClient); err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.NewConflictError(targetApp.Message(app.MsgUsernameTaken))
			}
			return fmt.Errorf("failed to create client: %w", err)
		}

		consumed, err := uc.licenseRepo.MarkConsumed(txCtx, lic.ID(), newClient.ID())
		if err != nil {
			return err
		}
		if !consumed {
			// Another registration won the race between our read and the
			// conditional update; roll the client insert back.
			return apperrors.NewConflictError(targetApp.Message(app.MsgLicenseUsed))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("client registered",
		"client_id", newClient.ID(),
		"app_id", targetApp.ID(),
		"license_id", lic.ID(),
	)
	return &RegisterClientResult{Client: newClient, ExpiresAt: newClient.ExpiresAt()}, nil
}

// licenseRejection maps a consumability failure onto the app's
// configured message, preserving the check order inside CanBeConsumed.
func (uc *RegisterClientUseCase) licenseRejection(targetApp *app.App, err error) error {
	switch err {
	case license.ErrAlreadyUsed:
		return apperrors.NewConflictError(targetApp.Message(app.MsgLicenseUsed))
	case license.ErrBanned:
		return apperrors.NewForbiddenError(targetApp.Message(app.MsgLicenseBanned))
	case license.ErrRevoked:
		return apperrors.NewForbiddenError(targetApp.Message(app.MsgLicenseRevoked))
	case license.ErrExpired:
		return apperrors.NewForbiddenError(targetApp.Message(app.MsgLicenseExpired))
	default:
		return apperrors.NewForbiddenError(targetApp.Message(app.MsgLicenseNotFound))
	}
}
