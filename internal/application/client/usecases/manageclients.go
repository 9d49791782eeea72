package usecases

import (
	"context"
	"fmt"
	"time"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/client"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

// loadOwnedClient resolves a client and verifies the calling owner
// controls its app.
func loadOwnedClient(
	ctx context.Context,
	clientRepo client.Repository,
	appRepo app.Repository,
	clientID, ownerID uint,
) (*client.Client, error) {
	acct, err := clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if acct == nil {
		return nil, apperrors.NewNotFoundError("client not found")
	}

	targetApp, err := appRepo.GetByID(ctx, acct.AppID())
	if err != nil {
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}
	if !targetApp.IsOwnedBy(ownerID) {
		return nil, apperrors.NewForbiddenError("client belongs to another owner")
	}
	return acct, nil
}

type CreateDirectClientCommand struct {
	OwnerID       uint
	AppID         uint
	Username      string
	Password      string
	ExpiresInDays int
}

// CreateDirectClientUseCase creates a client account without consuming
// a license; the owner supplies the expiry directly.
type CreateDirectClientUseCase struct {
	clientRepo client.Repository
	appRepo    app.Repository
	hasher     PasswordHasher
	logger     logger.Interface
}

func NewCreateDirectClientUseCase(
	clientRepo client.Repository,
	appRepo app.Repository,
	hasher PasswordHasher,
	logger logger.Interface,
) *CreateDirectClientUseCase {
	return &CreateDirectClientUseCase{
		clientRepo: clientRepo,
		appRepo:    appRepo,
		hasher:     hasher,
		logger:     logger,
	}
}

func (uc *CreateDirectClientUseCase) Execute(ctx context.Context, cmd CreateDirectClientCommand) (*client.Client, error) {
	targetApp, err := uc.appRepo.GetByID(ctx, cmd.AppID)
	if err != nil {
		uc.logger.Errorw("failed to get app", "id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, apperrors.NewNotFoundError("app not found")
	}
	if !targetApp.IsOwnedBy(cmd.OwnerID) {
		return nil, apperrors.NewForbiddenError("app belongs to another owner")
	}
	if cmd.ExpiresInDays <= 0 {
		return nil, apperrors.NewValidationError("expiry days must be positive")
	}

	taken, err := uc.clientRepo.ExistsByUsername(ctx, cmd.AppID, cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, apperrors.NewConflictError("username is already taken in this app")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, cmd.ExpiresInDays)
	acct, err := client.NewClient(cmd.AppID, cmd.Username, hash, nil, expiresAt)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.clientRepo.Create(ctx, acct); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("username is already taken in this app")
		}
		uc.logger.Errorw("failed to create client", "app_id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	uc.logger.Infow("client created directly", "client_id", acct.ID(), "app_id", cmd.AppID)
	return acct, nil
}

type ListClientsCommand struct {
	OwnerID  uint
	AppID    uint
	Banned   *bool
	Page     int
	PageSize int
}

// ListClientsUseCase pages through an app's clients for its owner.
type ListClientsUseCase struct {
	clientRepo client.Repository
	appRepo    app.Repository
	logger     logger.Interface
}

func NewListClientsUseCase(clientRepo client.Repository, appRepo app.Repository, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo, appRepo: appRepo, logger: logger}
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, cmd ListClientsCommand) ([]*client.Client, int64, error) {
	targetApp, err := uc.appRepo.GetByID(ctx, cmd.AppID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get app: %w", err)
	}
	if targetApp == nil {
		return nil, 0, apperrors.NewNotFoundError("app not found")
	}
	if !targetApp.IsOwnedBy(cmd.OwnerID) {
		return nil, 0, apperrors.NewForbiddenError("app belongs to another owner")
	}

	clients, total, err := uc.clientRepo.List(ctx, client.Filter{
		AppID:    targetApp.ID(),
		Banned:   cmd.Banned,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list clients", "app_id", cmd.AppID, "error", err)
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

// ToggleBanClientUseCase flips a client's ban flag.
type ToggleBanClientUseCase struct {
	clientRepo client.Repository
	appRepo    app.Repository
	logger     logger.Interface
}

func NewToggleBanClientUseCase(clientRepo client.Repository, appRepo app.Repository, logger logger.Interface) *ToggleBanClientUseCase {
	return &ToggleBanClientUseCase{clientRepo: clientRepo, appRepo: appRepo, logger: logger}
}

func (uc *ToggleBanClientUseCase) Execute(ctx context.Context, clientID, ownerID uint) (*client.Client, error) {
	acct, err := loadOwnedClient(ctx, uc.clientRepo, uc.appRepo, clientID, ownerID)
	if err != nil {
		return nil, err
	}

	acct.SetBanned(!acct.Banned())
	if err := uc.clientRepo.Update(ctx, acct); err != nil {
		uc.logger.Errorw("failed to update client", "id", clientID, "error", err)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	uc.logger.Infow("client ban toggled", "id", clientID, "banned", acct.Banned())
	return acct, nil
}

// ExtendClientUseCase adds days to a client's expiry.
type ExtendClientUseCase struct {
	clientRepo client.Repository
	appRepo    app.Repository
	logger     logger.Interface
}

func NewExtendClientUseCase(clientRepo client.Repository, appRepo app.Repository, logger logger.Interface) *ExtendClientUseCase {
	return &ExtendClientUseCase{clientRepo: clientRepo, appRepo: appRepo, logger: logger}
}

func (uc *ExtendClientUseCase) Execute(ctx context.Context, clientID, ownerID uint, days int) (*client.Client, error) {
	acct, err := loadOwnedClient(ctx, uc.clientRepo, uc.appRepo, clientID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := acct.ExtendExpiry(days); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.clientRepo.Update(ctx, acct); err != nil {
		uc.logger.Errorw("failed to update client", "id", clientID, "error", err)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	uc.logger.Infow("client expiry extended", "id", clientID, "days", days)
	return acct, nil
}

// ResetClientHWIDUseCase clears the stored HWID so the next login
// rebinds to a new machine.
type ResetClientHWIDUseCase struct {
	clientRepo client.Repository
	appRepo    app.Repository
	logger     logger.Interface
}

func NewResetClientHWIDUseCase(clientRepo client.Repository, appRepo app.Repository, logger logger.Interface) *ResetClientHWIDUseCase {
	return &ResetClientHWIDUseCase{clientRepo: clientRepo, appRepo: appRepo, logger: logger}
}

func (uc *ResetClientHWIDUseCase) Execute(ctx context.Context, clientID, ownerID uint) (*client.Client, error) {
	acct, err := loadOwnedClient(ctx, uc.clientRepo, uc.appRepo, clientID, ownerID)
	if err != nil {
		return nil, err
	}

	acct.ResetHWID()
	if err := uc.clientRepo.Update(ctx, acct); err != nil {
		uc.logger.Errorw("failed to update client", "id", clientID, "error", err)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	uc.logger.Infow("client HWID reset", "id", clientID)
	return acct, nil
}

// DeleteClientUseCase removes a client and releases the license it
// consumed at registration, freeing the key for reuse.
type DeleteClientUseCase struct {
	clientRepo  client.Repository
	appRepo     app.Repository
	licenseRepo LicenseReleaser
	txManager   TransactionManager
	logger      logger.Interface
}

// LicenseReleaser is the slice of the license repository the delete
// path needs.
type LicenseReleaser interface {
	Release(ctx context.Context, licenseID uint) error
}

func NewDeleteClientUseCase(
	clientRepo client.Repository,
	appRepo app.Repository,
	licenseRepo LicenseReleaser,
	txManager TransactionManager,
	logger logger.Interface,
) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		clientRepo:  clientRepo,
		appRepo:     appRepo,
		licenseRepo: licenseRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *DeleteClientUseCase) Execute(ctx context.Context, clientID, ownerID uint) error {
	acct, err := loadOwnedClient(ctx, uc.clientRepo, uc.appRepo, clientID, ownerID)
	if err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.clientRepo.Delete(txCtx, acct.ID()); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}
		if licenseID := acct.LicenseID(); licenseID != nil {
			if err := uc.licenseRepo.Release(txCtx, *licenseID); err != nil {
				return fmt.Errorf("failed to release license: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to delete client", "id", clientID, "error", err)
		return err
	}

	uc.logger.Infow("client deleted", "id", clientID)
	return nil
}
