package app

import "context"

// Repository persists apps. GetBy* returns (nil, nil) when no row
// matches. Delete cascades to the app's licenses, resellers and clients.
type Repository interface {
	Create(ctx context.Context, app *App) error
	GetByID(ctx context.Context, id uint) (*App, error)
	GetByAppID(ctx context.Context, appID string) (*App, error)
	GetByCredentials(ctx context.Context, appID, appSecret string) (*App, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*App, error)
	CountByOwner(ctx context.Context, ownerID uint) (int, error)
	ExistsByAppID(ctx context.Context, appID string) (bool, error)
	Update(ctx context.Context, app *App) error
	Delete(ctx context.Context, id uint) error
}
