package reseller

import "context"

// Repository persists resellers. GetBy* returns (nil, nil) when no row
// matches.
type Repository interface {
	Create(ctx context.Context, r *Reseller) error
	GetByID(ctx context.Context, id uint) (*Reseller, error)
	GetByUsername(ctx context.Context, appID uint, username string) (*Reseller, error)
	ListByApp(ctx context.Context, appID uint) ([]*Reseller, error)
	CountByOwner(ctx context.Context, ownerID uint) (int, error)
	CountByApp(ctx context.Context, appID uint) (int, error)
	Update(ctx context.Context, r *Reseller) error
	Delete(ctx context.Context, id uint) error
}
