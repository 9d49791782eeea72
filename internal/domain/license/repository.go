package license

import "context"

// Filter narrows license listings.
type Filter struct {
	AppID       *uint
	ResellerID  *uint
	Status      *Status
	Consumed    *bool
	CreatorType *CreatorType
	Page        int
	PageSize    int
}

// Stats aggregates license counts for an app or reseller.
type Stats struct {
	Total   int64 `json:"total"`
	Used    int64 `json:"used"`
	Active  int64 `json:"active"`
	Banned  int64 `json:"banned"`
	Revoked int64 `json:"revoked"`
	Expired int64 `json:"expired"`
}

// Repository persists licenses. GetBy* returns (nil, nil) when no row
// matches.
type Repository interface {
	Create(ctx context.Context, lic *License) error
	GetByID(ctx context.Context, id uint) (*License, error)
	GetByKey(ctx context.Context, key string) (*License, error)
	List(ctx context.Context, filter Filter) ([]*License, int64, error)
	CountByApp(ctx context.Context, appID uint) (int, error)
	CountActiveByReseller(ctx context.Context, resellerID uint) (int, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	Update(ctx context.Context, lic *License) error
	// MarkConsumed performs a conditional update: it binds clientID only
	// if the row is still unconsumed, and reports whether the guard
	// matched. This is the atomicity point for concurrent redemptions.
	MarkConsumed(ctx context.Context, licenseID, clientID uint) (bool, error)
	// Release clears the consumption state (client account deleted).
	Release(ctx context.Context, licenseID uint) error
	Delete(ctx context.Context, id uint) error
	DeleteBatch(ctx context.Context, ids []uint) (int64, error)
	StatsByApp(ctx context.Context, appID uint) (*Stats, error)
	StatsByReseller(ctx context.Context, resellerID uint) (*Stats, error)
}
