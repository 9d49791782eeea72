package client

import "context"

// Filter narrows client listings.
type Filter struct {
	AppID    uint
	Banned   *bool
	Page     int
	PageSize int
}

// Stats aggregates client counts for an app.
type Stats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
	Banned int64 `json:"banned"`
}

// Repository persists clients. GetBy* returns (nil, nil) when no row
// matches. Username lookups are always app-scoped.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	GetByUsername(ctx context.Context, appID uint, username string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int64, error)
	ExistsByUsername(ctx context.Context, appID uint, username string) (bool, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uint) error
	StatsByApp(ctx context.Context, appID uint) (*Stats, error)
}
