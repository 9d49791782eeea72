package user

import "context"

// Repository persists owner accounts. GetBy* returns (nil, nil) when no
// row matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePlan(ctx context.Context, user *User) error
}
