package payment

import "context"

// Filter narrows payment listings.
type Filter struct {
	UserID   uint
	Status   *Status
	Page     int
	PageSize int
}

// Analytics summarizes an owner's payment history.
type Analytics struct {
	TotalPayments  int64 `json:"total_payments"`
	TotalCaptured  int64 `json:"total_captured"`
	TotalAmount    int64 `json:"total_amount"`
	TotalRefunded  int64 `json:"total_refunded"`
	FailedPayments int64 `json:"failed_payments"`
}

// Repository persists payments. GetBy* returns (nil, nil) when no row
// matches.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetByOrderRef(ctx context.Context, orderRef string) (*Payment, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Payment, error)
	List(ctx context.Context, filter Filter) ([]*Payment, int64, error)
	Update(ctx context.Context, p *Payment) error
	AnalyticsByUser(ctx context.Context, userID uint) (*Analytics, error)
}
