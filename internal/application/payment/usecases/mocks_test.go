package usecases

import (
	"context"
	"time"

	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/user"
)

// mockPaymentRepo is a function-field fake; nil funcs fall back to
// empty results.
type mockPaymentRepo struct {
	CreateFn              func(ctx context.Context, p *payment.Payment) error
	GetByIDFn             func(ctx context.Context, id uint) (*payment.Payment, error)
	GetByOrderRefFn       func(ctx context.Context, orderRef string) (*payment.Payment, error)
	GetByGatewayOrderIDFn func(ctx context.Context, gatewayOrderID string) (*payment.Payment, error)
	ListFn                func(ctx context.Context, filter payment.Filter) ([]*payment.Payment, int64, error)
	UpdateFn              func(ctx context.Context, p *payment.Payment) error
	AnalyticsByUserFn     func(ctx context.Context, userID uint) (*payment.Analytics, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return p.SetID(1)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPaymentRepo) GetByOrderRef(ctx context.Context, orderRef string) (*payment.Payment, error) {
	if m.GetByOrderRefFn != nil {
		return m.GetByOrderRefFn(ctx, orderRef)
	}
	return nil, nil
}

func (m *mockPaymentRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Payment, error) {
	if m.GetByGatewayOrderIDFn != nil {
		return m.GetByGatewayOrderIDFn(ctx, gatewayOrderID)
	}
	return nil, nil
}

func (m *mockPaymentRepo) List(ctx context.Context, filter payment.Filter) ([]*payment.Payment, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockPaymentRepo) Update(ctx context.Context, p *payment.Payment) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	return nil
}

func (m *mockPaymentRepo) AnalyticsByUser(ctx context.Context, userID uint) (*payment.Analytics, error) {
	if m.AnalyticsByUserFn != nil {
		return m.AnalyticsByUserFn(ctx, userID)
	}
	return &payment.Analytics{}, nil
}

type mockUserRepo struct {
	user.Repository
	GetByIDFn    func(ctx context.Context, id uint) (*user.User, error)
	UpdatePlanFn func(ctx context.Context, u *user.User) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdatePlan(ctx context.Context, u *user.User) error {
	if m.UpdatePlanFn != nil {
		return m.UpdatePlanFn(ctx, u)
	}
	return nil
}

type mockGateway struct {
	CreateOrderFn            func(ctx context.Context, req CreateOrderRequest) (*GatewayOrder, error)
	FetchPaymentFn           func(ctx context.Context, paymentID string) (*GatewayPayment, error)
	VerifySignatureFn        func(orderID, paymentID, signature string) bool
	VerifyWebhookSignatureFn func(body []byte, signature string) bool
	IssueRefundFn            func(ctx context.Context, paymentID string, amount int64, reason string) (*GatewayRefund, error)
}

func (m *mockGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*GatewayOrder, error) {
	if m.CreateOrderFn != nil {
		return m.CreateOrderFn(ctx, req)
	}
	return &GatewayOrder{ID: "order_test_1", Amount: req.Amount, Currency: req.Currency}, nil
}

func (m *mockGateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	if m.FetchPaymentFn != nil {
		return m.FetchPaymentFn(ctx, paymentID)
	}
	return &GatewayPayment{ID: paymentID, Status: "captured"}, nil
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if m.VerifySignatureFn != nil {
		return m.VerifySignatureFn(orderID, paymentID, signature)
	}
	return true
}

func (m *mockGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if m.VerifyWebhookSignatureFn != nil {
		return m.VerifyWebhookSignatureFn(body, signature)
	}
	return true
}

func (m *mockGateway) IssueRefund(ctx context.Context, paymentID string, amount int64, reason string) (*GatewayRefund, error) {
	if m.IssueRefundFn != nil {
		return m.IssueRefundFn(ctx, paymentID, amount, reason)
	}
	return &GatewayRefund{ID: "rfnd_test_1", Amount: amount}, nil
}

func testOwner(id uint, plan user.Plan) *user.User {
	now := time.Now().UTC()
	u, err := user.ReconstructUser(id, "owner@example.com", "owner", "hash", plan, now, now)
	if err != nil {
		panic(err)
	}
	return u
}

func testPayment(id uint, userID uint, amount int64, status payment.Status, refunds []payment.Refund) *payment.Payment {
	now := time.Now().UTC()
	gatewayPaymentID := ""
	if status != payment.StatusCreated && status != payment.StatusFailed {
		gatewayPaymentID = "pay_test_1"
	}
	p, err := payment.ReconstructPayment(id, "ord_test", userID, "order_test_1", gatewayPaymentID,
		amount, "INR", "", status, refunds, now, now)
	if err != nil {
		panic(err)
	}
	return p
}
