package usecases

import "context"

// CreateOrderRequest is the gateway-side order creation payload. Amount
// is in the currency's smallest unit, Receipt carries our order ref.
type CreateOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

// GatewayOrder is the gateway's view of a created order.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// GatewayPayment is the gateway's view of a payment attempt.
type GatewayPayment struct {
	ID      string
	OrderID string
	Amount  int64
	Status  string
}

// GatewayRefund is the gateway's view of an issued refund.
type GatewayRefund struct {
	ID     string
	Amount int64
}

// PaymentGateway abstracts the upstream payment provider. One
// implementation is selected at startup from config and injected into
// every payment use case; the signature checks are pure and never hit
// the network.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
	VerifySignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
	IssueRefund(ctx context.Context, paymentID string, amount int64, reason string) (*GatewayRefund, error)
}
