package gateway

import (
	"context"
	"fmt"
	"sync"

	"keyforge/internal/application/payment/usecases"
)

// mockSecret signs everything the mock gateway produces. MockSignature
// and MockWebhookSignature derive from it so development clients and
// tests can produce signatures that verify.
const mockSecret = "mock-gateway-secret"

// MockGateway is a deterministic in-memory provider used in development
// and tests. Orders and refunds get sequential IDs, payments always
// report captured, and nothing leaves the process.
type MockGateway struct {
	mu      sync.Mutex
	seq     int
	orders  map[string]usecases.GatewayOrder
	refunds map[string]int64 // payment ID to refunded total
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		orders:  make(map[string]usecases.GatewayOrder),
		refunds: make(map[string]int64),
	}
}

func (g *MockGateway) CreateOrder(_ context.Context, req usecases.CreateOrderRequest) (*usecases.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	order := usecases.GatewayOrder{
		ID:       fmt.Sprintf("order_mock_%06d", g.seq),
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	g.orders[order.ID] = order
	return &order, nil
}

// FetchPayment resolves mock payment IDs of the form "pay_<orderID>"
// back to their order and reports them captured.
func (g *MockGateway) FetchPayment(_ context.Context, paymentID string) (*usecases.GatewayPayment, error) {
	orderID := PaymentOrderID(paymentID)

	g.mu.Lock()
	order, ok := g.orders[orderID]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("mock payment %s not found", paymentID)
	}
	return &usecases.GatewayPayment{
		ID:      paymentID,
		OrderID: order.ID,
		Amount:  order.Amount,
		Status:  "captured",
	}, nil
}

func (g *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return hmacEqual(mockSecret, orderID+"|"+paymentID, signature)
}

func (g *MockGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return hmacEqual(mockSecret, string(body), signature)
}

func (g *MockGateway) IssueRefund(_ context.Context, paymentID string, amount int64, _ string) (*usecases.GatewayRefund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	g.refunds[paymentID] += amount
	return &usecases.GatewayRefund{
		ID:     fmt.Sprintf("rfnd_mock_%06d", g.seq),
		Amount: amount,
	}, nil
}

// MockPaymentID returns the payment ID the mock provider expects for an
// order, mirroring how a real checkout would hand one back.
func MockPaymentID(orderID string) string {
	return "pay_" + orderID
}

// PaymentOrderID inverts MockPaymentID.
func PaymentOrderID(paymentID string) string {
	if len(paymentID) > 4 && paymentID[:4] == "pay_" {
		return paymentID[4:]
	}
	return paymentID
}

// MockSignature produces the checkout signature the mock gateway will
// accept for an order/payment pair.
func MockSignature(orderID, paymentID string) string {
	return hmacHex(mockSecret, orderID+"|"+paymentID)
}

// MockWebhookSignature produces the webhook signature the mock gateway
// will accept for a body.
func MockWebhookSignature(body []byte) string {
	return hmacHex(mockSecret, string(body))
}
