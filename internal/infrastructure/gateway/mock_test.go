package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/application/payment/usecases"
)

func TestMockGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	gw := NewMockGateway()

	order, err := gw.CreateOrder(ctx, usecases.CreateOrderRequest{Amount: 49900, Currency: "INR", Receipt: "ord_x"})
	require.NoError(t, err)
	assert.Equal(t, int64(49900), order.Amount)

	paymentID := MockPaymentID(order.ID)
	fetched, err := gw.FetchPayment(ctx, paymentID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.OrderID)
	assert.Equal(t, "captured", fetched.Status)

	sig := MockSignature(order.ID, paymentID)
	assert.True(t, gw.VerifySignature(order.ID, paymentID, sig))
	assert.False(t, gw.VerifySignature(order.ID, paymentID, "tampered"))

	body := []byte(`{"event":"payment.captured"}`)
	assert.True(t, gw.VerifyWebhookSignature(body, MockWebhookSignature(body)))
	assert.False(t, gw.VerifyWebhookSignature(body, "tampered"))

	refund, err := gw.IssueRefund(ctx, paymentID, 100, "test")
	require.NoError(t, err)
	assert.NotEmpty(t, refund.ID)
}

func TestRazorpaySignatureVerification(t *testing.T) {
	gw := &RazorpayGateway{keySecret: "secret", webhookSecret: "whsec"}

	sig := hmacHex("secret", "order_1|pay_1")
	assert.True(t, gw.VerifySignature("order_1", "pay_1", sig))
	assert.False(t, gw.VerifySignature("order_1", "pay_2", sig))

	body := []byte(`{"event":"payment.captured"}`)
	assert.True(t, gw.VerifyWebhookSignature(body, hmacHex("whsec", string(body))))
	assert.False(t, gw.VerifyWebhookSignature(body, hmacHex("wrong", string(body))))
}

func TestHmacEqual_EmptySecretNeverVerifies(t *testing.T) {
	assert.False(t, hmacEqual("", "msg", hmacHex("", "msg")))
}
