package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capturedPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(1, "ord_abc123def456", "order_gw1", 49900, "INR", "")
	require.NoError(t, err)
	require.NoError(t, p.SetID(1))
	require.NoError(t, p.MarkCaptured("pay_gw1"))
	return p
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(1, "ord_abc", "order_gw1", 49900, "INR", "LAUNCH10")
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, p.Status())
	assert.Equal(t, "LAUNCH10", p.Coupon())
	assert.False(t, p.IsCaptured())

	_, err = NewPayment(0, "ord_abc", "order_gw1", 49900, "INR", "")
	assert.Error(t, err)

	_, err = NewPayment(1, "ord_abc", "order_gw1", 0, "INR", "")
	assert.Error(t, err)

	_, err = NewPayment(1, "ord_abc", "", 49900, "INR", "")
	assert.Error(t, err)
}

func TestMarkCapturedIdempotent(t *testing.T) {
	p := capturedPayment(t)
	assert.Equal(t, StatusCaptured, p.Status())
	assert.Equal(t, "pay_gw1", p.GatewayPaymentID())

	// Webhook replay: no error, no change
	require.NoError(t, p.MarkCaptured("pay_gw2"))
	assert.Equal(t, "pay_gw1", p.GatewayPaymentID(), "replay must not rebind the payment ID")
}

func TestMarkFailed(t *testing.T) {
	p, err := NewPayment(1, "ord_abc", "order_gw1", 49900, "INR", "")
	require.NoError(t, err)

	p.MarkFailed()
	assert.Equal(t, StatusFailed, p.Status())

	// A failed payment cannot be captured afterwards
	assert.Error(t, p.MarkCaptured("pay_gw1"))

	// And failing a captured payment is ignored
	p2 := capturedPayment(t)
	p2.MarkFailed()
	assert.Equal(t, StatusCaptured, p2.Status())
}

func TestAddRefund(t *testing.T) {
	p := capturedPayment(t)

	require.NoError(t, p.AddRefund("rfnd_1", 20000, "partial goodwill"))
	assert.Equal(t, StatusPartiallyRefunded, p.Status())
	assert.Equal(t, int64(20000), p.RefundedAmount())
	assert.False(t, p.IsFullyRefunded())

	require.NoError(t, p.AddRefund("rfnd_2", 29900, ""))
	assert.Equal(t, StatusRefunded, p.Status())
	assert.True(t, p.IsFullyRefunded())
	assert.Len(t, p.Refunds(), 2)

	// Over-refund rejected
	assert.Error(t, p.AddRefund("rfnd_3", 1, ""))
}

func TestAddRefundRequiresCapture(t *testing.T) {
	p, err := NewPayment(1, "ord_abc", "order_gw1", 49900, "INR", "")
	require.NoError(t, err)

	assert.Error(t, p.AddRefund("rfnd_1", 1000, ""))
}

func TestReconstructPayment(t *testing.T) {
	now := time.Now()
	refunds := []Refund{{GatewayRefundID: "rfnd_1", Amount: 100, CreatedAt: now}}

	p, err := ReconstructPayment(3, "ord_abc", 1, "order_gw1", "pay_gw1", 49900, "INR", "", StatusPartiallyRefunded, refunds, now, now)
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.RefundedAmount())
	assert.True(t, p.IsCaptured())

	_, err = ReconstructPayment(0, "ord_abc", 1, "order_gw1", "", 49900, "INR", "", StatusCreated, nil, now, now)
	assert.Error(t, err)

	_, err = ReconstructPayment(3, "ord_abc", 1, "order_gw1", "", 49900, "INR", "", Status("weird"), nil, now, now)
	assert.Error(t, err)
}
