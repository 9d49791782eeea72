package usecases

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/user"
	"keyforge/internal/shared/config"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

func capturedEventBody(orderID, paymentID string, amount int64) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":%q,"order_id":%q,"amount":%d}}}}`,
		paymentID, orderID, amount))
}

func webhookConfig() config.PaymentConfig {
	return config.PaymentConfig{Provider: "mock", WebhookSecret: "whsec"}
}

func TestHandleWebhook_CapturesAndUpgrades(t *testing.T) {
	p := testPayment(10, 1, 49900, payment.StatusCreated, nil)
	owner := testOwner(1, user.PlanFree)

	var updatedPlan user.Plan
	paymentRepo := &mockPaymentRepo{
		GetByGatewayOrderIDFn: func(_ context.Context, _ string) (*payment.Payment, error) { return p, nil },
	}
	userRepo := &mockUserRepo{
		GetByIDFn: func(_ context.Context, _ uint) (*user.User, error) { return owner, nil },
		UpdatePlanFn: func(_ context.Context, u *user.User) error {
			updatedPlan = u.Plan()
			return nil
		},
	}

	uc := NewHandleWebhookUseCase(paymentRepo, userRepo, &mockGateway{}, webhookConfig(), logger.NewLogger())
	err := uc.Execute(context.Background(), HandleWebhookCommand{
		Body:      capturedEventBody("order_test_1", "pay_test_1", 49900),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.Equal(t, payment.StatusCaptured, p.Status())
	assert.Equal(t, user.PlanPremium, updatedPlan)
}

func TestHandleWebhook_ReplayIsNoOp(t *testing.T) {
	p := testPayment(10, 1, 49900, payment.StatusCaptured, nil)

	updates := 0
	paymentRepo := &mockPaymentRepo{
		GetByGatewayOrderIDFn: func(_ context.Context, _ string) (*payment.Payment, error) { return p, nil },
		UpdateFn: func(_ context.Context, _ *payment.Payment) error {
			updates++
			return nil
		},
	}

	uc := NewHandleWebhookUseCase(paymentRepo, &mockUserRepo{}, &mockGateway{}, webhookConfig(), logger.NewLogger())
	err := uc.Execute(context.Background(), HandleWebhookCommand{
		Body:      capturedEventBody("order_test_1", "pay_test_1", 49900),
		Signature: "sig",
	})
	require.NoError(t, err)
	assert.Zero(t, updates)
}

func TestHandleWebhook_MissingSecretAcknowledged(t *testing.T) {
	looked := false
	paymentRepo := &mockPaymentRepo{
		GetByGatewayOrderIDFn: func(_ context.Context, _ string) (*payment.Payment, error) {
			looked = true
			return nil, nil
		},
	}

	cfg := webhookConfig()
	cfg.WebhookSecret = ""
	uc := NewHandleWebhookUseCase(paymentRepo, &mockUserRepo{}, &mockGateway{}, cfg, logger.NewLogger())
	err := uc.Execute(context.Background(), HandleWebhookCommand{
		Body:      capturedEventBody("order_test_1", "pay_test_1", 49900),
		Signature: "sig",
	})
	require.NoError(t, err)
	assert.False(t, looked)
}

func TestHandleWebhook_SignatureMismatch(t *testing.T) {
	gw := &mockGateway{
		VerifyWebhookSignatureFn: func(_ []byte, _ string) bool { return false },
	}

	uc := NewHandleWebhookUseCase(&mockPaymentRepo{}, &mockUserRepo{}, gw, webhookConfig(), logger.NewLogger())
	err := uc.Execute(context.Background(), HandleWebhookCommand{
		Body:      capturedEventBody("order_test_1", "pay_test_1", 49900),
		Signature: "bad",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.GetAppError(err).Code)
}

func TestHandleWebhook_IgnoresOtherEvents(t *testing.T) {
	looked := false
	paymentRepo := &mockPaymentRepo{
		GetByGatewayOrderIDFn: func(_ context.Context, _ string) (*payment.Payment, error) {
			looked = true
			return nil, nil
		},
	}

	uc := NewHandleWebhookUseCase(paymentRepo, &mockUserRepo{}, &mockGateway{}, webhookConfig(), logger.NewLogger())
	err := uc.Execute(context.Background(), HandleWebhookCommand{
		Body:      []byte(`{"event":"payment.failed","payload":{}}`),
		Signature: "sig",
	})
	require.NoError(t, err)
	assert.False(t, looked)
}

func TestHandleWebhook_UnknownOrderAcknowledged(t *testing.T) {
	uc := NewHandleWebhookUseCase(&mockPaymentRepo{}, &mockUserRepo{}, &mockGateway{}, webhookConfig(), logger.NewLogger())
	err := uc.Execute(context.Background(), HandleWebhookCommand{
		Body:      capturedEventBody("order_unknown", "pay_x", 100),
		Signature: "sig",
	})
	require.NoError(t, err)
}
