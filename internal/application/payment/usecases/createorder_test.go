package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/user"
	"keyforge/internal/shared/config"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

func orderConfig() config.PaymentConfig {
	return config.PaymentConfig{
		Provider:     "mock",
		KeyID:        "rzp_test_key",
		Currency:     "INR",
		PremiumPrice: 49900,
		Coupons:      config.Coupons{"LAUNCH20": 20},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	newUC := func(owner *user.User, created **payment.Payment) *CreateOrderUseCase {
		paymentRepo := &mockPaymentRepo{
			CreateFn: func(_ context.Context, p *payment.Payment) error {
				if created != nil {
					*created = p
				}
				return p.SetID(1)
			},
		}
		userRepo := &mockUserRepo{
			GetByIDFn: func(_ context.Context, _ uint) (*user.User, error) { return owner, nil },
		}
		return NewCreateOrderUseCase(paymentRepo, userRepo, &mockGateway{}, orderConfig(), logger.NewLogger())
	}

	t.Run("records a created payment at full price", func(t *testing.T) {
		var created *payment.Payment
		result, err := newUC(testOwner(1, user.PlanFree), &created).Execute(ctx, CreateOrderCommand{UserID: 1})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(result.OrderRef, "ord_"))
		assert.Equal(t, int64(49900), result.Amount)
		assert.Equal(t, "rzp_test_key", result.KeyID)
		require.NotNil(t, created)
		assert.Equal(t, payment.StatusCreated, created.Status())
		assert.Equal(t, result.OrderRef, created.OrderRef())
		assert.Equal(t, result.GatewayOrderID, created.GatewayOrderID())
	})

	t.Run("coupon discounts the amount", func(t *testing.T) {
		var created *payment.Payment
		result, err := newUC(testOwner(1, user.PlanFree), &created).Execute(ctx, CreateOrderCommand{
			UserID: 1, Coupon: "launch20",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(39920), result.Amount)
		assert.Equal(t, "LAUNCH20", created.Coupon())
	})

	t.Run("unknown coupon", func(t *testing.T) {
		_, err := newUC(testOwner(1, user.PlanFree), nil).Execute(ctx, CreateOrderCommand{
			UserID: 1, Coupon: "NOPE",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("premium owner cannot order again", func(t *testing.T) {
		_, err := newUC(testOwner(1, user.PlanPremium), nil).Execute(ctx, CreateOrderCommand{UserID: 1})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})
}

func TestValidateCoupon(t *testing.T) {
	uc := NewValidateCouponUseCase(orderConfig(), logger.NewLogger())

	result, err := uc.Execute(context.Background(), ValidateCouponCommand{Code: " launch20 "})
	require.NoError(t, err)
	assert.Equal(t, "LAUNCH20", result.Code)
	assert.Equal(t, 20, result.DiscountPercent)
	assert.Equal(t, int64(49900), result.OriginalAmount)
	assert.Equal(t, int64(39920), result.FinalAmount)

	_, err = uc.Execute(context.Background(), ValidateCouponCommand{Code: "EXPIRED"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCancelSubscription(t *testing.T) {
	owner := testOwner(1, user.PlanPremium)
	userRepo := &mockUserRepo{
		GetByIDFn: func(_ context.Context, _ uint) (*user.User, error) { return owner, nil },
	}

	uc := NewCancelSubscriptionUseCase(userRepo, logger.NewLogger())
	result, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, user.PlanFree, result.Plan())

	// Already on the free plan now.
	_, err = uc.Execute(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}
