// Package usecases contains the payment bridge application services.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/user"
	"keyforge/internal/shared/config"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/id"
	"keyforge/internal/shared/logger"
)

type CreateOrderCommand struct {
	UserID uint
	Coupon string
}

type CreateOrderResult struct {
	OrderRef       string `json:"order_ref"`
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// CreateOrderUseCase opens a gateway order for the premium upgrade and
// records a payment in the created state. The amount is the configured
// premium price, optionally reduced by a coupon.
type CreateOrderUseCase struct {
	paymentRepo payment.Repository
	userRepo    user.Repository
	gateway     PaymentGateway
	cfg         config.PaymentConfig
	logger      logger.Interface
}

func NewCreateOrderUseCase(
	paymentRepo payment.Repository,
	userRepo user.Repository,
	gateway PaymentGateway,
	cfg config.PaymentConfig,
	logger logger.Interface,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		cfg:         cfg,
		logger:      logger,
	}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	owner, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if owner.Plan().IsPremium() {
		return nil, apperrors.NewConflictError("already on the premium plan")
	}

	amount := uc.cfg.PremiumPrice
	coupon := strings.ToUpper(strings.TrimSpace(cmd.Coupon))
	if coupon != "" {
		discounted, err := ApplyCoupon(uc.cfg, coupon)
		if err != nil {
			return nil, err
		}
		amount = discounted
	}

	orderRef, err := id.NewOrderRef()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order reference: %w", err)
	}

	order, err := uc.gateway.CreateOrder(ctx, CreateOrderRequest{
		Amount:   amount,
		Currency: uc.cfg.Currency,
		Receipt:  orderRef,
	})
	if err != nil {
		uc.logger.Errorw("gateway order creation failed", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewGatewayError("payment gateway is unavailable")
	}

	p, err := payment.NewPayment(cmd.UserID, orderRef, order.ID, amount, uc.cfg.Currency, coupon)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.paymentRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create payment", "order_ref", orderRef, "error", err)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	uc.logger.Infow("payment order created",
		"user_id", cmd.UserID, "order_ref", orderRef, "gateway_order_id", order.ID, "amount", amount)
	return &CreateOrderResult{
		OrderRef:       orderRef,
		GatewayOrderID: order.ID,
		Amount:         amount,
		Currency:       uc.cfg.Currency,
		KeyID:          uc.cfg.KeyID,
	}, nil
}

// ApplyCoupon returns the premium price after the coupon's percentage
// discount. Unknown codes are a not-found error so callers can surface
// them directly.
func ApplyCoupon(cfg config.PaymentConfig, code string) (int64, error) {
	pct, ok := cfg.Coupons[code]
	if !ok {
		return 0, apperrors.NewNotFoundError("invalid coupon code")
	}
	if pct <= 0 || pct > 100 {
		return 0, apperrors.NewInternalError("misconfigured coupon discount")
	}
	return cfg.PremiumPrice - cfg.PremiumPrice*int64(pct)/100, nil
}
