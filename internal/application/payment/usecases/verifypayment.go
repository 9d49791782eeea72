package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/user"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type VerifyPaymentCommand struct {
	UserID           uint
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

type VerifyPaymentResult struct {
	Payment *payment.Payment
	Plan    user.Plan
}

// VerifyPaymentUseCase confirms a checkout callback. The gateway
// signature binds the payment to the order; on a valid signature the
// payment is captured and the owner is upgraded to premium in the same
// call. Re-verifying an already captured payment succeeds without
// side effects.
type VerifyPaymentUseCase struct {
	paymentRepo payment.Repository
	userRepo    user.Repository
	gateway     PaymentGateway
	logger      logger.Interface
}

func NewVerifyPaymentUseCase(
	paymentRepo payment.Repository,
	userRepo user.Repository,
	gateway PaymentGateway,
	logger logger.Interface,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd VerifyPaymentCommand) (*VerifyPaymentResult, error) {
	p, err := uc.paymentRepo.GetByGatewayOrderID(ctx, cmd.GatewayOrderID)
	if err != nil {
		uc.logger.Errorw("failed to get payment", "gateway_order_id", cmd.GatewayOrderID, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil || p.UserID() != cmd.UserID {
		return nil, apperrors.NewNotFoundError("payment not found")
	}

	owner, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if p.IsCaptured() {
		return &VerifyPaymentResult{Payment: p, Plan: owner.Plan()}, nil
	}

	if !uc.gateway.VerifySignature(cmd.GatewayOrderID, cmd.GatewayPaymentID, cmd.Signature) {
		uc.logger.Warnw("payment signature mismatch",
			"user_id", cmd.UserID, "gateway_order_id", cmd.GatewayOrderID)
		return nil, apperrors.NewBadRequestError("invalid payment signature")
	}

	fetched, err := uc.gateway.FetchPayment(ctx, cmd.GatewayPaymentID)
	if err != nil {
		uc.logger.Errorw("failed to fetch gateway payment", "gateway_payment_id", cmd.GatewayPaymentID, "error", err)
		return nil, apperrors.NewGatewayError("payment gateway is unavailable")
	}
	if fetched.OrderID != p.GatewayOrderID() || fetched.Amount != p.Amount() {
		uc.logger.Warnw("gateway payment does not match order",
			"gateway_payment_id", cmd.GatewayPaymentID, "gateway_order_id", p.GatewayOrderID())
		return nil, apperrors.NewBadRequestError("payment does not match the order")
	}

	if err := p.MarkCaptured(cmd.GatewayPaymentID); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}
	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update payment", "payment_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	owner.Upgrade()
	if err := uc.userRepo.UpdatePlan(ctx, owner); err != nil {
		uc.logger.Errorw("payment captured but plan upgrade failed",
			"user_id", owner.ID(), "payment_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to upgrade plan: %w", err)
	}

	uc.logger.Infow("payment verified, plan upgraded",
		"user_id", owner.ID(), "payment_id", p.ID(), "amount", p.Amount())
	return &VerifyPaymentResult{Payment: p, Plan: owner.Plan()}, nil
}
