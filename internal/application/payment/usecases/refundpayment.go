package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/user"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type RefundPaymentCommand struct {
	UserID    uint
	PaymentID uint
	Amount    int64 // 0 refunds the remaining captured amount
	Reason    string
}

// RefundPaymentUseCase issues a gateway refund and appends it to the
// payment's refund list. Refunding the full amount revokes the upgrade
// the payment bought, so the owner is downgraded to the free plan.
type RefundPaymentUseCase struct {
	paymentRepo payment.Repository
	userRepo    user.Repository
	gateway     PaymentGateway
	logger      logger.Interface
}

func NewRefundPaymentUseCase(
	paymentRepo payment.Repository,
	userRepo user.Repository,
	gateway PaymentGateway,
	logger logger.Interface,
) *RefundPaymentUseCase {
	return &RefundPaymentUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

func (uc *RefundPaymentUseCase) Execute(ctx context.Context, cmd RefundPaymentCommand) (*payment.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, cmd.PaymentID)
	if err != nil {
		uc.logger.Errorw("failed to get payment", "payment_id", cmd.PaymentID, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil || p.UserID() != cmd.UserID {
		return nil, apperrors.NewNotFoundError("payment not found")
	}
	if !p.IsCaptured() {
		return nil, apperrors.NewConflictError("only captured payments can be refunded")
	}

	amount := cmd.Amount
	remaining := p.Amount() - p.RefundedAmount()
	if amount == 0 {
		amount = remaining
	}
	if amount <= 0 || amount > remaining {
		return nil, apperrors.NewValidationError("refund amount exceeds the remaining captured amount")
	}

	refund, err := uc.gateway.IssueRefund(ctx, p.GatewayPaymentID(), amount, cmd.Reason)
	if err != nil {
		uc.logger.Errorw("gateway refund failed", "payment_id", p.ID(), "error", err)
		return nil, apperrors.NewGatewayError("payment gateway refused the refund")
	}

	if err := p.AddRefund(refund.ID, amount, cmd.Reason); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}
	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("refund issued but not recorded",
			"payment_id", p.ID(), "gateway_refund_id", refund.ID, "error", err)
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	if p.IsFullyRefunded() {
		if err := uc.downgradeOwner(ctx, p.UserID()); err != nil {
			return nil, err
		}
	}

	uc.logger.Infow("payment refunded",
		"payment_id", p.ID(), "amount", amount, "status", p.Status())
	return p, nil
}

func (uc *RefundPaymentUseCase) downgradeOwner(ctx context.Context, userID uint) error {
	owner, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		uc.logger.Errorw("refunded payment references a missing user", "user_id", userID)
		return nil
	}
	owner.Downgrade()
	if err := uc.userRepo.UpdatePlan(ctx, owner); err != nil {
		uc.logger.Errorw("refund recorded but plan downgrade failed", "user_id", userID, "error", err)
		return fmt.Errorf("failed to downgrade plan: %w", err)
	}
	uc.logger.Infow("plan downgraded after full refund", "user_id", userID)
	return nil
}
