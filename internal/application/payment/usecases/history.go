package usecases

import (
	"context"
	"fmt"

	"keyforge/internal/domain/payment"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

type ListPaymentsCommand struct {
	UserID   uint
	Status   *payment.Status
	Page     int
	PageSize int
}

type ListPaymentsResult struct {
	Payments []*payment.Payment
	Total    int64
	Page     int
	PageSize int
}

// ListPaymentsUseCase pages through the owner's payment history,
// newest first.
type ListPaymentsUseCase struct {
	paymentRepo payment.Repository
	logger      logger.Interface
}

func NewListPaymentsUseCase(paymentRepo payment.Repository, logger logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo, logger: logger}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, cmd ListPaymentsCommand) (*ListPaymentsResult, error) {
	payments, total, err := uc.paymentRepo.List(ctx, payment.Filter{
		UserID:   cmd.UserID,
		Status:   cmd.Status,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list payments", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &ListPaymentsResult{
		Payments: payments,
		Total:    total,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}, nil
}

// GetPaymentUseCase loads one payment scoped to its owner.
type GetPaymentUseCase struct {
	paymentRepo payment.Repository
	logger      logger.Interface
}

func NewGetPaymentUseCase(paymentRepo payment.Repository, logger logger.Interface) *GetPaymentUseCase {
	return &GetPaymentUseCase{paymentRepo: paymentRepo, logger: logger}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, userID, paymentID uint) (*payment.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		uc.logger.Errorw("failed to get payment", "payment_id", paymentID, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil || p.UserID() != userID {
		return nil, apperrors.NewNotFoundError("payment not found")
	}
	return p, nil
}

// PaymentAnalyticsUseCase summarizes the owner's payment history.
type PaymentAnalyticsUseCase struct {
	paymentRepo payment.Repository
	logger      logger.Interface
}

func NewPaymentAnalyticsUseCase(paymentRepo payment.Repository, logger logger.Interface) *PaymentAnalyticsUseCase {
	return &PaymentAnalyticsUseCase{paymentRepo: paymentRepo, logger: logger}
}

func (uc *PaymentAnalyticsUseCase) Execute(ctx context.Context, userID uint) (*payment.Analytics, error) {
	analytics, err := uc.paymentRepo.AnalyticsByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load payment analytics", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load payment analytics: %w", err)
	}
	return analytics, nil
}
