package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"keyforge/internal/domain/payment"
	"keyforge/internal/infrastructure/persistence/models"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/db"
	"keyforge/internal/shared/logger"
)

// PaymentRepository implements payment.Repository on gorm. Refund
// entries live in their own table and are loaded with the payment.
type PaymentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPaymentRepository creates a gorm-backed payment repository.
func NewPaymentRepository(database *gorm.DB, log logger.Interface) payment.Repository {
	return &PaymentRepository{db: database, logger: log}
}

func (r *PaymentRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *PaymentRepository) toModel(entity *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:               entity.ID(),
		OrderRef:         entity.OrderRef(),
		UserID:           entity.UserID(),
		GatewayOrderID:   entity.GatewayOrderID(),
		GatewayPaymentID: entity.GatewayPaymentID(),
		Amount:           entity.Amount(),
		Currency:         entity.Currency(),
		Coupon:           entity.Coupon(),
		Status:           string(entity.Status()),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (r *PaymentRepository) toEntity(model *models.PaymentModel, refundModels []models.RefundModel) (*payment.Payment, error) {
	refunds := make([]payment.Refund, 0, len(refundModels))
	for _, rm := range refundModels {
		refunds = append(refunds, payment.Refund{
			GatewayRefundID: rm.GatewayRefundID,
			Amount:          rm.Amount,
			Reason:          rm.Reason,
			CreatedAt:       rm.CreatedAt,
		})
	}

	return payment.ReconstructPayment(
		model.ID,
		model.OrderRef,
		model.UserID,
		model.GatewayOrderID,
		model.GatewayPaymentID,
		model.Amount,
		model.Currency,
		model.Coupon,
		payment.Status(model.Status),
		refunds,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *PaymentRepository) loadRefunds(ctx context.Context, paymentID uint) ([]models.RefundModel, error) {
	var refunds []models.RefundModel
	if err := r.conn(ctx).Where("payment_id = ?", paymentID).Order("id").Find(&refunds).Error; err != nil {
		return nil, fmt.Errorf("failed to load refunds: %w", err)
	}
	return refunds, nil
}

// Create inserts a new payment and sets the generated ID back on the
// entity. New payments have no refunds yet.
func (r *PaymentRepository) Create(ctx context.Context, entity *payment.Payment) error {
	model := r.toModel(entity)

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment", "order_ref", model.OrderRef, "error", err)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set payment ID: %w", err)
	}

	r.logger.Infow("payment created", "id", model.ID, "order_ref", model.OrderRef, "amount", model.Amount)
	return nil
}

func (r *PaymentRepository) getBy(ctx context.Context, where string, arg interface{}) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := r.conn(ctx).Where(where, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	refunds, err := r.loadRefunds(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return r.toEntity(&model, refunds)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	entity, err := r.getBy(ctx, "id = ?", id)
	if err != nil {
		r.logger.Errorw("failed to get payment by ID", "id", id, "error", err)
	}
	return entity, err
}

func (r *PaymentRepository) GetByOrderRef(ctx context.Context, orderRef string) (*payment.Payment, error) {
	entity, err := r.getBy(ctx, "order_ref = ?", orderRef)
	if err != nil {
		r.logger.Errorw("failed to get payment by order ref", "order_ref", orderRef, "error", err)
	}
	return entity, err
}

func (r *PaymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Payment, error) {
	entity, err := r.getBy(ctx, "gateway_order_id = ?", gatewayOrderID)
	if err != nil {
		r.logger.Errorw("failed to get payment by gateway order ID", "gateway_order_id", gatewayOrderID, "error", err)
	}
	return entity, err
}

// List returns the owner's payments, newest first, plus the unpaged
// total. Refund sub-lists are loaded per row; history pages are small.
func (r *PaymentRepository) List(ctx context.Context, filter payment.Filter) ([]*payment.Payment, int64, error) {
	query := r.conn(ctx).Model(&models.PaymentModel{}).Where("user_id = ?", filter.UserID)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count payments", "user_id", filter.UserID, "error", err)
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	var paymentModels []*models.PaymentModel
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&paymentModels).Error
	if err != nil {
		r.logger.Errorw("failed to list payments", "user_id", filter.UserID, "error", err)
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*payment.Payment, 0, len(paymentModels))
	for _, model := range paymentModels {
		refunds, err := r.loadRefunds(ctx, model.ID)
		if err != nil {
			return nil, 0, err
		}
		entity, err := r.toEntity(model, refunds)
		if err != nil {
			r.logger.Warnw("failed to map payment model, skipping", "id", model.ID, "error", err)
			continue
		}
		payments = append(payments, entity)
	}
	return payments, total, nil
}

// Update persists the payment's status fields and appends any refund
// entries not yet stored. Refund rows are append-only.
func (r *PaymentRepository) Update(ctx context.Context, entity *payment.Payment) error {
	model := r.toModel(entity)

	result := r.conn(ctx).Model(&models.PaymentModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"gateway_payment_id": model.GatewayPaymentID,
			"status":             model.Status,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update payment", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment %d not found", entity.ID())
	}

	stored, err := r.loadRefunds(ctx, entity.ID())
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(stored))
	for _, rm := range stored {
		known[rm.GatewayRefundID] = true
	}

	for _, refund := range entity.Refunds() {
		if known[refund.GatewayRefundID] {
			continue
		}
		refundModel := models.RefundModel{
			PaymentID:       entity.ID(),
			GatewayRefundID: refund.GatewayRefundID,
			Amount:          refund.Amount,
			Reason:          refund.Reason,
			CreatedAt:       refund.CreatedAt,
		}
		if err := r.conn(ctx).Create(&refundModel).Error; err != nil {
			r.logger.Errorw("failed to create refund", "payment_id", entity.ID(), "error", err)
			return fmt.Errorf("failed to create refund: %w", err)
		}
	}
	return nil
}

// AnalyticsByUser aggregates the owner's payment history in one query
// plus a refund sum.
func (r *PaymentRepository) AnalyticsByUser(ctx context.Context, userID uint) (*payment.Analytics, error) {
	type row struct {
		TotalPayments  int64
		TotalCaptured  int64
		TotalAmount    int64
		FailedPayments int64
	}

	captured := []string{
		string(payment.StatusCaptured),
		string(payment.StatusRefunded),
		string(payment.StatusPartiallyRefunded),
	}

	var out row
	err := r.conn(ctx).Model(&models.PaymentModel{}).
		Where("user_id = ?", userID).
		Select(
			"COUNT(*) AS total_payments, "+
				"SUM(CASE WHEN status IN ? THEN 1 ELSE 0 END) AS total_captured, "+
				"COALESCE(SUM(CASE WHEN status IN ? THEN amount ELSE 0 END), 0) AS total_amount, "+
				"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS failed_payments",
			captured, captured, string(payment.StatusFailed),
		).Scan(&out).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate payments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	var refunded int64
	err = r.conn(ctx).Model(&models.RefundModel{}).
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.payment_id", constants.TablePayments, constants.TablePayments, constants.TableRefunds)).
		Where(fmt.Sprintf("%s.user_id = ?", constants.TablePayments), userID).
		Select(fmt.Sprintf("COALESCE(SUM(%s.amount), 0)", constants.TableRefunds)).
		Scan(&refunded).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate refunds", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to aggregate refunds: %w", err)
	}

	return &payment.Analytics{
		TotalPayments:  out.TotalPayments,
		TotalCaptured:  out.TotalCaptured,
		TotalAmount:    out.TotalAmount,
		TotalRefunded:  refunded,
		FailedPayments: out.FailedPayments,
	}, nil
}
