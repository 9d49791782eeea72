package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/user"
	"keyforge/internal/shared/config"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
)

const eventPaymentCaptured = "payment.captured"

type HandleWebhookCommand struct {
	Body      []byte
	Signature string
}

// webhookEvent mirrors the gateway's webhook envelope. Only the fields
// the captured-event path reads are declared.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Amount  int64  `json:"amount"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhookUseCase processes gateway webhook deliveries. Only
// payment.captured mutates state; redelivery for an already captured
// payment is a no-op, and deliveries for unknown orders are acknowledged
// so the gateway stops retrying. When no webhook secret is configured
// the delivery is logged and acknowledged without processing.
type HandleWebhookUseCase struct {
	paymentRepo payment.Repository
	userRepo    user.Repository
	gateway     PaymentGateway
	cfg         config.PaymentConfig
	logger      logger.Interface
}

func NewHandleWebhookUseCase(
	paymentRepo payment.Repository,
	userRepo user.Repository,
	gateway PaymentGateway,
	cfg config.PaymentConfig,
	logger logger.Interface,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		cfg:         cfg,
		logger:      logger,
	}
}

func (uc *HandleWebhookUseCase) Execute(ctx context.Context, cmd HandleWebhookCommand) error {
	if uc.cfg.WebhookSecret == "" {
		uc.logger.Warnw("webhook received but no webhook secret is configured, skipping")
		return nil
	}
	if !uc.gateway.VerifyWebhookSignature(cmd.Body, cmd.Signature) {
		uc.logger.Warnw("webhook signature mismatch")
		return apperrors.NewBadRequestError("invalid webhook signature")
	}

	var event webhookEvent
	if err := json.Unmarshal(cmd.Body, &event); err != nil {
		return apperrors.NewBadRequestError("malformed webhook payload")
	}
	if event.Event != eventPaymentCaptured {
		uc.logger.Infow("ignoring webhook event", "event", event.Event)
		return nil
	}

	entity := event.Payload.Payment.Entity
	p, err := uc.paymentRepo.GetByGatewayOrderID(ctx, entity.OrderID)
	if err != nil {
		uc.logger.Errorw("failed to get payment", "gateway_order_id", entity.OrderID, "error", err)
		return fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil {
		uc.logger.Warnw("webhook for unknown order", "gateway_order_id", entity.OrderID)
		return nil
	}
	if p.IsCaptured() {
		uc.logger.Infow("webhook replay for captured payment", "payment_id", p.ID())
		return nil
	}

	if err := p.MarkCaptured(entity.ID); err != nil {
		uc.logger.Warnw("webhook capture rejected", "payment_id", p.ID(), "error", err)
		return nil
	}
	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update payment", "payment_id", p.ID(), "error", err)
		return fmt.Errorf("failed to update payment: %w", err)
	}

	owner, err := uc.userRepo.GetByID(ctx, p.UserID())
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		uc.logger.Errorw("captured payment references a missing user",
			"payment_id", p.ID(), "user_id", p.UserID())
		return nil
	}
	owner.Upgrade()
	if err := uc.userRepo.UpdatePlan(ctx, owner); err != nil {
		uc.logger.Errorw("payment captured but plan upgrade failed",
			"user_id", owner.ID(), "payment_id", p.ID(), "error", err)
		return fmt.Errorf("failed to upgrade plan: %w", err)
	}

	uc.logger.Infow("webhook captured payment, plan upgraded",
		"user_id", owner.ID(), "payment_id", p.ID())
	return nil
}
