package usecases

import (
	"context"
	"strings"

	"keyforge/internal/domain/user"
	"keyforge/internal/shared/config"
	"keyforge/internal/shared/logger"
)

type PlanPricing struct {
	Plan     user.Plan   `json:"plan"`
	Price    int64       `json:"price"`
	Currency string      `json:"currency"`
	Limits   user.Limits `json:"limits"`
}

type PricingResult struct {
	Plans []PlanPricing `json:"plans"`
}

// GetPricingUseCase exposes the public plan table: the free tier and the
// configured premium price with the limits each plan derives.
type GetPricingUseCase struct {
	cfg config.PaymentConfig
}

func NewGetPricingUseCase(cfg config.PaymentConfig) *GetPricingUseCase {
	return &GetPricingUseCase{cfg: cfg}
}

func (uc *GetPricingUseCase) Execute(_ context.Context) (*PricingResult, error) {
	return &PricingResult{
		Plans: []PlanPricing{
			{Plan: user.PlanFree, Price: 0, Currency: uc.cfg.Currency, Limits: user.PlanFree.Limits()},
			{Plan: user.PlanPremium, Price: uc.cfg.PremiumPrice, Currency: uc.cfg.Currency, Limits: user.PlanPremium.Limits()},
		},
	}, nil
}

type ValidateCouponCommand struct {
	Code string
}

type ValidateCouponResult struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	OriginalAmount  int64  `json:"original_amount"`
	FinalAmount     int64  `json:"final_amount"`
	Currency        string `json:"currency"`
}

// ValidateCouponUseCase resolves a coupon code against the config-seeded
// table and returns the discounted premium price.
type ValidateCouponUseCase struct {
	cfg    config.PaymentConfig
	logger logger.Interface
}

func NewValidateCouponUseCase(cfg config.PaymentConfig, logger logger.Interface) *ValidateCouponUseCase {
	return &ValidateCouponUseCase{cfg: cfg, logger: logger}
}

func (uc *ValidateCouponUseCase) Execute(_ context.Context, cmd ValidateCouponCommand) (*ValidateCouponResult, error) {
	code := strings.ToUpper(strings.TrimSpace(cmd.Code))
	final, err := ApplyCoupon(uc.cfg, code)
	if err != nil {
		return nil, err
	}
	return &ValidateCouponResult{
		Code:            code,
		DiscountPercent: uc.cfg.Coupons[code],
		OriginalAmount:  uc.cfg.PremiumPrice,
		FinalAmount:     final,
		Currency:        uc.cfg.Currency,
	}, nil
}
