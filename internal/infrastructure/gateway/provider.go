package gateway

import (
	"fmt"

	"keyforge/internal/application/payment/usecases"
	"keyforge/internal/shared/config"
	"keyforge/internal/shared/logger"
)

// NewFromConfig selects the payment provider. Unknown providers are a
// startup error rather than a silent fallback.
func NewFromConfig(cfg config.PaymentConfig, log logger.Interface) (usecases.PaymentGateway, error) {
	switch cfg.Provider {
	case "razorpay":
		if cfg.KeyID == "" || cfg.KeySecret == "" {
			return nil, fmt.Errorf("razorpay provider requires key_id and key_secret")
		}
		return NewRazorpayGateway(cfg, log), nil
	case "mock", "":
		log.Warnw("using mock payment gateway, no real charges will happen")
		return NewMockGateway(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
