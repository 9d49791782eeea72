package models

import (
	"time"

	"keyforge/internal/shared/constants"
)

// PaymentModel persists gateway transactions. Refunds live in their own
// child table so partial refunds keep their individual gateway IDs.
type PaymentModel struct {
	ID               uint   `gorm:"primarykey"`
	OrderRef         string `gorm:"uniqueIndex;not null;size:32"`
	UserID           uint   `gorm:"not null;index"`
	GatewayOrderID   string `gorm:"uniqueIndex;not null;size:64"`
	GatewayPaymentID string `gorm:"size:64"`
	Amount           int64  `gorm:"not null"`
	Currency         string `gorm:"not null;size:8"`
	Coupon           string `gorm:"size:32"`
	Status           string `gorm:"not null;default:created;size:20;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}

// RefundModel is one refund entry under a payment.
type RefundModel struct {
	ID              uint   `gorm:"primarykey"`
	PaymentID       uint   `gorm:"not null;index"`
	GatewayRefundID string `gorm:"uniqueIndex;not null;size:64"`
	Amount          int64  `gorm:"not null"`
	Reason          string `gorm:"size:255"`
	CreatedAt       time.Time
}

func (RefundModel) TableName() string {
	return constants.TableRefunds
}
