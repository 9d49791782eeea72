// Package payment holds the append-only record of gateway transactions.
// Payments are observational: the verify/webhook use cases mutate the
// owner's plan and write these records alongside, but nothing reads them
// back to drive entitlement decisions.
package payment

import (
	"fmt"
	"time"
)

// Status is the recorded gateway state of a payment.
type Status string

const (
	StatusCreated           Status = "created"
	StatusCaptured          Status = "captured"
	StatusFailed            Status = "failed"
	StatusRefunded          Status = "refunded"
	StatusPartiallyRefunded Status = "partially_refunded"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusCaptured, StatusFailed, StatusRefunded, StatusPartiallyRefunded:
		return true
	}
	return false
}

// Refund is one entry in a payment's refund sub-list.
type Refund struct {
	GatewayRefundID string    `json:"gateway_refund_id"`
	Amount          int64     `json:"amount"`
	Reason          string    `json:"reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Payment represents one gateway transaction for an owner.
type Payment struct {
	id               uint
	orderRef         string
	userID           uint
	gatewayOrderID   string
	gatewayPaymentID string
	amount           int64
	currency         string
	coupon           string
	status           Status
	refunds          []Refund
	createdAt        time.Time
	updatedAt        time.Time
}

// NewPayment creates a payment in the created state. amount is in the
// currency's smallest unit.
func NewPayment(userID uint, orderRef, gatewayOrderID string, amount int64, currency, coupon string) (*Payment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if orderRef == "" {
		return nil, fmt.Errorf("order reference is required")
	}
	if gatewayOrderID == "" {
		return nil, fmt.Errorf("gateway order ID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	now := time.Now().UTC()
	return &Payment{
		orderRef:       orderRef,
		userID:         userID,
		gatewayOrderID: gatewayOrderID,
		amount:         amount,
		currency:       currency,
		coupon:         coupon,
		status:         StatusCreated,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructPayment rebuilds a payment from persistence.
func ReconstructPayment(id uint, orderRef string, userID uint, gatewayOrderID, gatewayPaymentID string, amount int64, currency, coupon string, status Status, refunds []Refund, createdAt, updatedAt time.Time) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", status)
	}
	return &Payment{
		id:               id,
		orderRef:         orderRef,
		userID:           userID,
		gatewayOrderID:   gatewayOrderID,
		gatewayPaymentID: gatewayPaymentID,
		amount:           amount,
		currency:         currency,
		coupon:           coupon,
		status:           status,
		refunds:          refunds,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (p *Payment) ID() uint                 { return p.id }
func (p *Payment) OrderRef() string         { return p.orderRef }
func (p *Payment) UserID() uint             { return p.userID }
func (p *Payment) GatewayOrderID() string   { return p.gatewayOrderID }
func (p *Payment) GatewayPaymentID() string { return p.gatewayPaymentID }
func (p *Payment) Amount() int64            { return p.amount }
func (p *Payment) Currency() string         { return p.currency }
func (p *Payment) Coupon() string           { return p.coupon }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

// Refunds returns a copy of the refund sub-list.
func (p *Payment) Refunds() []Refund {
	out := make([]Refund, len(p.refunds))
	copy(out, p.refunds)
	return out
}

// SetID sets the payment ID after insert (persistence layer only).
func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}

// IsCaptured reports whether the payment has been captured (including
// later refund states, which imply a capture happened).
func (p *Payment) IsCaptured() bool {
	return p.status == StatusCaptured || p.status == StatusRefunded || p.status == StatusPartiallyRefunded
}

// MarkCaptured records a successful capture. Replays for an already
// captured payment are a no-op so webhook redelivery stays idempotent.
func (p *Payment) MarkCaptured(gatewayPaymentID string) error {
	if p.IsCaptured() {
		return nil
	}
	if p.status == StatusFailed {
		return fmt.Errorf("cannot capture a failed payment")
	}
	if gatewayPaymentID == "" {
		return fmt.Errorf("gateway payment ID is required")
	}
	p.gatewayPaymentID = gatewayPaymentID
	p.status = StatusCaptured
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkFailed records a failed capture.
func (p *Payment) MarkFailed() {
	if p.IsCaptured() {
		return
	}
	p.status = StatusFailed
	p.updatedAt = time.Now().UTC()
}

// RefundedAmount sums the refund sub-list.
func (p *Payment) RefundedAmount() int64 {
	var total int64
	for _, r := range p.refunds {
		total += r.Amount
	}
	return total
}

// AddRefund appends a refund entry. Refunding past the captured amount
// is rejected; a refund covering the full amount flips status to
// refunded, anything less to partially_refunded.
func (p *Payment) AddRefund(gatewayRefundID string, amount int64, reason string) error {
	if !p.IsCaptured() {
		return fmt.Errorf("only captured payments can be refunded")
	}
	if gatewayRefundID == "" {
		return fmt.Errorf("gateway refund ID is required")
	}
	if amount <= 0 {
		return fmt.Errorf("refund amount must be positive")
	}
	if p.RefundedAmount()+amount > p.amount {
		return fmt.Errorf("refund exceeds captured amount")
	}

	p.refunds = append(p.refunds, Refund{
		GatewayRefundID: gatewayRefundID,
		Amount:          amount,
		Reason:          reason,
		CreatedAt:       time.Now().UTC(),
	})

	if p.RefundedAmount() == p.amount {
		p.status = StatusRefunded
	} else {
		p.status = StatusPartiallyRefunded
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// IsFullyRefunded reports whether the entire amount has been returned.
func (p *Payment) IsFullyRefunded() bool {
	return p.status == StatusRefunded
}
