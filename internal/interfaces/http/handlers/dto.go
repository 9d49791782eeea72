// Package handlers contains the gin HTTP handlers. Each handler binds
// a request, builds a use case command and renders the shared response
// envelope; no business rules live here.
package handlers

import (
	"time"

	"keyforge/internal/domain/app"
	"keyforge/internal/domain/client"
	"keyforge/internal/domain/license"
	"keyforge/internal/domain/payment"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/domain/user"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		Username:  u.Username(),
		Plan:      string(u.Plan()),
		CreatedAt: u.CreatedAt(),
	}
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AppSettingsPayload struct {
	HwidLock              bool `json:"hwid_lock"`
	AllowCustomLicenseKey bool `json:"allow_custom_license_key"`
}

type AppResponse struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	AppID     string             `json:"app_id"`
	AppSecret string             `json:"app_secret"`
	Paused    bool               `json:"paused"`
	Settings  AppSettingsPayload `json:"settings"`
	CreatedAt time.Time          `json:"created_at"`
}

func toAppResponse(a *app.App) AppResponse {
	return AppResponse{
		ID:        a.ID(),
		Name:      a.Name(),
		AppID:     a.AppID(),
		AppSecret: a.AppSecret(),
		Paused:    a.Paused(),
		Settings: AppSettingsPayload{
			HwidLock:              a.Settings().HwidLock,
			AllowCustomLicenseKey: a.Settings().AllowCustomLicenseKey,
		},
		CreatedAt: a.CreatedAt(),
	}
}

type LicenseResponse struct {
	ID          uint      `json:"id"`
	AppID       uint      `json:"app_id"`
	Key         string    `json:"key"`
	Status      string    `json:"status"`
	CreatorType string    `json:"creator_type"`
	ResellerID  *uint     `json:"reseller_id,omitempty"`
	Used        bool      `json:"used"`
	UsedBy      *uint     `json:"used_by,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toLicenseResponse(l *license.License) LicenseResponse {
	// Expiry is a derived view: a stored-active license past its
	// expiresAt reads as expired.
	status := string(l.Status())
	if l.Status() == license.StatusActive && l.IsExpired(time.Now().UTC()) {
		status = "expired"
	}

	var usedBy *uint
	if clientID, ok := l.Consumption().ClientID(); ok {
		usedBy = &clientID
	}

	return LicenseResponse{
		ID:          l.ID(),
		AppID:       l.AppID(),
		Key:         l.Key(),
		Status:      status,
		CreatorType: string(l.CreatorType()),
		ResellerID:  l.ResellerID(),
		Used:        l.Consumption().IsConsumed(),
		UsedBy:      usedBy,
		ExpiresAt:   l.ExpiresAt(),
		Note:        l.Note(),
		CreatedAt:   l.CreatedAt(),
	}
}

func toLicenseResponses(licenses []*license.License) []LicenseResponse {
	out := make([]LicenseResponse, 0, len(licenses))
	for _, l := range licenses {
		out = append(out, toLicenseResponse(l))
	}
	return out
}

type AllowedActionsPayload struct {
	Create     bool `json:"create"`
	BanUnban   bool `json:"ban_unban"`
	EditExpiry bool `json:"edit_expiry"`
	Delete     bool `json:"delete"`
}

type ResellerResponse struct {
	ID             uint                  `json:"id"`
	AppID          uint                  `json:"app_id"`
	Username       string                `json:"username"`
	LicenseLimit   int                   `json:"license_limit"`
	UsedLicenses   int                   `json:"used_licenses"`
	RemainingQuota int                   `json:"remaining_quota"`
	Active         bool                  `json:"active"`
	AllowedActions AllowedActionsPayload `json:"allowed_actions"`
	CreatedAt      time.Time             `json:"created_at"`
}

func toResellerResponse(r *reseller.Reseller) ResellerResponse {
	actions := r.AllowedActions()
	return ResellerResponse{
		ID:             r.ID(),
		AppID:          r.AppID(),
		Username:       r.Username(),
		LicenseLimit:   r.LicenseLimit(),
		UsedLicenses:   r.UsedLicenses(),
		RemainingQuota: r.RemainingQuota(),
		Active:         r.Active(),
		AllowedActions: AllowedActionsPayload{
			Create:     actions.Create,
			BanUnban:   actions.BanUnban,
			EditExpiry: actions.EditExpiry,
			Delete:     actions.Delete,
		},
		CreatedAt: r.CreatedAt(),
	}
}

type ClientResponse struct {
	ID         uint       `json:"id"`
	AppID      uint       `json:"app_id"`
	Username   string     `json:"username"`
	HWID       string     `json:"hwid,omitempty"`
	LicenseID  *uint      `json:"license_id,omitempty"`
	Banned     bool       `json:"banned"`
	ExpiresAt  time.Time  `json:"expires_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	LoginCount int        `json:"login_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID(),
		AppID:      c.AppID(),
		Username:   c.Username(),
		HWID:       c.HWID(),
		LicenseID:  c.LicenseID(),
		Banned:     c.Banned(),
		ExpiresAt:  c.ExpiresAt(),
		LastLogin:  c.LastLogin(),
		LoginCount: c.LoginCount(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toClientResponses(clients []*client.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out
}

type PaymentResponse struct {
	ID               uint             `json:"id"`
	OrderRef         string           `json:"order_ref"`
	GatewayOrderID   string           `json:"gateway_order_id"`
	GatewayPaymentID string           `json:"gateway_payment_id,omitempty"`
	Amount           int64            `json:"amount"`
	Currency         string           `json:"currency"`
	Coupon           string           `json:"coupon,omitempty"`
	Status           string           `json:"status"`
	RefundedAmount   int64            `json:"refunded_amount"`
	Refunds          []payment.Refund `json:"refunds,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

func toPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID(),
		OrderRef:         p.OrderRef(),
		GatewayOrderID:   p.GatewayOrderID(),
		GatewayPaymentID: p.GatewayPaymentID(),
		Amount:           p.Amount(),
		Currency:         p.Currency(),
		Coupon:           p.Coupon(),
		Status:           string(p.Status()),
		RefundedAmount:   p.RefundedAmount(),
		Refunds:          p.Refunds(),
		CreatedAt:        p.CreatedAt(),
	}
}

func toPaymentResponses(payments []*payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out
}
