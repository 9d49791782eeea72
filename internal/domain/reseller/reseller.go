// Package reseller holds the delegate aggregate. A reseller is scoped to
// exactly one app, carries its own license quota on top of the owner's
// app-level quota, and a permission flag set whose delete action is
// always forced off: deleting licenses stays an owner-only operation.
package reseller

import (
	"fmt"
	"strings"
	"time"
)

// UnlimitedLicenses is the sentinel for a reseller with no license cap.
const UnlimitedLicenses = -1

// Action names a delegated license operation.
type Action string

const (
	ActionCreate     Action = "create"
	ActionBanUnban   Action = "ban_unban"
	ActionEditExpiry Action = "edit_expiry"
	ActionDelete     Action = "delete"
)

// AllowedActions is the reseller's permission flag set.
type AllowedActions struct {
	Create     bool `json:"create"`
	BanUnban   bool `json:"ban_unban"`
	EditExpiry bool `json:"edit_expiry"`
	Delete     bool `json:"delete"`
}

// sanitize forces the owner-only delete flag off regardless of input.
func (a AllowedActions) sanitize() AllowedActions {
	a.Delete = false
	return a
}

// Reseller represents the delegate aggregate root.
type Reseller struct {
	id             uint
	appID          uint
	username       string
	passwordHash   string
	licenseLimit   int
	usedLicenses   int
	active         bool
	allowedActions AllowedActions
	createdAt      time.Time
	updatedAt      time.Time
}

// NewReseller creates an active reseller for an app. licenseLimit -1
// means unlimited.
func NewReseller(appID uint, username, passwordHash string, licenseLimit int, actions AllowedActions) (*Reseller, error) {
	username = strings.TrimSpace(username)
	if appID == 0 {
		return nil, fmt.Errorf("app ID is required")
	}
	if len(username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if licenseLimit < UnlimitedLicenses {
		return nil, fmt.Errorf("invalid license limit: %d", licenseLimit)
	}

	now := time.Now().UTC()
	return &Reseller{
		appID:          appID,
		username:       username,
		passwordHash:   passwordHash,
		licenseLimit:   licenseLimit,
		active:         true,
		allowedActions: actions.sanitize(),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructReseller rebuilds a reseller from persistence. The delete
// flag is sanitized on the way in as well, so legacy rows can never
// grant it.
func ReconstructReseller(id, appID uint, username, passwordHash string, licenseLimit, usedLicenses int, active bool, actions AllowedActions, createdAt, updatedAt time.Time) (*Reseller, error) {
	if id == 0 {
		return nil, fmt.Errorf("reseller ID cannot be zero")
	}
	return &Reseller{
		id:             id,
		appID:          appID,
		username:       username,
		passwordHash:   passwordHash,
		licenseLimit:   licenseLimit,
		usedLicenses:   usedLicenses,
		active:         active,
		allowedActions: actions.sanitize(),
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (r *Reseller) ID() uint                       { return r.id }
func (r *Reseller) AppID() uint                    { return r.appID }
func (r *Reseller) Username() string               { return r.username }
func (r *Reseller) PasswordHash() string           { return r.passwordHash }
func (r *Reseller) LicenseLimit() int              { return r.licenseLimit }
func (r *Reseller) UsedLicenses() int              { return r.usedLicenses }
func (r *Reseller) Active() bool                   { return r.active }
func (r *Reseller) AllowedActions() AllowedActions { return r.allowedActions }
func (r *Reseller) CreatedAt() time.Time           { return r.createdAt }
func (r *Reseller) UpdatedAt() time.Time           { return r.updatedAt }

// SetID sets the reseller ID after insert (persistence layer only).
func (r *Reseller) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("reseller ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("reseller ID cannot be zero")
	}
	r.id = id
	return nil
}

// CanCreateLicense reports whether the reseller may issue one more
// license under its own quota. The owner's app-level quota is checked
// separately by the license engine.
func (r *Reseller) CanCreateLicense() bool {
	if !r.active {
		return false
	}
	return r.licenseLimit == UnlimitedLicenses || r.usedLicenses < r.licenseLimit
}

// RemainingQuota returns how many licenses the reseller may still
// create, or UnlimitedLicenses when uncapped.
func (r *Reseller) RemainingQuota() int {
	if r.licenseLimit == UnlimitedLicenses {
		return UnlimitedLicenses
	}
	remaining := r.licenseLimit - r.usedLicenses
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasPermission reports whether the reseller may perform action. An
// inactive reseller has no permissions; delete is never granted.
func (r *Reseller) HasPermission(action Action) bool {
	if !r.active {
		return false
	}
	switch action {
	case ActionCreate:
		return r.allowedActions.Create
	case ActionBanUnban:
		return r.allowedActions.BanUnban
	case ActionEditExpiry:
		return r.allowedActions.EditExpiry
	default:
		return false
	}
}

// IncrementUsedLicenses records one more issued license.
func (r *Reseller) IncrementUsedLicenses() {
	r.usedLicenses++
	r.updatedAt = time.Now().UTC()
}

// DecrementUsedLicenses records a deleted license, flooring at zero.
func (r *Reseller) DecrementUsedLicenses() {
	if r.usedLicenses > 0 {
		r.usedLicenses--
	}
	r.updatedAt = time.Now().UTC()
}

// SetActive toggles the active flag.
func (r *Reseller) SetActive(active bool) {
	r.active = active
	r.updatedAt = time.Now().UTC()
}

// SetLicenseLimit updates the quota cap.
func (r *Reseller) SetLicenseLimit(limit int) error {
	if limit < UnlimitedLicenses {
		return fmt.Errorf("invalid license limit: %d", limit)
	}
	r.licenseLimit = limit
	r.updatedAt = time.Now().UTC()
	return nil
}

// SetAllowedActions replaces the permission flags, forcing delete off.
func (r *Reseller) SetAllowedActions(actions AllowedActions) {
	r.allowedActions = actions.sanitize()
	r.updatedAt = time.Now().UTC()
}
