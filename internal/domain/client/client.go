// Package client holds the end-user account aggregate. A client is
// scoped to one app (username uniqueness is per app, not global),
// optionally bound to the license it consumed at registration, and
// carries the ban/expiry/HWID state checked on every login.
package client

import (
	"fmt"
	"strings"
	"time"
)

// Client represents the end-user aggregate root.
type Client struct {
	id           uint
	appID        uint
	username     string
	passwordHash string
	hwid         string
	licenseID    *uint
	banned       bool
	expiresAt    time.Time
	lastLogin    *time.Time
	loginCount   int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewClient creates a client account. licenseID is nil for direct
// owner-created accounts. expiresAt comes from the consumed license at
// registration, or is supplied directly for owner-created accounts.
func NewClient(appID uint, username, passwordHash string, licenseID *uint, expiresAt time.Time) (*Client, error) {
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
	if expiresAt.IsZero() {
		return nil, fmt.Errorf("expiry is required")
	}

	now := time.Now().UTC()
	return &Client{
		appID:        appID,
		username:     username,
		passwordHash: passwordHash,
		licenseID:    licenseID,
		expiresAt:    expiresAt.UTC(),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructClient rebuilds a client from persistence.
func ReconstructClient(id, appID uint, username, passwordHash, hwid string, licenseID *uint, banned bool, expiresAt time.Time, lastLogin *time.Time, loginCount int, createdAt, updatedAt time.Time) (*Client, error) {
	if id == 0 {
		return nil, fmt.Errorf("client ID cannot be zero")
	}
	return &Client{
		id:           id,
		appID:        appID,
		username:     username,
		passwordHash: passwordHash,
		hwid:         hwid,
		licenseID:    licenseID,
		banned:       banned,
		expiresAt:    expiresAt,
		lastLogin:    lastLogin,
		loginCount:   loginCount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (c *Client) ID() uint              { return c.id }
func (c *Client) AppID() uint           { return c.appID }
func (c *Client) Username() string      { return c.username }
func (c *Client) PasswordHash() string  { return c.passwordHash }
func (c *Client) HWID() string          { return c.hwid }
func (c *Client) LicenseID() *uint      { return c.licenseID }
func (c *Client) Banned() bool          { return c.banned }
func (c *Client) ExpiresAt() time.Time  { return c.expiresAt }
func (c *Client) LastLogin() *time.Time { return c.lastLogin }
func (c *Client) LoginCount() int       { return c.loginCount }
func (c *Client) CreatedAt() time.Time  { return c.createdAt }
func (c *Client) UpdatedAt() time.Time  { return c.updatedAt }

// SetID sets the client ID after insert (persistence layer only).
func (c *Client) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("client ID cannot be zero")
	}
	c.id = id
	return nil
}

// IsExpired reports the derived expiry state at now.
func (c *Client) IsExpired(now time.Time) bool {
	return now.After(c.expiresAt)
}

// IsActive reports the derived usable state: not banned and not expired.
func (c *Client) IsActive(now time.Time) bool {
	return !c.banned && !c.IsExpired(now)
}

// CheckHWID validates supplied against the stored HWID under the app's
// hwidLock setting. When the lock is off, or no HWID is stored yet, the
// supplied value is adopted (AdoptHWID must then be persisted).
// Returns false only on a locked mismatch.
func (c *Client) CheckHWID(supplied string, hwidLock bool) bool {
	if !hwidLock {
		return true
	}
	if c.hwid == "" {
		return true
	}
	return c.hwid == supplied
}

// AdoptHWID stores the supplied HWID. On every unlocked login the
// first-seen value is silently adopted or updated.
func (c *Client) AdoptHWID(hwid string) {
	if hwid == "" || c.hwid == hwid {
		return
	}
	c.hwid = hwid
	c.updatedAt = time.Now().UTC()
}

// ResetHWID clears the stored HWID so the next login rebinds.
func (c *Client) ResetHWID() {
	c.hwid = ""
	c.updatedAt = time.Now().UTC()
}

// RecordLogin bumps the login counter and timestamp.
func (c *Client) RecordLogin(now time.Time) {
	t := now.UTC()
	c.lastLogin = &t
	c.loginCount++
	c.updatedAt = t
}

// SetBanned sets the ban flag.
func (c *Client) SetBanned(banned bool) {
	c.banned = banned
	c.updatedAt = time.Now().UTC()
}

// ExtendExpiry adds days to the current expiresAt.
func (c *Client) ExtendExpiry(days int) error {
	if days <= 0 {
		return fmt.Errorf("extension days must be positive")
	}
	c.expiresAt = c.expiresAt.AddDate(0, 0, days)
	c.updatedAt = time.Now().UTC()
	return nil
}
