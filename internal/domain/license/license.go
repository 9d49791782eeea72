// Package license holds the license aggregate and its lifecycle rules.
// A license moves ACTIVE -> {BANNED, REVOKED}; BANNED toggles back to
// ACTIVE, REVOKED is terminal. Expiry is a derived read-time view over
// expiresAt and can co-occur with any stored status. Consumption is a
// separate tagged variant so "used without a consumer" is
// unrepresentable.
package license

import (
	"fmt"
	"regexp"
	"time"
)

// Status is the stored lifecycle state.
type Status string

const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
	StatusBanned  Status = "banned"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusRevoked || s == StatusBanned
}

// CreatorType records which kind of principal issued the license.
type CreatorType string

const (
	CreatorOwner    CreatorType = "owner"
	CreatorReseller CreatorType = "reseller"
)

// Consumption binds a license to the client that redeemed it. The zero
// value means unconsumed; ConsumedBy constructs the consumed variant.
type Consumption struct {
	consumed bool
	clientID uint
}

// ConsumedBy returns a Consumption bound to clientID.
func ConsumedBy(clientID uint) Consumption {
	return Consumption{consumed: true, clientID: clientID}
}

// Unconsumed returns the empty consumption state.
func Unconsumed() Consumption {
	return Consumption{}
}

func (c Consumption) IsConsumed() bool { return c.consumed }

// ClientID returns the consuming client and whether one exists.
func (c Consumption) ClientID() (uint, bool) {
	if !c.consumed {
		return 0, false
	}
	return c.clientID, true
}

var keyPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// ValidKeyFormat reports whether key is 24 lowercase hex characters.
// Custom keys supplied by owners must match the generated format.
func ValidKeyFormat(key string) bool {
	return keyPattern.MatchString(key)
}

// License represents the license aggregate root.
type License struct {
	id          uint
	appID       uint
	key         string
	createdBy   uint
	creatorType CreatorType
	resellerID  *uint
	status      Status
	consumption Consumption
	expiresAt   time.Time
	note        string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewLicense creates an active, unconsumed license. expiresAt must be
// strictly in the future. resellerID is set when creatorType is
// CreatorReseller.
func NewLicense(appID uint, key string, createdBy uint, creatorType CreatorType, resellerID *uint, expiresAt time.Time, note string) (*License, error) {
	if appID == 0 {
		return nil, fmt.Errorf("app ID is required")
	}
	if !ValidKeyFormat(key) {
		return nil, fmt.Errorf("license key must be 24 hex characters")
	}
	if createdBy == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if creatorType != CreatorOwner && creatorType != CreatorReseller {
		return nil, fmt.Errorf("invalid creator type: %s", creatorType)
	}
	if creatorType == CreatorReseller && resellerID == nil {
		return nil, fmt.Errorf("reseller ID is required for reseller-created licenses")
	}
	if !expiresAt.After(time.Now()) {
		return nil, fmt.Errorf("expiry must be in the future")
	}
	if len(note) > 500 {
		return nil, fmt.Errorf("note must be at most 500 characters")
	}

	now := time.Now().UTC()
	return &License{
		appID:       appID,
		key:         key,
		createdBy:   createdBy,
		creatorType: creatorType,
		resellerID:  resellerID,
		status:      StatusActive,
		consumption: Unconsumed(),
		expiresAt:   expiresAt.UTC(),
		note:        note,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructLicense rebuilds a license from persistence.
func ReconstructLicense(id, appID uint, key string, createdBy uint, creatorType CreatorType, resellerID *uint, status Status, consumption Consumption, expiresAt time.Time, note string, createdAt, updatedAt time.Time) (*License, error) {
	if id == 0 {
		return nil, fmt.Errorf("license ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid license status: %s", status)
	}
	return &License{
		id:          id,
		appID:       appID,
		key:         key,
		createdBy:   createdBy,
		creatorType: creatorType,
		resellerID:  resellerID,
		status:      status,
		consumption: consumption,
		expiresAt:   expiresAt,
		note:        note,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (l *License) ID() uint                 { return l.id }
func (l *License) AppID() uint              { return l.appID }
func (l *License) Key() string              { return l.key }
func (l *License) CreatedBy() uint          { return l.createdBy }
func (l *License) CreatorType() CreatorType { return l.creatorType }
func (l *License) ResellerID() *uint        { return l.resellerID }
func (l *License) Status() Status           { return l.status }
func (l *License) Consumption() Consumption { return l.consumption }
func (l *License) ExpiresAt() time.Time     { return l.expiresAt }
func (l *License) Note() string             { return l.note }
func (l *License) CreatedAt() time.Time     { return l.createdAt }
func (l *License) UpdatedAt() time.Time     { return l.updatedAt }

// SetID sets the license ID after insert (persistence layer only).
func (l *License) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("license ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("license ID cannot be zero")
	}
	l.id = id
	return nil
}

// IsExpired reports the derived expiry state at now.
func (l *License) IsExpired(now time.Time) bool {
	return now.After(l.expiresAt)
}

// IsResellerCreated reports whether a reseller issued this license.
func (l *License) IsResellerCreated() bool {
	return l.creatorType == CreatorReseller
}

// CanBeConsumed checks every redemption precondition in the order the
// client session layer reports them: usage, status, expiry.
func (l *License) CanBeConsumed(now time.Time) error {
	if l.consumption.IsConsumed() {
		return ErrAlreadyUsed
	}
	if l.status != StatusActive {
		return statusError(l.status)
	}
	if l.IsExpired(now) {
		return ErrExpired
	}
	return nil
}

// Consume binds the license to clientID. This is the only transition
// that sets the consumed state and it never succeeds twice. Callers
// must pair it with the repository's conditional update so concurrent
// redemptions cannot both commit.
func (l *License) Consume(clientID uint, now time.Time) error {
	if clientID == 0 {
		return fmt.Errorf("client ID is required")
	}
	if err := l.CanBeConsumed(now); err != nil {
		return err
	}
	l.consumption = ConsumedBy(clientID)
	l.updatedAt = time.Now().UTC()
	return nil
}

// Release clears the consumption state. Used when the consuming client
// account is deleted, freeing the key for reuse.
func (l *License) Release() {
	l.consumption = Unconsumed()
	l.updatedAt = time.Now().UTC()
}

// ToggleBan flips between ACTIVE and BANNED. Any other starting state
// is rejected; in particular a REVOKED license never returns to ACTIVE.
func (l *License) ToggleBan() error {
	switch l.status {
	case StatusActive:
		l.status = StatusBanned
	case StatusBanned:
		l.status = StatusActive
	case StatusRevoked:
		return ErrRevokedImmutable
	default:
		return fmt.Errorf("cannot toggle ban from status %s", l.status)
	}
	l.updatedAt = time.Now().UTC()
	return nil
}

// Revoke sets the terminal REVOKED status unconditionally.
func (l *License) Revoke() {
	l.status = StatusRevoked
	l.updatedAt = time.Now().UTC()
}

// ExtendExpiry adds days to the current expiresAt, not to now, so
// extensions accumulate even on an already-expired license.
func (l *License) ExtendExpiry(days int) error {
	if days <= 0 {
		return fmt.Errorf("extension days must be positive")
	}
	l.expiresAt = l.expiresAt.AddDate(0, 0, days)
	l.updatedAt = time.Now().UTC()
	return nil
}

// SetExpiry replaces expiresAt (owner/reseller edit-expiry action).
func (l *License) SetExpiry(expiresAt time.Time) error {
	if !expiresAt.After(time.Now()) {
		return fmt.Errorf("expiry must be in the future")
	}
	l.expiresAt = expiresAt.UTC()
	l.updatedAt = time.Now().UTC()
	return nil
}

// SetNote replaces the free-text note.
func (l *License) SetNote(note string) error {
	if len(note) > 500 {
		return fmt.Errorf("note must be at most 500 characters")
	}
	l.note = note
	l.updatedAt = time.Now().UTC()
	return nil
}
