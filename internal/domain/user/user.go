// Package user holds the app-owner aggregate and the plan entitlement
// model. An owner's quota limits are a pure function of the plan tier;
// the payment bridge is the only writer of the plan field besides an
// explicit downgrade request.
package user

import (
	"fmt"
	"strings"
	"time"
)

// User represents the app-owner aggregate root.
type User struct {
	id           uint
	email        string
	username     string
	passwordHash string
	plan         Plan
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new owner on the free plan.
func NewUser(email, username, passwordHash string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		email:        email,
		username:     username,
		passwordHash: passwordHash,
		plan:         PlanFree,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds an owner from persistence.
func ReconstructUser(id uint, email, username, passwordHash string, plan Plan, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	return &User{
		id:           id,
		email:        email,
		username:     username,
		passwordHash: passwordHash,
		plan:         plan,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Plan() Plan           { return u.plan }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Limits returns the quota caps derived from the current plan.
func (u *User) Limits() Limits {
	return u.plan.Limits()
}

// SetID sets the owner ID after insert (persistence layer only).
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// Upgrade moves the owner to the premium plan. Calling it on a premium
// owner is a no-op so payment webhook replays stay idempotent.
func (u *User) Upgrade() {
	if u.plan == PlanPremium {
		return
	}
	u.plan = PlanPremium
	u.updatedAt = time.Now().UTC()
}

// Downgrade moves the owner back to the free plan.
func (u *User) Downgrade() {
	if u.plan == PlanFree {
		return
	}
	u.plan = PlanFree
	u.updatedAt = time.Now().UTC()
}
