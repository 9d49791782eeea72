// Package app holds the tenant application aggregate. An app is owned by
// exactly one user, authenticated by an appId/appSecret pair generated
// once at creation, and carries the per-app settings and client-facing
// message overrides consulted by the client session layer.
package app

import (
	"fmt"
	"strings"
	"time"
)

// Settings are the per-app behavior toggles.
type Settings struct {
	HwidLock              bool `json:"hwid_lock"`
	AllowCustomLicenseKey bool `json:"allow_custom_license_key"`
}

// App represents the tenant application aggregate root.
type App struct {
	id        uint
	ownerID   uint
	name      string
	appID     string
	appSecret string
	paused    bool
	settings  Settings
	messages  map[MessageKey]string
	createdAt time.Time
	updatedAt time.Time
}

// NewApp creates an app with freshly generated credentials. The appID
// must already have been collision-checked by the caller; its global
// uniqueness is ultimately guaranteed by the store's unique index.
func NewApp(ownerID uint, name, appID, appSecret string, settings Settings) (*App, error) {
	name = strings.TrimSpace(name)
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("app name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("app name must be at most 100 characters")
	}
	if appID == "" || appSecret == "" {
		return nil, fmt.Errorf("app credentials are required")
	}

	now := time.Now().UTC()
	return &App{
		ownerID:   ownerID,
		name:      name,
		appID:     appID,
		appSecret: appSecret,
		settings:  settings,
		messages:  map[MessageKey]string{},
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructApp rebuilds an app from persistence. overrides may be nil.
func ReconstructApp(id, ownerID uint, name, appID, appSecret string, paused bool, settings Settings, overrides map[MessageKey]string, createdAt, updatedAt time.Time) (*App, error) {
	if id == 0 {
		return nil, fmt.Errorf("app ID cannot be zero")
	}
	if overrides == nil {
		overrides = map[MessageKey]string{}
	}
	return &App{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		appID:     appID,
		appSecret: appSecret,
		paused:    paused,
		settings:  settings,
		messages:  overrides,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (a *App) ID() uint             { return a.id }
func (a *App) OwnerID() uint        { return a.ownerID }
func (a *App) Name() string         { return a.name }
func (a *App) AppID() string        { return a.appID }
func (a *App) AppSecret() string    { return a.appSecret }
func (a *App) Paused() bool         { return a.paused }
func (a *App) Settings() Settings   { return a.settings }
func (a *App) CreatedAt() time.Time { return a.createdAt }
func (a *App) UpdatedAt() time.Time { return a.updatedAt }

// SetID sets the app ID after insert (persistence layer only).
func (a *App) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("app ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("app ID cannot be zero")
	}
	a.id = id
	return nil
}

// IsOwnedBy reports whether userID owns this app.
func (a *App) IsOwnedBy(userID uint) bool {
	return a.ownerID == userID
}

// Rename changes the app name.
func (a *App) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("app name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("app name must be at most 100 characters")
	}
	a.name = name
	a.updatedAt = time.Now().UTC()
	return nil
}

// SetPaused toggles the paused flag. A paused app rejects all client
// registrations and logins.
func (a *App) SetPaused(paused bool) {
	a.paused = paused
	a.updatedAt = time.Now().UTC()
}

// UpdateSettings replaces the settings block.
func (a *App) UpdateSettings(settings Settings) {
	a.settings = settings
	a.updatedAt = time.Now().UTC()
}

// Message returns the client-facing string for key, honoring any
// override set by the owner.
func (a *App) Message(key MessageKey) string {
	if msg, ok := a.messages[key]; ok && msg != "" {
		return msg
	}
	return defaultMessages[key]
}

// Messages returns the full effective message table, defaults merged
// with overrides.
func (a *App) Messages() map[MessageKey]string {
	out := make(map[MessageKey]string, len(defaultMessages))
	for _, key := range MessageKeys {
		out[key] = a.Message(key)
	}
	return out
}

// Overrides returns only the messages the owner has overridden.
func (a *App) Overrides() map[MessageKey]string {
	out := make(map[MessageKey]string, len(a.messages))
	for k, v := range a.messages {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// OverrideMessage sets a custom string for key. An empty value resets
// the key to its default.
func (a *App) OverrideMessage(key MessageKey, value string) error {
	if !IsValidMessageKey(key) {
		return fmt.Errorf("unknown message key: %s", key)
	}
	if len(value) > 500 {
		return fmt.Errorf("message must be at most 500 characters")
	}
	if value == "" {
		delete(a.messages, key)
	} else {
		a.messages[key] = value
	}
	a.updatedAt = time.Now().UTC()
	return nil
}
