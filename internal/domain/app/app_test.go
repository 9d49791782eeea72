package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(1, "My App", "abc123def456ghij", "secretsecretsecretsecretsecret12", Settings{})
	require.NoError(t, err)
	return a
}

func TestNewApp(t *testing.T) {
	tests := []struct {
		name    string
		ownerID uint
		appName string
		wantErr bool
	}{
		{"valid", 1, "My App", false},
		{"trims whitespace", 1, "  My App  ", false},
		{"missing owner", 0, "My App", true},
		{"empty name", 1, "", true},
		{"whitespace name", 1, "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewApp(tt.ownerID, tt.appName, "appid", "secret", Settings{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "My App", a.Name())
			assert.False(t, a.Paused())
		})
	}
}

func TestAppMessageDefaults(t *testing.T) {
	a := validApp(t)

	assert.Equal(t, "License key not found", a.Message(MsgLicenseNotFound))
	assert.Equal(t, "Hardware ID mismatch, please contact support", a.Message(MsgHwidMismatch))

	// All 19 keys resolve to a non-empty default
	msgs := a.Messages()
	assert.Len(t, msgs, 19)
	for key, msg := range msgs {
		assert.NotEmpty(t, msg, "key %s has no default", key)
	}
}

func TestAppOverrideMessage(t *testing.T) {
	a := validApp(t)

	require.NoError(t, a.OverrideMessage(MsgLicenseUsed, "Key already claimed!"))
	assert.Equal(t, "Key already claimed!", a.Message(MsgLicenseUsed))
	assert.Equal(t, map[MessageKey]string{MsgLicenseUsed: "Key already claimed!"}, a.Overrides())

	// Other keys stay on their defaults
	assert.Equal(t, DefaultMessage(MsgLicenseBanned), a.Message(MsgLicenseBanned))

	// Empty value resets to default
	require.NoError(t, a.OverrideMessage(MsgLicenseUsed, ""))
	assert.Equal(t, DefaultMessage(MsgLicenseUsed), a.Message(MsgLicenseUsed))
	assert.Empty(t, a.Overrides())

	// Unknown keys are rejected
	assert.Error(t, a.OverrideMessage(MessageKey("no_such_key"), "boom"))
}

func TestAppPauseAndSettings(t *testing.T) {
	a := validApp(t)

	a.SetPaused(true)
	assert.True(t, a.Paused())

	a.UpdateSettings(Settings{HwidLock: true, AllowCustomLicenseKey: true})
	assert.True(t, a.Settings().HwidLock)
	assert.True(t, a.Settings().AllowCustomLicenseKey)
}

func TestAppOwnership(t *testing.T) {
	a := validApp(t)
	assert.True(t, a.IsOwnedBy(1))
	assert.False(t, a.IsOwnedBy(2))
}
