package license

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "a1b2c3d4e5f60718293a4b5c"

func futureExpiry() time.Time {
	return time.Now().Add(30 * 24 * time.Hour)
}

func activeLicense(t *testing.T) *License {
	t.Helper()
	lic, err := NewLicense(1, testKey, 1, CreatorOwner, nil, futureExpiry(), "")
	require.NoError(t, err)
	require.NoError(t, lic.SetID(10))
	return lic
}

func resellerLicense(t *testing.T) *License {
	t.Helper()
	rid := uint(7)
	lic, err := NewLicense(1, testKey, 7, CreatorReseller, &rid, futureExpiry(), "bulk batch 3")
	require.NoError(t, err)
	return lic
}

// reconstruct builds a license in an arbitrary stored state.
func reconstruct(t *testing.T, status Status, consumption Consumption, expiresAt time.Time) *License {
	t.Helper()
	lic, err := ReconstructLicense(10, 1, testKey, 1, CreatorOwner, nil, status, consumption, expiresAt, "", time.Now(), time.Now())
	require.NoError(t, err)
	return lic
}

func TestNewLicense(t *testing.T) {
	rid := uint(3)
	tests := []struct {
		name        string
		appID       uint
		key         string
		creatorType CreatorType
		resellerID  *uint
		expiresAt   time.Time
		wantErr     string
	}{
		{"owner created", 1, testKey, CreatorOwner, nil, futureExpiry(), ""},
		{"reseller created", 1, testKey, CreatorReseller, &rid, futureExpiry(), ""},
		{"missing app", 0, testKey, CreatorOwner, nil, futureExpiry(), "app ID is required"},
		{"bad key format", 1, "SHORT", CreatorOwner, nil, futureExpiry(), "24 hex characters"},
		{"uppercase key rejected", 1, "A1B2C3D4E5F60718293A4B5C", CreatorOwner, nil, futureExpiry(), "24 hex characters"},
		{"reseller without id", 1, testKey, CreatorReseller, nil, futureExpiry(), "reseller ID is required"},
		{"past expiry", 1, testKey, CreatorOwner, nil, time.Now().Add(-time.Hour), "expiry must be in the future"},
		{"expiry exactly now", 1, testKey, CreatorOwner, nil, time.Now(), "expiry must be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lic, err := NewLicense(tt.appID, tt.key, 1, tt.creatorType, tt.resellerID, tt.expiresAt, "")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusActive, lic.Status())
			assert.False(t, lic.Consumption().IsConsumed())
		})
	}
}

func TestConsume(t *testing.T) {
	lic := activeLicense(t)
	now := time.Now()

	require.NoError(t, lic.Consume(42, now))

	assert.True(t, lic.Consumption().IsConsumed())
	clientID, ok := lic.Consumption().ClientID()
	assert.True(t, ok)
	assert.Equal(t, uint(42), clientID)

	// Second consume always fails
	err := lic.Consume(43, now)
	assert.ErrorIs(t, err, ErrAlreadyUsed)
	clientID, _ = lic.Consumption().ClientID()
	assert.Equal(t, uint(42), clientID, "failed consume must not rebind the client")
}

func TestConsumePreconditions(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		lic     *License
		wantErr error
	}{
		{"banned", reconstruct(t, StatusBanned, Unconsumed(), futureExpiry()), ErrBanned},
		{"revoked", reconstruct(t, StatusRevoked, Unconsumed(), futureExpiry()), ErrRevoked},
		{"expired", reconstruct(t, StatusActive, Unconsumed(), now.Add(-time.Minute)), ErrExpired},
		{"already used", reconstruct(t, StatusActive, ConsumedBy(5), futureExpiry()), ErrAlreadyUsed},
		{"used reported before banned", reconstruct(t, StatusBanned, ConsumedBy(5), futureExpiry()), ErrAlreadyUsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.lic.Status()
			err := tt.lic.Consume(99, now)
			assert.ErrorIs(t, err, tt.wantErr)
			// Failure leaves status and consumption untouched
			assert.Equal(t, before, tt.lic.Status())
		})
	}
}

func TestToggleBan(t *testing.T) {
	lic := activeLicense(t)

	require.NoError(t, lic.ToggleBan())
	assert.Equal(t, StatusBanned, lic.Status())

	require.NoError(t, lic.ToggleBan())
	assert.Equal(t, StatusActive, lic.Status())
}

func TestToggleBanRevokedRejected(t *testing.T) {
	lic := activeLicense(t)
	lic.Revoke()

	err := lic.ToggleBan()
	assert.ErrorIs(t, err, ErrRevokedImmutable)
	assert.Equal(t, StatusRevoked, lic.Status(), "revoked license must stay revoked")
}

func TestBanDoesNotClearConsumption(t *testing.T) {
	lic := activeLicense(t)
	require.NoError(t, lic.Consume(42, time.Now()))

	require.NoError(t, lic.ToggleBan())

	assert.Equal(t, StatusBanned, lic.Status())
	assert.True(t, lic.Consumption().IsConsumed(), "ban must not clear usage")
}

func TestRevokeIsUnconditional(t *testing.T) {
	for _, start := range []Status{StatusActive, StatusBanned} {
		lic := reconstruct(t, start, ConsumedBy(5), futureExpiry())
		lic.Revoke()
		assert.Equal(t, StatusRevoked, lic.Status())
	}
}

func TestExtendExpiry(t *testing.T) {
	base := time.Now().Add(-48 * time.Hour).UTC()
	lic := reconstruct(t, StatusActive, Unconsumed(), base)
	require.True(t, lic.IsExpired(time.Now()))

	// Extension is cumulative from expiresAt, not from now
	require.NoError(t, lic.ExtendExpiry(1))
	assert.Equal(t, base.AddDate(0, 0, 1), lic.ExpiresAt())
	assert.True(t, lic.IsExpired(time.Now()), "one day is not enough to catch up")

	require.NoError(t, lic.ExtendExpiry(7))
	assert.Equal(t, base.AddDate(0, 0, 8), lic.ExpiresAt())
	assert.False(t, lic.IsExpired(time.Now()))

	assert.Error(t, lic.ExtendExpiry(0))
	assert.Error(t, lic.ExtendExpiry(-3))
}

func TestRelease(t *testing.T) {
	lic := activeLicense(t)
	require.NoError(t, lic.Consume(42, time.Now()))

	lic.Release()
	assert.False(t, lic.Consumption().IsConsumed())
	_, ok := lic.Consumption().ClientID()
	assert.False(t, ok)
}

func TestResellerLicense(t *testing.T) {
	lic := resellerLicense(t)
	assert.True(t, lic.IsResellerCreated())
	require.NotNil(t, lic.ResellerID())
	assert.Equal(t, uint(7), *lic.ResellerID())
	assert.Equal(t, "bulk batch 3", lic.Note())
}

func TestValidKeyFormat(t *testing.T) {
	assert.True(t, ValidKeyFormat("a1b2c3d4e5f60718293a4b5c"))
	assert.False(t, ValidKeyFormat("a1b2c3d4e5f60718293a4b5"))   // 23 chars
	assert.False(t, ValidKeyFormat("a1b2c3d4e5f60718293a4b5cd")) // 25 chars
	assert.False(t, ValidKeyFormat("A1B2C3D4E5F60718293A4B5C"))  // uppercase
	assert.False(t, ValidKeyFormat("g1b2c3d4e5f60718293a4b5c"))  // non-hex
	assert.False(t, ValidKeyFormat(""))
}
