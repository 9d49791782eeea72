package id

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLicenseKey(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{24}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := NewLicenseKey()
		require.NoError(t, err)
		assert.True(t, hexPattern.MatchString(key), "key %q is not 24 lowercase hex chars", key)
		assert.False(t, seen[key], "duplicate key generated: %s", key)
		seen[key] = true
	}
}

func TestNewAppCredentials(t *testing.T) {
	appID, err := NewAppID()
	require.NoError(t, err)
	assert.Len(t, appID, 16)

	secret, err := NewAppSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 32)

	assert.NotEqual(t, appID, secret[:16])
}

func TestNewOrderRef(t *testing.T) {
	ref, err := NewOrderRef()
	require.NoError(t, err)
	assert.Regexp(t, `^ord_[0-9A-Za-z]{12}$`, ref)
}
