package reseller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedReseller(t *testing.T, limit int) *Reseller {
	t.Helper()
	r, err := NewReseller(1, "dealer", "hash", limit, AllowedActions{Create: true, BanUnban: true})
	require.NoError(t, err)
	return r
}

func TestNewReseller(t *testing.T) {
	r := limitedReseller(t, 5)
	assert.True(t, r.Active())
	assert.Equal(t, 5, r.LicenseLimit())
	assert.Equal(t, 0, r.UsedLicenses())

	_, err := NewReseller(0, "dealer", "hash", 5, AllowedActions{})
	assert.Error(t, err)

	_, err = NewReseller(1, "ab", "hash", 5, AllowedActions{})
	assert.Error(t, err)

	_, err = NewReseller(1, "dealer", "", 5, AllowedActions{})
	assert.Error(t, err)

	_, err = NewReseller(1, "dealer", "hash", -2, AllowedActions{})
	assert.Error(t, err)
}

func TestDeleteActionAlwaysForcedOff(t *testing.T) {
	r, err := NewReseller(1, "dealer", "hash", 5, AllowedActions{
		Create:     true,
		BanUnban:   true,
		EditExpiry: true,
		Delete:     true, // must be ignored
	})
	require.NoError(t, err)
	assert.False(t, r.AllowedActions().Delete)
	assert.False(t, r.HasPermission(ActionDelete))

	r.SetAllowedActions(AllowedActions{Delete: true})
	assert.False(t, r.AllowedActions().Delete)

	// Sanitized on reconstruction too
	r2, err := ReconstructReseller(1, 1, "dealer", "hash", 5, 0, true, AllowedActions{Delete: true}, r.CreatedAt(), r.UpdatedAt())
	require.NoError(t, err)
	assert.False(t, r2.HasPermission(ActionDelete))
}

func TestCanCreateLicense(t *testing.T) {
	r := limitedReseller(t, 2)
	assert.True(t, r.CanCreateLicense())

	r.IncrementUsedLicenses()
	assert.True(t, r.CanCreateLicense())

	r.IncrementUsedLicenses()
	assert.False(t, r.CanCreateLicense(), "limit reached")

	// Raising the limit frees the quota again
	require.NoError(t, r.SetLicenseLimit(3))
	assert.True(t, r.CanCreateLicense())

	unlimited := limitedReseller(t, UnlimitedLicenses)
	for i := 0; i < 100; i++ {
		unlimited.IncrementUsedLicenses()
	}
	assert.True(t, unlimited.CanCreateLicense())
}

func TestInactiveResellerHasNoRights(t *testing.T) {
	r := limitedReseller(t, 5)
	r.SetActive(false)

	assert.False(t, r.CanCreateLicense())
	assert.False(t, r.HasPermission(ActionCreate))
	assert.False(t, r.HasPermission(ActionBanUnban))
	assert.False(t, r.HasPermission(ActionEditExpiry))
}

func TestHasPermission(t *testing.T) {
	r, err := NewReseller(1, "dealer", "hash", 5, AllowedActions{Create: true, EditExpiry: true})
	require.NoError(t, err)

	assert.True(t, r.HasPermission(ActionCreate))
	assert.False(t, r.HasPermission(ActionBanUnban))
	assert.True(t, r.HasPermission(ActionEditExpiry))
	assert.False(t, r.HasPermission(Action("unknown")))
}

func TestDecrementFloorsAtZero(t *testing.T) {
	r := limitedReseller(t, 5)

	r.DecrementUsedLicenses()
	assert.Equal(t, 0, r.UsedLicenses())

	r.IncrementUsedLicenses()
	r.IncrementUsedLicenses()
	r.DecrementUsedLicenses()
	assert.Equal(t, 1, r.UsedLicenses())
}

func TestRemainingQuota(t *testing.T) {
	r := limitedReseller(t, 3)
	assert.Equal(t, 3, r.RemainingQuota())

	r.IncrementUsedLicenses()
	assert.Equal(t, 2, r.RemainingQuota())

	unlimited := limitedReseller(t, UnlimitedLicenses)
	assert.Equal(t, UnlimitedLicenses, unlimited.RemainingQuota())
}
