package app

// MessageKey names one of the client-facing failure strings an owner can
// override per app. Every key has a fixed default; overrides are stored
// sparsely and an empty override resets the key to its default.
type MessageKey string

const (
	MsgLicenseNotFound      MessageKey = "license_not_found"
	MsgLicenseUsed          MessageKey = "license_used"
	MsgLicenseBanned        MessageKey = "license_banned"
	MsgLicenseRevoked       MessageKey = "license_revoked"
	MsgLicenseExpired       MessageKey = "license_expired"
	MsgAppPaused            MessageKey = "app_paused"
	MsgCustomKeyNotAllowed  MessageKey = "custom_key_not_allowed"
	MsgKeyExists            MessageKey = "key_exists"
	MsgUsernameTaken        MessageKey = "username_taken"
	MsgUsernameTooShort     MessageKey = "username_too_short"
	MsgInvalidCredentials   MessageKey = "invalid_credentials"
	MsgClientBanned         MessageKey = "client_banned"
	MsgClientExpired        MessageKey = "client_expired"
	MsgHwidMismatch         MessageKey = "hwid_mismatch"
	MsgHwidRequired         MessageKey = "hwid_required"
	MsgAppNotFound          MessageKey = "app_not_found"
	MsgQuotaExceeded        MessageKey = "quota_exceeded"
	MsgResellerInactive     MessageKey = "reseller_inactive"
	MsgResellerLimitReached MessageKey = "reseller_limit_reached"
)

var defaultMessages = map[MessageKey]string{
	MsgLicenseNotFound:      "License key not found",
	MsgLicenseUsed:          "This license key has already been used",
	MsgLicenseBanned:        "This license key is banned",
	MsgLicenseRevoked:       "This license key has been revoked",
	MsgLicenseExpired:       "This license key has expired",
	MsgAppPaused:            "This application is currently paused",
	MsgCustomKeyNotAllowed:  "Custom license keys are not allowed for this application",
	MsgKeyExists:            "This license key already exists",
	MsgUsernameTaken:        "Username is already taken",
	MsgUsernameTooShort:     "Username must be at least 3 characters",
	MsgInvalidCredentials:   "Invalid username or password",
	MsgClientBanned:         "Your account has been banned",
	MsgClientExpired:        "Your subscription has expired",
	MsgHwidMismatch:         "Hardware ID mismatch, please contact support",
	MsgHwidRequired:         "Hardware ID is required",
	MsgAppNotFound:          "Application not found",
	MsgQuotaExceeded:        "License quota exceeded for this application",
	MsgResellerInactive:     "This reseller account is inactive",
	MsgResellerLimitReached: "Reseller license limit reached",
}

// MessageKeys lists every overridable key in a stable order.
var MessageKeys = []MessageKey{
	MsgLicenseNotFound,
	MsgLicenseUsed,
	MsgLicenseBanned,
	MsgLicenseRevoked,
	MsgLicenseExpired,
	MsgAppPaused,
	MsgCustomKeyNotAllowed,
	MsgKeyExists,
	MsgUsernameTaken,
	MsgUsernameTooShort,
	MsgInvalidCredentials,
	MsgClientBanned,
	MsgClientExpired,
	MsgHwidMismatch,
	MsgHwidRequired,
	MsgAppNotFound,
	MsgQuotaExceeded,
	MsgResellerInactive,
	MsgResellerLimitReached,
}

// IsValidMessageKey reports whether key names a known message.
func IsValidMessageKey(key MessageKey) bool {
	_, ok := defaultMessages[key]
	return ok
}

// DefaultMessage returns the built-in string for key.
func DefaultMessage(key MessageKey) string {
	return defaultMessages[key]
}
