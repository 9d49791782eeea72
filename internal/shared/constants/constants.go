package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Context keys
	ContextKeyUserID     = "user_id"
	ContextKeyResellerID = "reseller_id"
	ContextKeyRole       = "role"
	ContextKeyRequestID  = "request_id"

	// Principal roles carried in JWT claims
	RoleOwner    = "owner"
	RoleReseller = "reseller"

	// Database table names
	TableUsers     = "users"
	TableApps      = "apps"
	TableLicenses  = "licenses"
	TableResellers = "resellers"
	TableClients   = "clients"
	TablePayments  = "payments"
	TableRefunds   = "payment_refunds"

	// Key generation
	LicenseKeyHexLength = 24
	AppIDLength         = 16
	AppSecretLength     = 32
	KeyGenMaxAttempts   = 5

	// Client accounts
	MinClientUsernameLength = 3
)
