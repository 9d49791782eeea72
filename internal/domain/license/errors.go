package license

import "errors"

// Sentinel errors for redemption preconditions. The client session layer
// maps each to the app's configured message.
var (
	ErrAlreadyUsed      = errors.New("license already used")
	ErrBanned           = errors.New("license is banned")
	ErrRevoked          = errors.New("license is revoked")
	ErrExpired          = errors.New("license is expired")
	ErrRevokedImmutable = errors.New("revoked licenses cannot be modified")
)

func statusError(s Status) error {
	switch s {
	case StatusBanned:
		return ErrBanned
	case StatusRevoked:
		return ErrRevoked
	default:
		return errors.New("license is not active")
	}
}
