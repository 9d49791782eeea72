// Package id generates the random identifiers used across the system:
// license keys, app credentials and payment order references. All
// generation uses crypto/rand; uniqueness is enforced by the store's
// unique indexes with a bounded retry loop at the call sites.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"keyforge/internal/shared/constants"
)

// Base62 alphabet: 0-9, A-Z, a-z
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewLicenseKey generates a random license key of 24 lowercase hex chars.
func NewLicenseKey() (string, error) {
	buf := make([]byte, constants.LicenseKeyHexLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate license key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewAppID generates a random base62 app identifier.
func NewAppID() (string, error) {
	return generate(constants.AppIDLength)
}

// NewAppSecret generates a random base62 app secret.
func NewAppSecret() (string, error) {
	return generate(constants.AppSecretLength)
}

// NewOrderRef generates a prefixed payment order reference, e.g.
// "ord_3xK9mP2vL3nQ".
func NewOrderRef() (string, error) {
	s, err := generate(12)
	if err != nil {
		return "", err
	}
	return "ord_" + s, nil
}

func generate(length int) (string, error) {
	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}
