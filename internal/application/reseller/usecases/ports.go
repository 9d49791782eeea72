// Package usecases contains the reseller delegation application
// services: owner-side management plus the reseller's own auth surface.
package usecases

// PasswordHasher abstracts credential hashing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenPair carries the issued access/refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenIssuer mints JWT pairs for an authenticated reseller.
type TokenIssuer interface {
	Issue(subjectID uint, role string) (*TokenPair, error)
}
