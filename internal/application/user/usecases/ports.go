// Package usecases contains the owner account application services:
// registration, login and profile reads.
package usecases

// PasswordHasher abstracts credential hashing so use cases stay free of
// the bcrypt dependency.
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

// TokenIssuer mints JWT pairs for an authenticated subject.
type TokenIssuer interface {
	Issue(subjectID uint, role string) (*TokenPair, error)
}
