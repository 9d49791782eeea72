// Package usecases contains the client session application services:
// the public register/login/validate surface plus the owner-side client
// management operations.
package usecases

import "context"

// PasswordHasher abstracts credential hashing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TransactionManager runs a function inside one database transaction so
// client creation and license consumption commit or roll back together.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
