// Package identity defines the account collaborator contract: the
// credential and role store the auth layer draws identity snapshots
// from. It is external by design; MemoryAccounts is the reference
// implementation used by tests and single-process deployments.
package identity

import (
	"context"
	"errors"
)

// Sentinel errors reported by account stores.
var (
	ErrNotFound    = errors.New("identity: account not found")
	ErrEmailTaken  = errors.New("identity: email already registered")
	ErrBadPassword = errors.New("identity: password mismatch")
)

// Account is a stored account. The ID is opaque and stable for the
// account's lifetime.
type Account struct {
	ID    string
	Email string
	Roles []string
}

// Accounts is the identity collaborator contract.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Create reports ErrEmailTaken for duplicate emails.
// - FindByEmail reports ErrNotFound for unknown emails.
// - VerifyPassword reports ErrBadPassword on mismatch and ErrNotFound
//   for unknown accounts.
type Accounts interface {
	Create(ctx context.Context, email, password string, roles ...string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
	VerifyPassword(ctx context.Context, id, password string) error
	Roles(ctx context.Context, id string) ([]string, error)
}
