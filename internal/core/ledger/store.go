package ledger

import (
	"context"
	"errors"
)

var (
	// ErrAccountExists is returned when registering an account number
	// that is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrBadCredentials is returned on authentication failure. It does
	// not reveal whether the account or the password was wrong.
	ErrBadCredentials = errors.New("invalid account number or password")
)

// AccountStore loads and persists the registered accounts.
type AccountStore interface {
	Load(ctx context.Context) ([]Account, error)
	Save(ctx context.Context, accounts []Account) error
}

// TransactionStore persists transactions. Entries are immutable, so the
// store appends rather than rewriting.
type TransactionStore interface {
	Load(ctx context.Context) ([]Transaction, error)
	Append(ctx context.Context, tx Transaction) error
}
