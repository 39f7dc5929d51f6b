package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	// Returns apperrors.ErrNotFound when absent.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// IsActive reports whether the account exists and is ACTIVE.
	IsActive(ctx context.Context, accountID int64) (bool, error)

	// ListAccountsByClient retrieves every account owned by a client.
	ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and returns its assigned id.
	SaveAccount(ctx context.Context, account domain.Account) (int64, error)

	// UpdateBalance overwrites the balance of an existing account.
	UpdateBalance(ctx context.Context, accountID int64, newBalance decimal.Decimal, userID int64, now time.Time) error
}

// AccountLocker acquires the exclusive per-account scope for the current unit of work.
// The lock is held until the unit of work commits or rolls back.
type AccountLocker interface {
	// LockAccountForUpdate returns apperrors.ErrNotFound when the account does not exist.
	LockAccountForUpdate(ctx context.Context, accountID int64) error
}

// AccountStore combines all account-related repository interfaces
type AccountStore interface {
	AccountReader
	AccountWriter
	AccountLocker
}
