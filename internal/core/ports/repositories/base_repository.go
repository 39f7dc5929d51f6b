package repositories

import (
	"context"
)

// Stores groups the stores a unit of work operates on. Outside a unit of work
// the same interfaces read committed state only.
type Stores struct {
	Accounts     AccountStore
	Transactions TransactionLog
	Credits      CreditStore
	Clients      ClientDirectory
	Audit        AuditLog
}

// UnitOfWork runs fn against transaction-bound stores. Every write made through
// those stores commits if fn returns nil and is discarded otherwise.
// A failed commit must be reported as apperrors.ErrOutcomeUncertain.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
