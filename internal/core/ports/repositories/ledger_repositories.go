package repositories

import (
	"context"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
)

// TransactionLog is the append-only record of money movements.
type TransactionLog interface {
	// AppendTransaction stores one leg and returns its id.
	AppendTransaction(ctx context.Context, txn domain.Transaction) (string, error)

	// ListTransactionsByAccount returns the newest transactions first.
	ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error)
}

// CreditStore records credit requests per account.
type CreditStore interface {
	// SaveCreditRequest persists a new request and returns its id.
	SaveCreditRequest(ctx context.Context, req domain.CreditRequest) (int64, error)

	// CountActiveByAccount counts requests in ACTIVE status for the account.
	CountActiveByAccount(ctx context.Context, accountID int64) (int, error)

	// ListCreditRequestsByAccount returns the newest requests first.
	ListCreditRequestsByAccount(ctx context.Context, accountID int64) ([]domain.CreditRequest, error)
}

// ClientDirectory looks up and creates client identities, keyed by email uniqueness.
type ClientDirectory interface {
	// ExistsByEmail matches case-insensitively.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// SaveClient persists a client and returns its id. A taken email yields apperrors.ErrDuplicateEmail.
	SaveClient(ctx context.Context, client domain.Client) (int64, error)

	// FindClientByID returns apperrors.ErrNotFound when absent.
	FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error)
}

// AuditLog is the audit-event stream, kept apart from the transaction ledger.
type AuditLog interface {
	AppendAuditEvent(ctx context.Context, event domain.AuditEvent) error
}
