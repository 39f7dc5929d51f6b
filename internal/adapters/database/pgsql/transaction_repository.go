package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/google/uuid"
)

type pgxTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionLog = (*pgxTransactionRepository)(nil)

// AppendTransaction inserts one leg with a freshly generated UUID.
func (r *pgxTransactionRepository) AppendTransaction(ctx context.Context, txn domain.Transaction) (string, error) {
	txn.TransactionID = uuid.NewString()

	var transferID *string
	if txn.TransferID != "" {
		transferID = &txn.TransferID
	}

	query := `
		INSERT INTO transactions (transaction_id, account_id, amount, transfer_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := r.db.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.Amount,
		transferID,
		txn.CreatedAt,
		txn.CreatedBy,
	); err != nil {
		return "", storeError(fmt.Sprintf("failed to append transaction for account %d", txn.AccountID), err)
	}
	return txn.TransactionID, nil
}

// ListTransactionsByAccount returns the newest legs first. A limit of zero returns all.
func (r *pgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_id, amount, transfer_id, created_at, created_by
		FROM transactions
		WHERE account_id = $1
		ORDER BY entry_seq DESC
		LIMIT NULLIF($2, 0);
	`
	rows, err := r.db.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, storeError(fmt.Sprintf("failed to list transactions for account %d", accountID), err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var transferID *string
		if err := rows.Scan(&txn.TransactionID, &txn.AccountID, &txn.Amount, &transferID, &txn.CreatedAt, &txn.CreatedBy); err != nil {
			return nil, storeError("failed to scan transaction row", err)
		}
		if transferID != nil {
			txn.TransferID = *transferID
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating transaction rows", err)
	}
	return txns, nil
}
