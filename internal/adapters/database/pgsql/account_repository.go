package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type pgxAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountStore = (*pgxAccountRepository)(nil)

const accountColumns = `account_id, client_id, kind, balance, status, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.ClientID,
		&acc.Kind,
		&acc.Balance,
		&acc.Status,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	return acc, err
}

// SaveAccount inserts a new account and returns the id assigned by the sequence.
func (r *pgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	query := `
		INSERT INTO accounts (client_id, kind, balance, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING account_id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		account.ClientID,
		account.Kind,
		account.Balance,
		account.Status,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, storeError(fmt.Sprintf("failed to save account for client %d", account.ClientID), err)
	}
	return id, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *pgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, storeError(fmt.Sprintf("failed to find account %d", accountID), err)
	}
	return &acc, nil
}

func (r *pgxAccountRepository) IsActive(ctx context.Context, accountID int64) (bool, error) {
	acc, err := r.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return acc.IsActive(), nil
}

// ListAccountsByClient returns accounts ordered by id.
func (r *pgxAccountRepository) ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1 ORDER BY account_id;`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("failed to list accounts for client %d", clientID), err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, storeError("failed to scan account row", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating account rows", err)
	}
	return accounts, nil
}

// UpdateBalance overwrites the balance. The caller holds the row lock.
func (r *pgxAccountRepository) UpdateBalance(ctx context.Context, accountID int64, newBalance decimal.Decimal, userID int64, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4;
	`
	tag, err := r.db.Exec(ctx, query, newBalance, now, userID, accountID)
	if err != nil {
		return storeError(fmt.Sprintf("failed to update balance for account %d", accountID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d not found during balance update", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// LockAccountForUpdate takes the row lock for the rest of the transaction.
// Waiting for a held lock is bounded by ctx.
func (r *pgxAccountRepository) LockAccountForUpdate(ctx context.Context, accountID int64) error {
	query := `SELECT account_id FROM accounts WHERE account_id = $1 FOR UPDATE;`
	var id int64
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return storeError(fmt.Sprintf("lock account %d", accountID), err)
	}
	return nil
}
