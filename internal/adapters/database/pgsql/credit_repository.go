package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
)

type pgxCreditRepository struct {
	BaseRepository
}

var _ portsrepo.CreditStore = (*pgxCreditRepository)(nil)

func (r *pgxCreditRepository) SaveCreditRequest(ctx context.Context, req domain.CreditRequest) (int64, error) {
	query := `
		INSERT INTO credit_requests (account_id, created_by, approved_by, principal, annual_rate, term_months, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING credit_request_id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		req.AccountID,
		req.CreatedBy,
		req.ApprovedBy,
		req.Principal,
		req.AnnualRate,
		req.TermMonths,
		req.Status,
		req.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, storeError(fmt.Sprintf("failed to save credit request for account %d", req.AccountID), err)
	}
	return id, nil
}

func (r *pgxCreditRepository) CountActiveByAccount(ctx context.Context, accountID int64) (int, error) {
	query := `SELECT COUNT(*) FROM credit_requests WHERE account_id = $1 AND status = $2;`
	var n int
	if err := r.db.QueryRow(ctx, query, accountID, domain.CreditActive).Scan(&n); err != nil {
		return 0, storeError(fmt.Sprintf("failed to count active credits for account %d", accountID), err)
	}
	return n, nil
}

// ListCreditRequestsByAccount returns the newest requests first.
func (r *pgxCreditRepository) ListCreditRequestsByAccount(ctx context.Context, accountID int64) ([]domain.CreditRequest, error) {
	query := `
		SELECT credit_request_id, account_id, created_by, approved_by, principal, annual_rate, term_months, status, created_at
		FROM credit_requests
		WHERE account_id = $1
		ORDER BY credit_request_id DESC;
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("failed to list credit requests for account %d", accountID), err)
	}
	defer rows.Close()

	reqs := []domain.CreditRequest{}
	for rows.Next() {
		var req domain.CreditRequest
		if err := rows.Scan(
			&req.CreditRequestID,
			&req.AccountID,
			&req.CreatedBy,
			&req.ApprovedBy,
			&req.Principal,
			&req.AnnualRate,
			&req.TermMonths,
			&req.Status,
			&req.CreatedAt,
		); err != nil {
			return nil, storeError("failed to scan credit request row", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating credit request rows", err)
	}
	return reqs, nil
}
