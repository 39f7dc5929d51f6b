package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/SscSPs/teller_ledger_app/internal/core/validation"
)

// DefaultTransactionPageSize applies when a caller passes a non-positive limit.
const DefaultTransactionPageSize = 50

func (s *tellerService) GetAccount(ctx context.Context, accountID int64, actor domain.Actor) (*domain.Account, error) {
	if err := s.AuthorizeActor(ctx, actor, domain.CapReadLedger); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("accountID", accountID); err != nil {
		return nil, err
	}

	account, err := s.readers.Accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	s.LogDebug(ctx, "Account retrieved", slog.Int64("account_id", accountID))
	return account, nil
}

func (s *tellerService) ListClientAccounts(ctx context.Context, clientID int64, actor domain.Actor) ([]domain.Account, error) {
	if err := s.AuthorizeActor(ctx, actor, domain.CapReadLedger); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("clientID", clientID); err != nil {
		return nil, err
	}

	if _, err := s.readers.Clients.FindClientByID(ctx, clientID); err != nil {
		return nil, err
	}
	accounts, err := s.readers.Accounts.ListAccountsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list client accounts", slog.Int64("client_id", clientID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *tellerService) ListAccountTransactions(ctx context.Context, accountID int64, limit int, actor domain.Actor) ([]domain.Transaction, error) {
	if err := s.AuthorizeActor(ctx, actor, domain.CapReadLedger); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("accountID", accountID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTransactionPageSize
	}

	if _, err := s.readers.Accounts.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	txns, err := s.readers.Transactions.ListTransactionsByAccount(ctx, accountID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int64("account_id", accountID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *tellerService) ListAccountCreditRequests(ctx context.Context, accountID int64, actor domain.Actor) ([]domain.CreditRequest, error) {
	if err := s.AuthorizeActor(ctx, actor, domain.CapReadLedger); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("accountID", accountID); err != nil {
		return nil, err
	}

	if _, err := s.readers.Accounts.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	credits, err := s.readers.Credits.ListCreditRequestsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credit requests", slog.Int64("account_id", accountID))
		return nil, err
	}
	if credits == nil {
		return []domain.CreditRequest{}, nil
	}
	return credits, nil
}
