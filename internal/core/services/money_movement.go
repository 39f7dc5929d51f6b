package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/teller_ledger_app/internal/core/validation"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *tellerService) MakeDeposit(ctx context.Context, accountID int64, amount decimal.Decimal, actor domain.Actor) (txn *domain.Transaction, err error) {
	defer func(start time.Time) { observeOperation(opDeposit, start, err) }(time.Now())

	if err := s.AuthorizeActor(ctx, actor, domain.CapMoveMoney); err != nil {
		return nil, err
	}
	if err := validation.First(
		validation.ValidateID("accountID", accountID),
		validation.ValidatePositiveAmount("amount", amount),
	); err != nil {
		return nil, err
	}

	txn, err = s.applySingleLeg(ctx, accountID, amount, actor, domain.EventDepositMade)
	if err != nil {
		s.logMovementFailure(ctx, err, "Deposit failed", accountID, amount)
		return nil, err
	}
	s.LogInfo(ctx, "Deposit recorded", slog.Int64("account_id", accountID), slog.String("amount", amount.String()))
	return txn, nil
}

func (s *tellerService) MakeWithdrawal(ctx context.Context, accountID int64, amount decimal.Decimal, actor domain.Actor) (txn *domain.Transaction, err error) {
	defer func(start time.Time) { observeOperation(opWithdrawal, start, err) }(time.Now())

	if err := s.AuthorizeActor(ctx, actor, domain.CapMoveMoney); err != nil {
		return nil, err
	}
	if err := validation.First(
		validation.ValidateID("accountID", accountID),
		validation.ValidatePositiveAmount("amount", amount),
	); err != nil {
		return nil, err
	}

	txn, err = s.applySingleLeg(ctx, accountID, amount.Neg(), actor, domain.EventWithdrawalMade)
	if err != nil {
		s.logMovementFailure(ctx, err, "Withdrawal failed", accountID, amount)
		return nil, err
	}
	s.LogInfo(ctx, "Withdrawal recorded", slog.Int64("account_id", accountID), slog.String("amount", amount.String()))
	return txn, nil
}

// applySingleLeg moves delta (signed) into one account under its lock.
func (s *tellerService) applySingleLeg(ctx context.Context, accountID int64, delta decimal.Decimal, actor domain.Actor, event domain.AuditEventType) (*domain.Transaction, error) {
	var leg domain.Transaction
	err := s.withinTx(ctx, func(ctx context.Context, stores portsrepo.Stores) error {
		if err := lockAccounts(ctx, stores.Accounts, accountID); err != nil {
			return err
		}
		acc, err := s.guardAccount(ctx, stores, accountID)
		if err != nil {
			return err
		}

		newBalance := domain.RoundMoney(acc.Balance.Add(delta))
		if delta.IsNegative() {
			if err := s.checkFloor(acc, newBalance); err != nil {
				return err
			}
		}

		now := s.now()
		if err := stores.Accounts.UpdateBalance(ctx, accountID, newBalance, actor.UserID, now); err != nil {
			return err
		}
		leg, err = appendLeg(ctx, stores.Transactions, domain.Transaction{
			AccountID: accountID,
			Amount:    domain.RoundMoney(delta),
			CreatedAt: now,
			CreatedBy: actor.UserID,
		})
		if err != nil {
			return err
		}
		return s.audit(ctx, stores, event, accountID, actor, delta.Abs(), map[string]any{
			"transactionID": leg.TransactionID,
			"balanceAfter":  newBalance,
		})
	})
	if err != nil {
		return nil, err
	}
	return &leg, nil
}

func (s *tellerService) MakeInternalTransfer(ctx context.Context, req dto.TransferRequest, actor domain.Actor) (result *domain.TransferResult, err error) {
	defer func(start time.Time) { observeOperation(opTransfer, start, err) }(time.Now())

	if err := s.AuthorizeActor(ctx, actor, domain.CapMoveMoney); err != nil {
		return nil, err
	}
	if err := validation.First(
		validation.ValidateID("fromAccountID", req.FromAccountID),
		validation.ValidateID("toAccountID", req.ToAccountID),
		validation.ValidatePositiveAmount("amount", req.Amount),
	); err != nil {
		return nil, err
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrSameAccount, req.FromAccountID)
	}

	amount := domain.RoundMoney(req.Amount)
	transferID := uuid.NewString()
	err = s.withinTx(ctx, func(ctx context.Context, stores portsrepo.Stores) error {
		if err := lockAccounts(ctx, stores.Accounts, req.FromAccountID, req.ToAccountID); err != nil {
			return err
		}
		source, err := s.guardAccount(ctx, stores, req.FromAccountID)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		destination, err := s.guardAccount(ctx, stores, req.ToAccountID)
		if err != nil {
			return fmt.Errorf("destination: %w", err)
		}

		sourceBalance := domain.RoundMoney(source.Balance.Sub(amount))
		if err := s.checkFloor(source, sourceBalance); err != nil {
			return err
		}
		destinationBalance := domain.RoundMoney(destination.Balance.Add(amount))

		now := s.now()
		if err := stores.Accounts.UpdateBalance(ctx, source.AccountID, sourceBalance, actor.UserID, now); err != nil {
			return err
		}
		if err := stores.Accounts.UpdateBalance(ctx, destination.AccountID, destinationBalance, actor.UserID, now); err != nil {
			return err
		}

		debit, err := appendLeg(ctx, stores.Transactions, domain.Transaction{
			AccountID:  source.AccountID,
			Amount:     amount.Neg(),
			TransferID: transferID,
			CreatedAt:  now,
			CreatedBy:  actor.UserID,
		})
		if err != nil {
			return err
		}
		credit, err := appendLeg(ctx, stores.Transactions, domain.Transaction{
			AccountID:  destination.AccountID,
			Amount:     amount,
			TransferID: transferID,
			CreatedAt:  now,
			CreatedBy:  actor.UserID,
		})
		if err != nil {
			return err
		}

		if err := s.audit(ctx, stores, domain.EventTransferCompleted, source.AccountID, actor, amount, map[string]any{
			"transferID":  transferID,
			"toAccountID": destination.AccountID,
			"debitTxnID":  debit.TransactionID,
			"creditTxnID": credit.TransactionID,
		}); err != nil {
			return err
		}

		result = &domain.TransferResult{TransferID: transferID, Debit: debit, Credit: credit}
		return nil
	})
	if err != nil {
		s.logMovementFailure(ctx, err, "Transfer failed", req.FromAccountID, req.Amount,
			slog.Int64("to_account_id", req.ToAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer recorded",
		slog.String("transfer_id", transferID),
		slog.Int64("from_account_id", req.FromAccountID),
		slog.Int64("to_account_id", req.ToAccountID),
		slog.String("amount", amount.String()))
	return result, nil
}

// checkFloor rejects a debit that would leave the account below its kind's floor.
func (s *tellerService) checkFloor(acc *domain.Account, newBalance decimal.Decimal) error {
	floor := s.floors.Floor(acc.Kind)
	if newBalance.LessThan(floor) {
		return fmt.Errorf("%w: account %d balance %s, floor %s", apperrors.ErrInsufficientFunds,
			acc.AccountID, acc.Balance.StringFixed(domain.MoneyScale), floor.StringFixed(domain.MoneyScale))
	}
	return nil
}

// logMovementFailure logs store failures as errors and business rejections at debug level.
func (s *tellerService) logMovementFailure(ctx context.Context, err error, msg string, accountID int64, amount decimal.Decimal, keyvals ...any) {
	args := append([]any{slog.Int64("account_id", accountID), slog.String("amount", amount.String())}, keyvals...)
	if errors.Is(err, apperrors.ErrStore) || apperrors.KindOf(err) == apperrors.KindInternal {
		s.LogError(ctx, err, msg, args...)
		return
	}
	s.LogDebug(ctx, msg, append(args, slog.String("kind", apperrors.KindOf(err)))...)
}
