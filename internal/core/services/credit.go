package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/teller_ledger_app/internal/core/validation"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
)

func (s *tellerService) RequestCredit(ctx context.Context, accountID int64, req dto.RequestCreditRequest, actor domain.Actor) (credit *domain.CreditRequest, err error) {
	defer func(start time.Time) { observeOperation(opRequestCredit, start, err) }(time.Now())

	if err := s.AuthorizeActor(ctx, actor, domain.CapRequestCredit); err != nil {
		return nil, err
	}
	if err := validation.First(
		validation.ValidateID("accountID", accountID),
		validation.ValidateID("tellerID", actor.UserID),
		validation.ValidatePositiveAmount("principal", req.Principal),
		validation.ValidateCreditRate(req.AnnualRate),
		validation.ValidateCreditTerm(req.TermMonths),
	); err != nil {
		return nil, err
	}

	err = s.withinTx(ctx, func(ctx context.Context, stores portsrepo.Stores) error {
		// the lock serialises concurrent requests so the count below stays accurate
		if err := lockAccounts(ctx, stores.Accounts, accountID); err != nil {
			return err
		}
		if _, err := s.guardAccount(ctx, stores, accountID); err != nil {
			return err
		}

		active, err := stores.Credits.CountActiveByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if active >= domain.MaxActiveCredits {
			return fmt.Errorf("%w: account %d has %d active credits", apperrors.ErrCreditLimitExceeded, accountID, active)
		}

		pending := domain.CreditRequest{
			AccountID:  accountID,
			CreatedBy:  actor.UserID,
			Principal:  domain.RoundMoney(req.Principal),
			AnnualRate: req.AnnualRate,
			TermMonths: req.TermMonths,
			Status:     domain.CreditPendingApproval,
			CreatedAt:  s.now(),
		}
		pending.CreditRequestID, err = stores.Credits.SaveCreditRequest(ctx, pending)
		if err != nil {
			return err
		}

		if err := s.audit(ctx, stores, domain.EventCreditRequested, accountID, actor, pending.Principal, map[string]any{
			"creditRequestID": pending.CreditRequestID,
			"annualRate":      pending.AnnualRate,
			"termMonths":      pending.TermMonths,
		}); err != nil {
			return err
		}

		credit = &pending
		return nil
	})
	if err != nil {
		s.logMovementFailure(ctx, err, "Credit request failed", accountID, req.Principal)
		return nil, err
	}

	s.LogInfo(ctx, "Credit requested",
		slog.Int64("account_id", accountID),
		slog.Int64("credit_request_id", credit.CreditRequestID))
	return credit, nil
}
