package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/teller_ledger_app/internal/core/validation"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

func (s *tellerService) CreateClientWithFirstAccount(ctx context.Context, req dto.OnboardClientRequest, actor domain.Actor) (result *domain.OnboardingResult, err error) {
	defer func(start time.Time) { observeOperation(opOnboardClient, start, err) }(time.Now())

	if err := s.AuthorizeActor(ctx, actor, domain.CapOnboardClient); err != nil {
		return nil, err
	}

	kind, kindErr := validation.ParseAccountKind(req.AccountKind)
	if err := validation.First(
		validation.RequireNonEmpty("firstName", req.FirstName),
		validation.RequireNonEmpty("lastName", req.LastName),
		validation.ValidateEmail(req.Email),
		validation.RequireNonEmpty("phone", req.Phone),
		kindErr,
		validation.ValidatePositiveAmount("openingBalance", req.OpeningBalance),
	); err != nil {
		return nil, err
	}

	now := s.now()
	client := domain.Client{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     validation.NormalizeEmail(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now,
		CreatedBy: actor.UserID,
	}

	err = s.withinTx(ctx, func(ctx context.Context, stores portsrepo.Stores) error {
		exists, err := stores.Clients.ExistsByEmail(ctx, client.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrDuplicateEmail
		}

		client.ClientID, err = stores.Clients.SaveClient(ctx, client)
		if err != nil {
			return err
		}

		account, err := s.openAccount(ctx, stores, client.ClientID, kind, req.OpeningBalance, actor, now)
		if err != nil {
			return err
		}

		if err := s.audit(ctx, stores, domain.EventClientOnboarded, account.AccountID, actor, account.Balance, map[string]any{
			"clientID": client.ClientID,
			"email":    client.Email,
			"kind":     account.Kind,
		}); err != nil {
			return err
		}

		result = &domain.OnboardingResult{Client: client, Account: *account}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateEmail) {
			s.LogError(ctx, err, "Failed to onboard client", slog.String("email", client.Email))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Client onboarded",
		slog.Int64("client_id", result.Client.ClientID),
		slog.Int64("account_id", result.Account.AccountID))
	return result, nil
}

func (s *tellerService) CreateAdditionalAccount(ctx context.Context, clientID int64, req dto.OpenAccountRequest, actor domain.Actor) (account *domain.Account, err error) {
	defer func(start time.Time) { observeOperation(opOpenAccount, start, err) }(time.Now())

	if err := s.AuthorizeActor(ctx, actor, domain.CapOpenAccount); err != nil {
		return nil, err
	}

	kind, kindErr := validation.ParseAccountKind(req.AccountKind)
	if err := validation.First(
		validation.ValidateID("clientID", clientID),
		kindErr,
		validation.ValidatePositiveAmount("openingBalance", req.OpeningBalance),
	); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.withinTx(ctx, func(ctx context.Context, stores portsrepo.Stores) error {
		if _, err := stores.Clients.FindClientByID(ctx, clientID); err != nil {
			return err
		}

		opened, err := s.openAccount(ctx, stores, clientID, kind, req.OpeningBalance, actor, now)
		if err != nil {
			return err
		}

		if err := s.audit(ctx, stores, domain.EventAccountOpened, opened.AccountID, actor, opened.Balance, map[string]any{
			"clientID": clientID,
			"kind":     opened.Kind,
		}); err != nil {
			return err
		}

		account = opened
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to open additional account", slog.Int64("client_id", clientID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Additional account opened",
		slog.Int64("client_id", clientID),
		slog.Int64("account_id", account.AccountID))
	return account, nil
}

// openAccount saves an ACTIVE account and the opening credit that funds it.
func (s *tellerService) openAccount(ctx context.Context, stores portsrepo.Stores, clientID int64, kind domain.AccountKind, opening decimal.Decimal, actor domain.Actor, now time.Time) (*domain.Account, error) {
	account := domain.Account{
		ClientID: clientID,
		Kind:     kind,
		Balance:  domain.RoundMoney(opening),
		Status:   domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	var err error
	account.AccountID, err = stores.Accounts.SaveAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	if _, err := appendLeg(ctx, stores.Transactions, domain.Transaction{
		AccountID: account.AccountID,
		Amount:    account.Balance,
		CreatedAt: now,
		CreatedBy: actor.UserID,
	}); err != nil {
		return nil, err
	}
	return &account, nil
}
