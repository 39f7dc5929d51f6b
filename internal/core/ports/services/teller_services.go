package services

import (
	"context"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// OnboardingSvc defines client and account opening operations
type OnboardingSvc interface {
	// CreateClientWithFirstAccount registers a client together with its first ACTIVE account.
	// Neither record exists afterwards unless both were committed.
	CreateClientWithFirstAccount(ctx context.Context, req dto.OnboardClientRequest, actor domain.Actor) (*domain.OnboardingResult, error)

	// CreateAdditionalAccount opens another ACTIVE account for an existing client.
	CreateAdditionalAccount(ctx context.Context, clientID int64, req dto.OpenAccountRequest, actor domain.Actor) (*domain.Account, error)
}

// MoneyMovementSvc defines balance-mutating operations
type MoneyMovementSvc interface {
	MakeDeposit(ctx context.Context, accountID int64, amount decimal.Decimal, actor domain.Actor) (*domain.Transaction, error)
	MakeWithdrawal(ctx context.Context, accountID int64, amount decimal.Decimal, actor domain.Actor) (*domain.Transaction, error)

	// MakeInternalTransfer moves funds between two accounts. Both legs commit or neither does.
	MakeInternalTransfer(ctx context.Context, req dto.TransferRequest, actor domain.Actor) (*domain.TransferResult, error)
}

// CreditSvc defines credit origination
type CreditSvc interface {
	// RequestCredit records a PENDING_APPROVAL request. Balances are not touched.
	RequestCredit(ctx context.Context, accountID int64, req dto.RequestCreditRequest, actor domain.Actor) (*domain.CreditRequest, error)
}

// LedgerReaderSvc defines committed-state reads
type LedgerReaderSvc interface {
	GetAccount(ctx context.Context, accountID int64, actor domain.Actor) (*domain.Account, error)
	ListClientAccounts(ctx context.Context, clientID int64, actor domain.Actor) ([]domain.Account, error)
	ListAccountTransactions(ctx context.Context, accountID int64, limit int, actor domain.Actor) ([]domain.Transaction, error)
	ListAccountCreditRequests(ctx context.Context, accountID int64, actor domain.Actor) ([]domain.CreditRequest, error)
}

// TellerSvcFacade combines all teller-facing service interfaces
// This is a facade for clients that need access to all operations
type TellerSvcFacade interface {
	OnboardingSvc
	MoneyMovementSvc
	CreditSvc
	LedgerReaderSvc
}
