//go:build integration

package pgsql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/teller_ledger_app/internal/core/services"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/SscSPs/teller_ledger_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var teller = domain.Actor{UserID: 7, Role: domain.RoleTeller}

type PgsqlIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
}

func TestPgsqlIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PgsqlIntegrationSuite))
}

func (s *PgsqlIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("teller"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	_, err = database.RunMigrations(dsn, "file://../../../../migrations")
	s.Require().NoError(err)

	s.pool, err = database.NewPgxPool(ctx, dsn, 10)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgsqlIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		s.NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PgsqlIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(),
		`TRUNCATE audit_events, credit_requests, transactions, accounts, clients RESTART IDENTITY CASCADE;`)
	s.Require().NoError(err)
}

func (s *PgsqlIntegrationSuite) onboard(svc portssvc.OnboardingSvc, email, opening string) *domain.OnboardingResult {
	res, err := svc.CreateClientWithFirstAccount(context.Background(), dto.OnboardClientRequest{
		FirstName:      "Ana",
		LastName:       "Lopez",
		Email:          email,
		Phone:          "+34600000000",
		AccountKind:    string(domain.Checking),
		OpeningBalance: decimal.RequireFromString(opening),
	}, teller)
	s.Require().NoError(err)
	return res
}

func (s *PgsqlIntegrationSuite) TestOnboardingAndDuplicateEmail() {
	svc := services.NewTellerService(s.repos)
	res := s.onboard(svc, "Ana@Example.com", "150.00")

	s.Equal("ana@example.com", res.Client.Email)
	s.True(decimal.RequireFromString("150").Equal(res.Account.Balance))

	_, err := svc.CreateClientWithFirstAccount(context.Background(), dto.OnboardClientRequest{
		FirstName: "Other", LastName: "Person", Email: "ANA@example.com", Phone: "1",
		AccountKind: string(domain.Savings),
	}, teller)
	s.ErrorIs(err, apperrors.ErrDuplicateEmail)

	var clients, accounts int
	s.Require().NoError(s.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM clients`).Scan(&clients))
	s.Require().NoError(s.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM accounts`).Scan(&accounts))
	s.Equal(1, clients)
	s.Equal(1, accounts)

	txns, err := svc.ListAccountTransactions(context.Background(), res.Account.AccountID, 0, teller)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.True(res.Account.Balance.Equal(txns[0].Amount))
}

func (s *PgsqlIntegrationSuite) TestTransferWritesBothLegs() {
	ctx := context.Background()
	svc := services.NewTellerService(s.repos)
	a := s.onboard(svc, "a@example.com", "500.00")
	b := s.onboard(svc, "b@example.com", "100.00")

	res, err := svc.MakeInternalTransfer(ctx, dto.TransferRequest{
		FromAccountID: a.Account.AccountID,
		ToAccountID:   b.Account.AccountID,
		Amount:        decimal.RequireFromString("120.50"),
	}, teller)
	s.Require().NoError(err)
	s.Equal(res.TransferID, res.Debit.TransferID)
	s.Equal(res.TransferID, res.Credit.TransferID)

	from, err := svc.GetAccount(ctx, a.Account.AccountID, teller)
	s.Require().NoError(err)
	to, err := svc.GetAccount(ctx, b.Account.AccountID, teller)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("379.50").Equal(from.Balance), from.Balance.String())
	s.True(decimal.RequireFromString("220.50").Equal(to.Balance), to.Balance.String())

	txns, err := svc.ListAccountTransactions(ctx, a.Account.AccountID, 10, teller)
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.True(decimal.RequireFromString("-120.50").Equal(txns[0].Amount), "newest first")
}

func (s *PgsqlIntegrationSuite) TestFailedUnitOfWorkLeavesNoTrace() {
	ctx := context.Background()
	svc := services.NewTellerService(s.repos)
	a := s.onboard(svc, "rollback@example.com", "10.00")

	boom := errors.New("boom")
	err := s.repos.UnitOfWork.WithinTx(ctx, func(ctx context.Context, stores portsrepo.Stores) error {
		require.NoError(s.T(), stores.Accounts.LockAccountForUpdate(ctx, a.Account.AccountID))
		require.NoError(s.T(), stores.Accounts.UpdateBalance(ctx, a.Account.AccountID, decimal.NewFromInt(999), teller.UserID, time.Now().UTC()))
		_, err := stores.Transactions.AppendTransaction(ctx, domain.Transaction{
			AccountID: a.Account.AccountID,
			Amount:    decimal.NewFromInt(989),
			CreatedAt: time.Now().UTC(),
			CreatedBy: teller.UserID,
		})
		require.NoError(s.T(), err)
		return boom
	})
	s.ErrorIs(err, boom)

	acc, err := s.repos.Accounts.FindAccountByID(ctx, a.Account.AccountID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("10").Equal(acc.Balance))

	txns, err := s.repos.Transactions.ListTransactionsByAccount(ctx, a.Account.AccountID, 0)
	s.Require().NoError(err)
	s.Len(txns, 1)
}

func (s *PgsqlIntegrationSuite) TestLockWaitHonorsDeadline() {
	svc := services.NewTellerService(s.repos)
	a := s.onboard(svc, "lock@example.com", "10.00")

	held := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.repos.UnitOfWork.WithinTx(context.Background(), func(ctx context.Context, stores portsrepo.Stores) error {
			if err := stores.Accounts.LockAccountForUpdate(ctx, a.Account.AccountID); err != nil {
				return err
			}
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := s.repos.UnitOfWork.WithinTx(ctx, func(ctx context.Context, stores portsrepo.Stores) error {
		return stores.Accounts.LockAccountForUpdate(ctx, a.Account.AccountID)
	})
	s.ErrorIs(err, apperrors.ErrStore)
	s.Equal(apperrors.KindStore, apperrors.KindOf(err))

	close(release)
	wg.Wait()
}

func (s *PgsqlIntegrationSuite) TestConcurrentWithdrawalsNeverOverdraw() {
	ctx := context.Background()
	svc := services.NewTellerService(s.repos)
	a := s.onboard(svc, "race@example.com", "100.00")

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.MakeWithdrawal(ctx, a.Account.AccountID, decimal.NewFromInt(30), teller)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	}
	s.Equal(3, succeeded)

	acc, err := svc.GetAccount(ctx, a.Account.AccountID, teller)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("10").Equal(acc.Balance), acc.Balance.String())
}

func (s *PgsqlIntegrationSuite) TestCreditLimitCountsActiveOnly() {
	ctx := context.Background()
	svc := services.NewTellerService(s.repos)
	a := s.onboard(svc, "credit@example.com", "1.00")
	req := dto.RequestCreditRequest{
		Principal:  decimal.NewFromInt(5000),
		AnnualRate: decimal.RequireFromString("7.5"),
		TermMonths: 24,
	}

	for i := 0; i < 3; i++ {
		_, err := svc.RequestCredit(ctx, a.Account.AccountID, req, teller)
		s.Require().NoError(err)
	}
	_, err := s.pool.Exec(ctx, `UPDATE credit_requests SET status = 'ACTIVE' WHERE credit_request_id IN (1, 2)`)
	s.Require().NoError(err)

	_, err = svc.RequestCredit(ctx, a.Account.AccountID, req, teller)
	s.ErrorIs(err, apperrors.ErrCreditLimitExceeded)

	reqs, err := svc.ListAccountCreditRequests(ctx, a.Account.AccountID, teller)
	s.Require().NoError(err)
	s.Len(reqs, 3)
	assert.Equal(s.T(), int64(3), reqs[0].CreditRequestID)

	var audits int
	s.Require().NoError(s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_events WHERE event_type = 'CREDIT_REQUESTED'`).Scan(&audits))
	s.Equal(3, audits)
}
