package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultStoreTimeout bounds one unit of work when no timeout is configured.
const DefaultStoreTimeout = 5 * time.Second

// OverdraftFloors maps an account kind to the lowest balance a debit may leave.
// Kinds without an entry use zero.
type OverdraftFloors map[domain.AccountKind]decimal.Decimal

// Floor returns the floor for kind.
func (f OverdraftFloors) Floor(kind domain.AccountKind) decimal.Decimal {
	if floor, ok := f[kind]; ok {
		return floor
	}
	return decimal.Zero
}

// tellerService implements the TellerSvcFacade interface
type tellerService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	readers      portsrepo.Stores
	floors       OverdraftFloors
	storeTimeout time.Duration
	now          func() time.Time
}

// TellerServiceOption is a functional option for configuring the teller service
type TellerServiceOption func(*tellerService)

// WithOverdraftFloors sets per-kind overdraft floors.
func WithOverdraftFloors(floors OverdraftFloors) TellerServiceOption {
	return func(s *tellerService) {
		s.floors = floors
	}
}

// WithStoreTimeout bounds each unit of work.
func WithStoreTimeout(d time.Duration) TellerServiceOption {
	return func(s *tellerService) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TellerServiceOption {
	return func(s *tellerService) {
		s.now = now
	}
}

// NewTellerService creates the ledger orchestration service over the given stores.
func NewTellerService(repos portsrepo.RepositoryProvider, options ...TellerServiceOption) portssvc.TellerSvcFacade {
	svc := &tellerService{
		uow:          repos.UnitOfWork,
		readers:      repos.Stores,
		floors:       OverdraftFloors{},
		storeTimeout: DefaultStoreTimeout,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure tellerService implements the TellerSvcFacade interface
var _ portssvc.TellerSvcFacade = (*tellerService)(nil)

// withinTx runs fn in one unit of work under the store timeout.
func (s *tellerService) withinTx(ctx context.Context, fn func(ctx context.Context, stores portsrepo.Stores) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.uow.WithinTx(ctx, fn)
}

// guardAccount loads the account through the unit-of-work stores and rejects
// missing or inactive accounts. Callers hold the account lock already.
func (s *tellerService) guardAccount(ctx context.Context, stores portsrepo.Stores, accountID int64) (*domain.Account, error) {
	acc, err := stores.Accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.IsActive() {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrInactiveAccount, accountID)
	}
	return acc, nil
}

// lockAccounts takes the per-account locks in ascending id order.
func lockAccounts(ctx context.Context, locker portsrepo.AccountLocker, accountIDs ...int64) error {
	ids := append([]int64(nil), accountIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		if err := locker.LockAccountForUpdate(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// appendLeg writes one ledger leg and returns it with its assigned id.
func appendLeg(ctx context.Context, log portsrepo.TransactionLog, txn domain.Transaction) (domain.Transaction, error) {
	id, err := log.AppendTransaction(ctx, txn)
	if err != nil {
		return domain.Transaction{}, err
	}
	txn.TransactionID = id
	return txn, nil
}

func (s *tellerService) audit(ctx context.Context, stores portsrepo.Stores, eventType domain.AuditEventType, accountID int64, actor domain.Actor, amount decimal.Decimal, payload any) error {
	event := domain.AuditEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		AccountID: accountID,
		ActorID:   actor.UserID,
		Amount:    amount,
		CreatedAt: s.now(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", eventType, err)
		}
		event.Payload = raw
	}
	return stores.Audit.AppendAuditEvent(ctx, event)
}
