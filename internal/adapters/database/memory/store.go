// Package memory implements the repository ports in process memory. It serves
// tests and local runs without Postgres and keeps the same locking and
// commit semantics as the pgsql adapter.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store holds committed state. Its own methods read and write committed state
// directly; WithinTx hands out a staging view that commits atomically.
type Store struct {
	mu sync.RWMutex

	accounts     map[int64]domain.Account
	clients      map[int64]domain.Client
	emails       map[string]int64
	transactions map[int64][]domain.Transaction
	credits      map[int64][]domain.CreditRequest
	audit        []domain.AuditEvent

	nextAccountID int64
	nextClientID  int64
	nextCreditID  int64

	locksMu sync.Mutex
	locks   map[int64]chan struct{}

	faults *faults
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[int64]domain.Account),
		clients:      make(map[int64]domain.Client),
		emails:       make(map[string]int64),
		transactions: make(map[int64][]domain.Transaction),
		credits:      make(map[int64][]domain.CreditRequest),
		locks:        make(map[int64]chan struct{}),
		faults:       newFaults(),
	}
}

// NewRepositoryProvider wires a fresh store into the provider the service container expects.
func NewRepositoryProvider() (portsrepo.RepositoryProvider, *Store) {
	s := NewStore()
	return portsrepo.RepositoryProvider{Stores: s.Stores(), UnitOfWork: s}, s
}

// Stores returns stores bound to committed state.
func (s *Store) Stores() portsrepo.Stores {
	return portsrepo.Stores{
		Accounts:     s,
		Transactions: s,
		Credits:      s,
		Clients:      s,
		Audit:        s,
	}
}

var (
	_ portsrepo.AccountStore    = (*Store)(nil)
	_ portsrepo.TransactionLog  = (*Store)(nil)
	_ portsrepo.CreditStore     = (*Store)(nil)
	_ portsrepo.ClientDirectory = (*Store)(nil)
	_ portsrepo.AuditLog        = (*Store)(nil)
	_ portsrepo.UnitOfWork      = (*Store)(nil)
)

func (s *Store) allocAccountID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAccountID++
	return s.nextAccountID
}

func (s *Store) allocClientID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextClientID++
	return s.nextClientID
}

func (s *Store) allocCreditID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCreditID++
	return s.nextCreditID
}

// lockFor returns the single-slot semaphore guarding accountID.
func (s *Store) lockFor(accountID int64) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[accountID]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[accountID] = l
	}
	return l
}

// FindAccountByID retrieves an account by its ID.
func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	if err := s.faults.check("FindAccountByID"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (s *Store) IsActive(ctx context.Context, accountID int64) (bool, error) {
	acc, err := s.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return acc.IsActive(), nil
}

// ListAccountsByClient returns accounts ordered by id.
func (s *Store) ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := []domain.Account{}
	for _, acc := range s.accounts {
		if acc.ClientID == clientID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].AccountID < accounts[j].AccountID })
	return accounts, nil
}

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	if err := s.faults.check("SaveAccount"); err != nil {
		return 0, err
	}
	account.AccountID = s.allocAccountID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
	return account.AccountID, nil
}

func (s *Store) UpdateBalance(ctx context.Context, accountID int64, newBalance decimal.Decimal, userID int64, now time.Time) error {
	if err := s.faults.check("UpdateBalance"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %d not found during balance update", apperrors.ErrNotFound, accountID)
	}
	acc.Balance = newBalance
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	s.accounts[accountID] = acc
	return nil
}

// LockAccountForUpdate outside a unit of work only checks existence.
func (s *Store) LockAccountForUpdate(ctx context.Context, accountID int64) error {
	_, err := s.FindAccountByID(ctx, accountID)
	return err
}

func (s *Store) AppendTransaction(ctx context.Context, txn domain.Transaction) (string, error) {
	if err := s.faults.check("AppendTransaction"); err != nil {
		return "", err
	}
	txn.TransactionID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[txn.AccountID] = append(s.transactions[txn.AccountID], txn)
	return txn.TransactionID, nil
}

// ListTransactionsByAccount returns the newest transactions first.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.transactions[accountID]
	out := make([]domain.Transaction, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out, nil
}

func (s *Store) SaveCreditRequest(ctx context.Context, req domain.CreditRequest) (int64, error) {
	if err := s.faults.check("SaveCreditRequest"); err != nil {
		return 0, err
	}
	req.CreditRequestID = s.allocCreditID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits[req.AccountID] = append(s.credits[req.AccountID], req)
	return req.CreditRequestID, nil
}

func (s *Store) CountActiveByAccount(ctx context.Context, accountID int64) (int, error) {
	if err := s.faults.check("CountActiveByAccount"); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countActive(s.credits[accountID]), nil
}

func (s *Store) ListCreditRequestsByAccount(ctx context.Context, accountID int64) ([]domain.CreditRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.credits[accountID]
	out := make([]domain.CreditRequest, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// SetCreditStatus changes the status of a stored request. The approval
// workflow owns this transition; tests use it to seed ACTIVE credits.
func (s *Store) SetCreditStatus(creditRequestID int64, status domain.CreditStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for accountID, reqs := range s.credits {
		for i := range reqs {
			if reqs[i].CreditRequestID == creditRequestID {
				s.credits[accountID][i].Status = status
				return nil
			}
		}
	}
	return fmt.Errorf("%w: credit request %d", apperrors.ErrNotFound, creditRequestID)
}

// SetAccountStatus changes an account's status directly.
func (s *Store) SetAccountStatus(accountID int64, status domain.AccountStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	acc.Status = status
	s.accounts[accountID] = acc
	return nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := s.faults.check("ExistsByEmail"); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.emails[strings.ToLower(email)]
	return ok, nil
}

func (s *Store) SaveClient(ctx context.Context, client domain.Client) (int64, error) {
	if err := s.faults.check("SaveClient"); err != nil {
		return 0, err
	}
	client.ClientID = s.allocClientID()
	client.Email = strings.ToLower(client.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[client.Email]; taken {
		return 0, apperrors.ErrDuplicateEmail
	}
	s.clients[client.ClientID] = client
	s.emails[client.Email] = client.ClientID
	return client.ClientID, nil
}

func (s *Store) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("%w: client %d", apperrors.ErrNotFound, clientID)
	}
	return &c, nil
}

func (s *Store) AppendAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	if err := s.faults.check("AppendAuditEvent"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	s.audit = append(s.audit, event)
	return nil
}

// AuditEvents returns a copy of the committed audit stream, oldest first.
func (s *Store) AuditEvents() []domain.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditEvent, len(s.audit))
	copy(out, s.audit)
	return out
}

// ClientCount returns the number of committed clients.
func (s *Store) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// AccountCount returns the number of committed accounts.
func (s *Store) AccountCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

func countActive(reqs []domain.CreditRequest) int {
	n := 0
	for _, r := range reqs {
		if r.Status == domain.CreditActive {
			n++
		}
	}
	return n
}
