package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithinTx runs fn against a staging view. Account locks taken through the view
// are held until the staged writes are applied or discarded.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, stores portsrepo.Stores) error) error {
	tx := &memTx{
		store:    s,
		held:     make(map[int64]chan struct{}),
		accounts: make(map[int64]domain.Account),
	}
	defer tx.release()

	view := portsrepo.Stores{
		Accounts:     tx,
		Transactions: tx,
		Credits:      tx,
		Clients:      tx,
		Audit:        tx,
	}
	if err := fn(ctx, view); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: unit of work abandoned: %v", apperrors.ErrStore, err)
	}
	return tx.commit()
}

// memTx stages writes; reads see committed state overlaid with the staged writes.
type memTx struct {
	store *Store
	held  map[int64]chan struct{}

	accounts     map[int64]domain.Account // new or updated snapshots
	accountOrder []int64
	clients      []domain.Client
	transactions []domain.Transaction
	credits      []domain.CreditRequest
	audit        []domain.AuditEvent
}

var (
	_ portsrepo.AccountStore    = (*memTx)(nil)
	_ portsrepo.TransactionLog  = (*memTx)(nil)
	_ portsrepo.CreditStore     = (*memTx)(nil)
	_ portsrepo.ClientDirectory = (*memTx)(nil)
	_ portsrepo.AuditLog        = (*memTx)(nil)
)

func (t *memTx) release() {
	for id, l := range t.held {
		<-l
		delete(t.held, id)
	}
}

func (t *memTx) commit() error {
	s := t.store
	if err := s.faults.check(OpCommit); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrOutcomeUncertain, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range t.clients {
		if _, taken := s.emails[c.Email]; taken {
			return apperrors.ErrDuplicateEmail
		}
	}
	for _, c := range t.clients {
		s.clients[c.ClientID] = c
		s.emails[c.Email] = c.ClientID
	}
	for _, id := range t.accountOrder {
		s.accounts[id] = t.accounts[id]
	}
	for _, txn := range t.transactions {
		s.transactions[txn.AccountID] = append(s.transactions[txn.AccountID], txn)
	}
	for _, c := range t.credits {
		s.credits[c.AccountID] = append(s.credits[c.AccountID], c)
	}
	s.audit = append(s.audit, t.audit...)
	return nil
}

func (t *memTx) LockAccountForUpdate(ctx context.Context, accountID int64) error {
	if _, ok := t.held[accountID]; ok {
		return nil
	}
	if _, ok := t.accounts[accountID]; ok {
		return nil
	}
	if _, err := t.store.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	l := t.store.lockFor(accountID)
	select {
	case l <- struct{}{}:
		t.held[accountID] = l
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: lock account %d: %v", apperrors.ErrStore, accountID, ctx.Err())
	}
}

func (t *memTx) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	if acc, ok := t.accounts[accountID]; ok {
		return &acc, nil
	}
	return t.store.FindAccountByID(ctx, accountID)
}

func (t *memTx) IsActive(ctx context.Context, accountID int64) (bool, error) {
	acc, err := t.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return acc.IsActive(), nil
}

func (t *memTx) ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	committed, err := t.store.ListAccountsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	merged := make(map[int64]domain.Account, len(committed))
	for _, acc := range committed {
		merged[acc.AccountID] = acc
	}
	for id, acc := range t.accounts {
		if acc.ClientID == clientID {
			merged[id] = acc
		}
	}
	out := make([]domain.Account, 0, len(merged))
	for _, acc := range merged {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (t *memTx) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	if err := t.store.faults.check("SaveAccount"); err != nil {
		return 0, err
	}
	account.AccountID = t.store.allocAccountID()
	t.stageAccount(account)
	return account.AccountID, nil
}

func (t *memTx) UpdateBalance(ctx context.Context, accountID int64, newBalance decimal.Decimal, userID int64, now time.Time) error {
	if err := t.store.faults.check("UpdateBalance"); err != nil {
		return err
	}
	acc, err := t.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	acc.Balance = newBalance
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	t.stageAccount(*acc)
	return nil
}

func (t *memTx) stageAccount(acc domain.Account) {
	if _, ok := t.accounts[acc.AccountID]; !ok {
		t.accountOrder = append(t.accountOrder, acc.AccountID)
	}
	t.accounts[acc.AccountID] = acc
}

func (t *memTx) AppendTransaction(ctx context.Context, txn domain.Transaction) (string, error) {
	if err := t.store.faults.check("AppendTransaction"); err != nil {
		return "", err
	}
	txn.TransactionID = uuid.NewString()
	t.transactions = append(t.transactions, txn)
	return txn.TransactionID, nil
}

func (t *memTx) ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	return t.store.ListTransactionsByAccount(ctx, accountID, limit)
}

func (t *memTx) SaveCreditRequest(ctx context.Context, req domain.CreditRequest) (int64, error) {
	if err := t.store.faults.check("SaveCreditRequest"); err != nil {
		return 0, err
	}
	req.CreditRequestID = t.store.allocCreditID()
	t.credits = append(t.credits, req)
	return req.CreditRequestID, nil
}

func (t *memTx) CountActiveByAccount(ctx context.Context, accountID int64) (int, error) {
	n, err := t.store.CountActiveByAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	for _, c := range t.credits {
		if c.AccountID == accountID && c.Status == domain.CreditActive {
			n++
		}
	}
	return n, nil
}

func (t *memTx) ListCreditRequestsByAccount(ctx context.Context, accountID int64) ([]domain.CreditRequest, error) {
	return t.store.ListCreditRequestsByAccount(ctx, accountID)
}

func (t *memTx) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(email)
	for _, c := range t.clients {
		if c.Email == email {
			return true, nil
		}
	}
	return t.store.ExistsByEmail(ctx, email)
}

func (t *memTx) SaveClient(ctx context.Context, client domain.Client) (int64, error) {
	if err := t.store.faults.check("SaveClient"); err != nil {
		return 0, err
	}
	client.Email = strings.ToLower(client.Email)
	exists, err := t.ExistsByEmail(ctx, client.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrDuplicateEmail
	}
	client.ClientID = t.store.allocClientID()
	t.clients = append(t.clients, client)
	return client.ClientID, nil
}

func (t *memTx) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	for _, c := range t.clients {
		if c.ClientID == clientID {
			c := c
			return &c, nil
		}
	}
	return t.store.FindClientByID(ctx, clientID)
}

func (t *memTx) AppendAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	if err := t.store.faults.check("AppendAuditEvent"); err != nil {
		return err
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	t.audit = append(t.audit, event)
	return nil
}
