package memory

import (
	"fmt"
	"sync"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
)

// OpCommit names the commit step for FailAfter.
const OpCommit = "Commit"

type fault struct {
	after int
	err   error
}

type faults struct {
	mu   sync.Mutex
	byOp map[string]*fault
}

func newFaults() *faults {
	return &faults{byOp: make(map[string]*fault)}
}

// check consumes one call of op. The armed fault fires once and is then cleared.
func (f *faults) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ft, ok := f.byOp[op]
	if !ok {
		return nil
	}
	if ft.after > 0 {
		ft.after--
		return nil
	}
	delete(f.byOp, op)
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStore, op, ft.err)
}

// FailAfter makes the store method named op (or OpCommit) fail with err once
// `after` further calls have succeeded. Errors surface wrapped in apperrors.ErrStore.
func (s *Store) FailAfter(op string, after int, err error) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	s.faults.byOp[op] = &fault{after: after, err: err}
}

// ClearFaults disarms every pending fault.
func (s *Store) ClearFaults() {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	s.faults.byOp = make(map[string]*fault)
}
