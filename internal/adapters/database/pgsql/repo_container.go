package pgsql

import (
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every store against the pool for committed reads
// and a pool-backed unit of work for writes.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Stores:     storesOn(dbPool),
		UnitOfWork: newPgxUnitOfWork(dbPool),
	}
}
