package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/teller_ledger_app/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every store runs
// either on committed state or inside a unit of work.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db querier
}

// storeError wraps a driver failure so callers can classify it as a store failure.
func storeError(msg string, err error) error {
	return apperrors.NewAppError(500, msg, fmt.Errorf("%w: %v", apperrors.ErrStore, err))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storesOn(db querier) portsrepo.Stores {
	base := BaseRepository{db: db}
	return portsrepo.Stores{
		Accounts:     &pgxAccountRepository{BaseRepository: base},
		Transactions: &pgxTransactionRepository{BaseRepository: base},
		Credits:      &pgxCreditRepository{BaseRepository: base},
		Clients:      &pgxClientRepository{BaseRepository: base},
		Audit:        &pgxAuditRepository{BaseRepository: base},
	}
}

type pgxUnitOfWork struct {
	pool *pgxpool.Pool
}

func newPgxUnitOfWork(pool *pgxpool.Pool) *pgxUnitOfWork {
	return &pgxUnitOfWork{pool: pool}
}

// WithinTx runs fn inside a single database transaction. Row locks taken with
// SELECT ... FOR UPDATE are held until commit or rollback.
func (u *pgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, stores portsrepo.Stores) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return storeError("failed to begin transaction", err)
	}
	defer func() {
		// Rollback after a successful commit is a no-op returning ErrTxClosed.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			middleware.GetLoggerFromCtx(ctx).Warn("failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(ctx, storesOn(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return storeError("unit of work abandoned", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", fmt.Errorf("%w: %v", apperrors.ErrOutcomeUncertain, err))
	}
	return nil
}
