package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type pgxClientRepository struct {
	BaseRepository
}

var _ portsrepo.ClientDirectory = (*pgxClientRepository)(nil)

func (r *pgxClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE LOWER(email) = LOWER($1));`
	var exists bool
	if err := r.db.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(&exists); err != nil {
		return false, storeError("failed to check client email", err)
	}
	return exists, nil
}

// SaveClient relies on the unique index over LOWER(email) to settle concurrent onboardings.
func (r *pgxClientRepository) SaveClient(ctx context.Context, client domain.Client) (int64, error) {
	query := `
		INSERT INTO clients (first_name, last_name, email, phone, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING client_id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		client.FirstName,
		client.LastName,
		strings.ToLower(strings.TrimSpace(client.Email)),
		client.Phone,
		client.CreatedAt,
		client.CreatedBy,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateEmail
		}
		return 0, storeError("failed to save client", err)
	}
	return id, nil
}

func (r *pgxClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	query := `
		SELECT client_id, first_name, last_name, email, phone, created_at, created_by
		FROM clients
		WHERE client_id = $1;
	`
	var c domain.Client
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&c.ClientID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
		&c.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %d", apperrors.ErrNotFound, clientID)
		}
		return nil, storeError(fmt.Sprintf("failed to find client %d", clientID), err)
	}
	return &c, nil
}
