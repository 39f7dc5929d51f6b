package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
)

type pgxAuditRepository struct {
	BaseRepository
}

var _ portsrepo.AuditLog = (*pgxAuditRepository)(nil)

func (r *pgxAuditRepository) AppendAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	query := `
		INSERT INTO audit_events (event_id, event_type, account_id, actor_id, amount, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	var payload []byte
	if len(event.Payload) > 0 {
		payload = event.Payload
	}
	if _, err := r.db.Exec(ctx, query,
		event.EventID,
		event.EventType,
		event.AccountID,
		event.ActorID,
		event.Amount,
		payload,
		event.CreatedAt,
	); err != nil {
		return storeError(fmt.Sprintf("failed to append %s audit event", event.EventType), err)
	}
	return nil
}
