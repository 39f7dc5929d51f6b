package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AuditEventType names a business event recorded in the audit stream.
type AuditEventType string

const (
	EventClientOnboarded   AuditEventType = "CLIENT_ONBOARDED"
	EventAccountOpened     AuditEventType = "ACCOUNT_OPENED"
	EventDepositMade       AuditEventType = "DEPOSIT_MADE"
	EventWithdrawalMade    AuditEventType = "WITHDRAWAL_MADE"
	EventTransferCompleted AuditEventType = "TRANSFER_COMPLETED"
	EventCreditRequested   AuditEventType = "CREDIT_REQUESTED"
)

// AuditEvent is written in the same unit of work as the change it describes.
// It never affects balances.
type AuditEvent struct {
	EventID   string          `json:"eventID"`
	EventType AuditEventType  `json:"eventType"`
	AccountID int64           `json:"accountID"`
	ActorID   int64           `json:"actorID"`
	Amount    decimal.Decimal `json:"amount"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
