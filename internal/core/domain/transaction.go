package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable debit or credit leg against an account.
// Amount is signed: positive credits the account, negative debits it.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // UUID generated at write time
	AccountID     int64           `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	TransferID    string          `json:"transferID,omitempty"` // shared by both legs of a transfer
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     int64           `json:"createdBy"`
}

// IsCredit reports whether the leg increases the balance.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// TransferResult holds both legs of a committed internal transfer.
type TransferResult struct {
	TransferID string      `json:"transferID"`
	Debit      Transaction `json:"debit"`
	Credit     Transaction `json:"credit"`
}
