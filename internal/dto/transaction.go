package dto

import (
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest is the body of deposit and withdrawal calls.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest is the body of an internal transfer.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountID" binding:"required"`
	ToAccountID   int64           `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// TransactionResponse defines the data returned for one ledger leg.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     int64           `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	TransferID    string          `json:"transferID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		TransferID:    t.TransferID,
		CreatedAt:     t.CreatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// TransferResponse returns both legs of a committed transfer.
type TransferResponse struct {
	TransferID string              `json:"transferID"`
	Debit      TransactionResponse `json:"debit"`
	Credit     TransactionResponse `json:"credit"`
}

// ToTransferResponse converts a domain.TransferResult to its DTO.
func ToTransferResponse(r *domain.TransferResult) TransferResponse {
	return TransferResponse{
		TransferID: r.TransferID,
		Debit:      ToTransactionResponse(&r.Debit),
		Credit:     ToTransactionResponse(&r.Credit),
	}
}
