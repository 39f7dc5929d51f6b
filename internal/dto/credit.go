package dto

import (
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequestCreditRequest is the body of a credit origination.
type RequestCreditRequest struct {
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annualRate"`
	TermMonths int             `json:"termMonths"`
}

// CreditRequestResponse defines the data returned for a credit request.
type CreditRequestResponse struct {
	CreditRequestID int64               `json:"creditRequestID"`
	AccountID       int64               `json:"accountID"`
	CreatedBy       int64               `json:"createdBy"`
	ApprovedBy      *int64              `json:"approvedBy,omitempty"`
	Principal       decimal.Decimal     `json:"principal"`
	AnnualRate      decimal.Decimal     `json:"annualRate"`
	TermMonths      int                 `json:"termMonths"`
	Status          domain.CreditStatus `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ToCreditRequestResponse converts a domain.CreditRequest to its DTO.
func ToCreditRequestResponse(c *domain.CreditRequest) CreditRequestResponse {
	return CreditRequestResponse{
		CreditRequestID: c.CreditRequestID,
		AccountID:       c.AccountID,
		CreatedBy:       c.CreatedBy,
		ApprovedBy:      c.ApprovedBy,
		Principal:       c.Principal,
		AnnualRate:      c.AnnualRate,
		TermMonths:      c.TermMonths,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
	}
}

// ListCreditRequestsResponse wraps the credit requests of an account.
type ListCreditRequestsResponse struct {
	CreditRequests []CreditRequestResponse `json:"creditRequests"`
}
