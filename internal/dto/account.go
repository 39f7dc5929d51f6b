package dto

import (
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OnboardClientRequest defines the data needed to register a client with a first account.
type OnboardClientRequest struct {
	FirstName      string          `json:"firstName" binding:"required"`
	LastName       string          `json:"lastName" binding:"required"`
	Email          string          `json:"email" binding:"required"`
	Phone          string          `json:"phone" binding:"required"`
	AccountKind    string          `json:"accountKind" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// OpenAccountRequest defines the data needed to open an additional account for an existing client.
type OpenAccountRequest struct {
	AccountKind    string          `json:"accountKind" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     int64                `json:"accountID"`
	ClientID      int64                `json:"clientID"`
	Kind          domain.AccountKind   `json:"kind"`
	Balance       decimal.Decimal      `json:"balance"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     int64                `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		ClientID:      acc.ClientID,
		Kind:          acc.Kind,
		Balance:       acc.Balance.Round(domain.MoneyScale),
		Status:        acc.Status,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// OnboardClientResponse is returned once client and account are both committed.
type OnboardClientResponse struct {
	ClientID int64           `json:"clientID"`
	Email    string          `json:"email"`
	Account  AccountResponse `json:"account"`
}

// ToOnboardClientResponse converts a domain.OnboardingResult to its DTO.
func ToOnboardClientResponse(res *domain.OnboardingResult) OnboardClientResponse {
	return OnboardClientResponse{
		ClientID: res.Client.ClientID,
		Email:    res.Client.Email,
		Account:  ToAccountResponse(&res.Account),
	}
}
