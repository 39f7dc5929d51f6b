package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind is the product type of a client account.
type AccountKind string

const (
	Checking AccountKind = "CHECKING"
	Savings  AccountKind = "SAVINGS"
)

// AccountStatus gates every balance-mutating and credit-originating operation.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account represents a client's deposit account.
// Balance only changes together with a matching Transaction.
type Account struct {
	AccountID int64           `json:"accountID"`
	ClientID  int64           `json:"clientID"`
	Kind      AccountKind     `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	Status    AccountStatus   `json:"status"`
	AuditFields
}

// IsActive reports whether the account may be mutated.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
