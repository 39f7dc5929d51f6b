package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus is owned by the approval workflow; the Core only originates PENDING_APPROVAL.
type CreditStatus string

const (
	CreditPendingApproval CreditStatus = "PENDING_APPROVAL"
	CreditActive          CreditStatus = "ACTIVE"
	CreditRejected        CreditStatus = "REJECTED"
	CreditClosed          CreditStatus = "CLOSED"
)

// MaxActiveCredits is the number of ACTIVE requests at which an account stops originating new ones.
const MaxActiveCredits = 2

// CreditRequest is a loan application against an account.
type CreditRequest struct {
	CreditRequestID int64           `json:"creditRequestID"`
	AccountID       int64           `json:"accountID"`
	CreatedBy       int64           `json:"createdBy"`            // originating teller
	ApprovedBy      *int64          `json:"approvedBy,omitempty"` // set by the approval workflow
	Principal       decimal.Decimal `json:"principal"`
	AnnualRate      decimal.Decimal `json:"annualRate"` // percentage points
	TermMonths      int             `json:"termMonths"`
	Status          CreditStatus    `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
