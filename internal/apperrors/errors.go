package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDuplicateEmail indicates onboarding with an email already on file.
var ErrDuplicateEmail = fmt.Errorf("%w: email already registered", ErrDuplicate)

// ErrInactiveAccount indicates the account exists but is not ACTIVE.
var ErrInactiveAccount = errors.New("account is not active")

// ErrSameAccount indicates a transfer whose source equals its destination.
var ErrSameAccount = errors.New("source and destination accounts are the same")

// ErrInsufficientFunds indicates a debit would take the balance below the allowed floor.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrCreditLimitExceeded indicates the account already holds the maximum number of active credits.
var ErrCreditLimitExceeded = errors.New("credit limit exceeded")

// ErrForbidden indicates the caller's role lacks the capability for the operation.
var ErrForbidden = errors.New("operation not permitted for role")

// ErrStore indicates an underlying persistence failure. Nothing was committed.
var ErrStore = errors.New("store failure")

// ErrOutcomeUncertain indicates the commit was attempted but its result is unknown.
// Callers must reconcile before retrying.
var ErrOutcomeUncertain = fmt.Errorf("%w: commit outcome unknown", ErrStore)

// AppError carries an HTTP-ish status code along with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Stable error kinds reported to callers.
const (
	KindValidation          = "VALIDATION"
	KindNotFound            = "NOT_FOUND"
	KindInactiveAccount     = "INACTIVE_ACCOUNT"
	KindSameAccount         = "SAME_ACCOUNT"
	KindDuplicateEmail      = "DUPLICATE_EMAIL"
	KindInsufficientFunds   = "INSUFFICIENT_FUNDS"
	KindCreditLimitExceeded = "CREDIT_LIMIT_EXCEEDED"
	KindForbidden           = "FORBIDDEN"
	KindOutcomeUncertain    = "OUTCOME_UNCERTAIN"
	KindStore               = "STORE"
	KindInternal            = "INTERNAL"
)

// KindOf classifies err into one of the stable kinds. Order matters:
// ErrOutcomeUncertain wraps ErrStore and ErrDuplicateEmail wraps ErrDuplicate.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInactiveAccount):
		return KindInactiveAccount
	case errors.Is(err, ErrSameAccount):
		return KindSameAccount
	case errors.Is(err, ErrDuplicateEmail):
		return KindDuplicateEmail
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrCreditLimitExceeded):
		return KindCreditLimitExceeded
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrOutcomeUncertain):
		return KindOutcomeUncertain
	case errors.Is(err, ErrStore):
		return KindStore
	default:
		return KindInternal
	}
}
