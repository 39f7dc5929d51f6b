// Package validation holds the pure input checks applied by every teller
// operation before any store is touched. Each failure wraps apperrors.ErrValidation.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate = validator.New()

	// local-part @ domain . tld
	emailShape = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	maxCreditRate = decimal.NewFromInt(20)
)

const (
	MinCreditTermMonths = 1
	MaxCreditTermMonths = 360
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

// RequireNonEmpty rejects blank strings.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

// ValidateEmail checks the local@domain.tld shape, case-insensitively.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email is required")
	}
	if err := validate.Var(email, "email"); err != nil || !emailShape.MatchString(email) {
		return invalid("email %q is not a valid address", email)
	}
	return nil
}

// NormalizeEmail is the form under which uniqueness is enforced.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateID requires a strictly positive identifier.
func ValidateID(field string, id int64) error {
	if id <= 0 {
		return invalid("%s must be positive, got %d", field, id)
	}
	return nil
}

// ValidatePositiveAmount requires amount > 0 with at most two decimal places.
func ValidatePositiveAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("%s must be greater than zero", field)
	}
	return ValidateMoneyPrecision(field, amount)
}

// ValidateNonNegativeAmount requires amount >= 0 with at most two decimal places.
func ValidateNonNegativeAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return invalid("%s must not be negative", field)
	}
	return ValidateMoneyPrecision(field, amount)
}

// ValidateMoneyPrecision rejects amounts with more than two decimal places.
func ValidateMoneyPrecision(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(domain.MoneyScale)) {
		return invalid("%s must have at most %d decimal places", field, domain.MoneyScale)
	}
	return nil
}

// ParseAccountKind accepts CHECKING or SAVINGS in any case.
func ParseAccountKind(raw string) (domain.AccountKind, error) {
	kind := domain.AccountKind(strings.ToUpper(strings.TrimSpace(raw)))
	switch kind {
	case domain.Checking, domain.Savings:
		return kind, nil
	case "":
		return "", invalid("account kind is required")
	default:
		return "", invalid("account kind %q must be CHECKING or SAVINGS", raw)
	}
}

// ValidateCreditRate requires 0 <= rate <= 20 percentage points.
func ValidateCreditRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxCreditRate) {
		return invalid("rate must be between 0 and %s, got %s", maxCreditRate, rate)
	}
	return nil
}

// ValidateCreditTerm requires 1 <= months <= 360.
func ValidateCreditTerm(months int) error {
	if months < MinCreditTermMonths || months > MaxCreditTermMonths {
		return invalid("term must be between %d and %d months, got %d", MinCreditTermMonths, MaxCreditTermMonths, months)
	}
	return nil
}

// First returns the first non-nil error, so callers can list checks in order.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
