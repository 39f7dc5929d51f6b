package validation_test

import (
	"testing"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/SscSPs/teller_ledger_app/internal/core/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{email: "jane.doe@example.com"},
		{email: "JANE.DOE@EXAMPLE.COM"},
		{email: "a+b@mail.example.org"},
		{email: "", wantErr: true},
		{email: "not-an-email", wantErr: true},
		{email: "missing@tld", wantErr: true},
		{email: "@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := validation.ValidateEmail(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", validation.NormalizeEmail("  Jane@Example.COM "))
}

func TestParseAccountKind(t *testing.T) {
	kind, err := validation.ParseAccountKind("checking")
	require.NoError(t, err)
	assert.Equal(t, domain.Checking, kind)

	kind, err = validation.ParseAccountKind(" Savings ")
	require.NoError(t, err)
	assert.Equal(t, domain.Savings, kind)

	_, err = validation.ParseAccountKind("BROKERAGE")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = validation.ParseAccountKind("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAmounts(t *testing.T) {
	assert.NoError(t, validation.ValidatePositiveAmount("amount", decimal.RequireFromString("0.01")))
	assert.ErrorIs(t, validation.ValidatePositiveAmount("amount", decimal.Zero), apperrors.ErrValidation)
	assert.ErrorIs(t, validation.ValidatePositiveAmount("amount", decimal.RequireFromString("-5")), apperrors.ErrValidation)
	assert.ErrorIs(t, validation.ValidatePositiveAmount("amount", decimal.RequireFromString("1.005")), apperrors.ErrValidation)

	assert.NoError(t, validation.ValidateNonNegativeAmount("opening balance", decimal.Zero))
	assert.ErrorIs(t, validation.ValidateNonNegativeAmount("opening balance", decimal.RequireFromString("-0.01")), apperrors.ErrValidation)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validation.ValidateID("account id", 42))
	assert.ErrorIs(t, validation.ValidateID("account id", 0), apperrors.ErrValidation)
	assert.ErrorIs(t, validation.ValidateID("account id", -1), apperrors.ErrValidation)
}

func TestCreditBounds(t *testing.T) {
	assert.NoError(t, validation.ValidateCreditRate(decimal.Zero))
	assert.NoError(t, validation.ValidateCreditRate(decimal.NewFromInt(20)))
	assert.ErrorIs(t, validation.ValidateCreditRate(decimal.RequireFromString("20.01")), apperrors.ErrValidation)
	assert.ErrorIs(t, validation.ValidateCreditRate(decimal.RequireFromString("-1")), apperrors.ErrValidation)

	assert.NoError(t, validation.ValidateCreditTerm(1))
	assert.NoError(t, validation.ValidateCreditTerm(360))
	assert.ErrorIs(t, validation.ValidateCreditTerm(0), apperrors.ErrValidation)
	assert.ErrorIs(t, validation.ValidateCreditTerm(361), apperrors.ErrValidation)
}

func TestRequireNonEmptyAndFirst(t *testing.T) {
	assert.ErrorIs(t, validation.RequireNonEmpty("name", "   "), apperrors.ErrValidation)
	err := validation.First(nil, validation.RequireNonEmpty("phone", ""), validation.RequireNonEmpty("name", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone is required")
	assert.NoError(t, validation.First(nil, nil))
}
