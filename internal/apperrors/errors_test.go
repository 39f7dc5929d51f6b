package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "wrapped validation", err: fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation), want: apperrors.KindValidation},
		{name: "not found", err: apperrors.ErrNotFound, want: apperrors.KindNotFound},
		{name: "inactive", err: fmt.Errorf("source account 7: %w", apperrors.ErrInactiveAccount), want: apperrors.KindInactiveAccount},
		{name: "same account", err: apperrors.ErrSameAccount, want: apperrors.KindSameAccount},
		{name: "duplicate email", err: apperrors.ErrDuplicateEmail, want: apperrors.KindDuplicateEmail},
		{name: "insufficient", err: apperrors.ErrInsufficientFunds, want: apperrors.KindInsufficientFunds},
		{name: "credit limit", err: apperrors.ErrCreditLimitExceeded, want: apperrors.KindCreditLimitExceeded},
		{name: "forbidden", err: apperrors.ErrForbidden, want: apperrors.KindForbidden},
		{name: "uncertain before store", err: apperrors.ErrOutcomeUncertain, want: apperrors.KindOutcomeUncertain},
		{name: "store via AppError", err: apperrors.NewAppError(500, "failed to append", apperrors.ErrStore), want: apperrors.KindStore},
		{name: "unknown", err: errors.New("boom"), want: apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(tt.err))
		})
	}
}

func TestDuplicateEmailIsDuplicate(t *testing.T) {
	assert.ErrorIs(t, apperrors.ErrDuplicateEmail, apperrors.ErrDuplicate)
	assert.ErrorIs(t, apperrors.ErrOutcomeUncertain, apperrors.ErrStore)
}

func TestAppError_Error(t *testing.T) {
	err := apperrors.NewAppError(500, "failed to commit transaction", errors.New("conn reset"))
	assert.Equal(t, "failed to commit transaction: conn reset", err.Error())
	assert.Equal(t, "plain", apperrors.NewAppError(400, "plain", nil).Error())
}
