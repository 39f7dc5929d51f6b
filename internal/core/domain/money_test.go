package domain_test

import (
	"testing"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "10.005", want: "10.01"},
		{in: "10.004", want: "10"},
		{in: "0.125", want: "0.13"},
		{in: "-0.125", want: "-0.13"},
		{in: "150", want: "150"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := domain.RoundMoney(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestRole_Can(t *testing.T) {
	assert.True(t, domain.RoleTeller.Can(domain.CapMoveMoney))
	assert.True(t, domain.RoleTeller.Can(domain.CapRequestCredit))
	assert.False(t, domain.RoleAuditor.Can(domain.CapMoveMoney))
	assert.True(t, domain.RoleAuditor.Can(domain.CapReadLedger))
	assert.False(t, domain.Role("JANITOR").Can(domain.CapReadLedger))

	role, ok := domain.ParseRole("MANAGER")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleManager, role)
	_, ok = domain.ParseRole("teller")
	assert.False(t, ok)
}

func TestAccount_IsActive(t *testing.T) {
	assert.True(t, domain.Account{Status: domain.AccountActive}.IsActive())
	assert.False(t, domain.Account{Status: domain.AccountInactive}.IsActive())
}
