package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept for monetary values.
const MoneyScale = 2

// RoundMoney rounds half away from zero to two places, which is half-up for the
// positive magnitudes the ledger stores.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}
