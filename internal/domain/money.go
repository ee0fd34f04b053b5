package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits every stored amount carries.
const MoneyScale = 2

// DefaultFeePercentage applies when no fee configuration exists (1%).
var DefaultFeePercentage = decimal.RequireFromString("0.01")

// RoundMoney rounds half away from zero to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// FormatMoney renders an amount with exactly MoneyScale fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}

// ConvertAmount converts amount with the given multiplier and rounds the result.
func ConvertAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(rate))
}

// CalculateFee returns the fee charged on amount for the given percentage.
// The fee is denominated in the same currency as amount.
func CalculateFee(amount, percentage decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(percentage))
}
