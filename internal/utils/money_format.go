package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount for log lines and messages.
// Example: 162000 returns "162000", 12.3456 returns "12.35"
func FormatMoney(amount decimal.Decimal) string {
	return amount.Round(2).String()
}

// FormatMoneyFixed always renders two decimal places.
// Example: 162000 returns "162000.00"
func FormatMoneyFixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatRate renders a fractional rate as a percentage.
// Example: 0.08 returns "8%"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}
