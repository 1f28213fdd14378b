package domain

import "github.com/shopspring/decimal"

// ExpenseCorrection records a team whose stored expenses disagreed with the derived value.
type ExpenseCorrection struct {
	TeamID   string          `json:"teamId"`
	TableID  string          `json:"tableId"`
	TeamName string          `json:"teamName"`
	From     decimal.Decimal `json:"from"`
	To       decimal.Decimal `json:"to"`
}
