package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// EMISchedule is one amortizing deal loan paid down at each payday.
type EMISchedule struct {
	DealID           string          `json:"dealId"`
	TotalLoan        decimal.Decimal `json:"totalLoan"`
	EMI              decimal.Decimal `json:"emi"`
	InstallmentsLeft int             `json:"installmentsLeft"`
	InterestRate     decimal.Decimal `json:"interestRate"`
}

// Exhausted reports whether the schedule must be dropped.
func (e EMISchedule) Exhausted() bool {
	return e.InstallmentsLeft <= 0 || !e.TotalLoan.IsPositive()
}

// Lot is an independently priced stock or crypto holding. Lots never merge.
type Lot struct {
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

// CardRecord is the history entry left on a team when a chance or penalty is applied.
type CardRecord struct {
	CardID string          `json:"cardId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// Team is the central mutable entity of the game, one per participant.
type Team struct {
	TeamID    string `json:"teamId"`
	TableID   string `json:"tableId"`
	TableName string `json:"tableName"`
	TeamName  string `json:"teamName"`
	Code      string `json:"-"`

	Cash          decimal.Decimal `json:"cash"`
	Income        decimal.Decimal `json:"income"`
	PassiveIncome decimal.Decimal `json:"passiveIncome"`
	Assets        decimal.Decimal `json:"assets"`
	Expenses      decimal.Decimal `json:"expenses"`

	SmallDealLoan decimal.Decimal `json:"smallDealLoan"`
	BigDealLoan   decimal.Decimal `json:"bigDealLoan"`
	PersonalLoan  decimal.Decimal `json:"personalLoan"`
	StocksLoan    decimal.Decimal `json:"stocksLoan"`
	CryptoLoan    decimal.Decimal `json:"cryptoLoan"`

	SmallDealEmis []EMISchedule `json:"smallDealEmis"`
	BigDealEmis   []EMISchedule `json:"bigDealEmis"`

	Deals  []string `json:"deals"`
	Stocks []Lot    `json:"stocks"`
	Crypto []Lot    `json:"crypto"`

	IsAssetsFrozen      bool `json:"isAssetsFrozen"`
	PaydayFrozenTurn    int  `json:"paydayFrozenTurn"`
	IsVacationOn        bool `json:"isVacationOn"`
	VacationPaydaysLeft int  `json:"vacationPaydaysLeft"`
	NextPaydayTax       bool `json:"nextPaydayTax"`

	PaydayMultiplier decimal.Decimal `json:"paydayMultiplier"`
	LoanInterestRate decimal.Decimal `json:"loanInterestRate"`

	FutureCounter  int `json:"futureCounter"`
	OptionsCounter int `json:"optionsCounter"`
	PaydayCounter  int `json:"paydayCounter"`

	Penalties []CardRecord `json:"penalties"`
	Chances   []CardRecord `json:"chances"`

	// Version is checked and incremented by the store on every update.
	Version int64 `json:"version"`
	AuditFields
}

// Clone returns a deep copy so a failed action never leaks into the caller's value.
func (t *Team) Clone() *Team {
	c := *t
	c.SmallDealEmis = slices.Clone(t.SmallDealEmis)
	c.BigDealEmis = slices.Clone(t.BigDealEmis)
	c.Deals = slices.Clone(t.Deals)
	c.Stocks = slices.Clone(t.Stocks)
	c.Crypto = slices.Clone(t.Crypto)
	c.Penalties = slices.Clone(t.Penalties)
	c.Chances = slices.Clone(t.Chances)
	return &c
}

// Emis returns the schedule slice for a deal class.
func (t *Team) Emis(class DealClass) *[]EMISchedule {
	if class == DealClassBig {
		return &t.BigDealEmis
	}
	return &t.SmallDealEmis
}

// Lots returns the holdings slice for an asset class.
func (t *Team) Lots(class AssetClass) *[]Lot {
	if class == AssetClassCrypto {
		return &t.Crypto
	}
	return &t.Stocks
}

// HasEMIFor reports whether any schedule already references the deal.
func (t *Team) HasEMIFor(dealID string) bool {
	match := func(e EMISchedule) bool { return e.DealID == dealID }
	return slices.ContainsFunc(t.SmallDealEmis, match) || slices.ContainsFunc(t.BigDealEmis, match)
}

// HoldsDeal reports whether the deal is already among the team's holdings.
func (t *Team) HoldsDeal(dealID string) bool {
	return slices.Contains(t.Deals, dealID)
}
