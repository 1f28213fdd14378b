package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EMISchedule is stored inside the team row as JSON (Postgres) or a subdocument (Mongo).
type EMISchedule struct {
	DealID           string          `json:"dealId" bson:"deal_id"`
	TotalLoan        decimal.Decimal `json:"totalLoan" bson:"total_loan"`
	EMI              decimal.Decimal `json:"emi" bson:"emi"`
	InstallmentsLeft int             `json:"installmentsLeft" bson:"installments_left"`
	InterestRate     decimal.Decimal `json:"interestRate" bson:"interest_rate"`
}

// Lot is one stock or crypto holding.
type Lot struct {
	Name          string          `json:"name" bson:"name"`
	Quantity      decimal.Decimal `json:"quantity" bson:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" bson:"purchase_price"`
}

// CardRecord is a penalty or chance applied to a team.
type CardRecord struct {
	CardID string          `json:"cardId" bson:"card_id"`
	Name   string          `json:"name" bson:"name"`
	Amount decimal.Decimal `json:"amount" bson:"amount"`
	Date   time.Time       `json:"date" bson:"date"`
}

// Team is the persisted form of a team.
type Team struct {
	TeamID    string `db:"team_id" bson:"_id"`
	TableID   string `db:"table_id" bson:"table_id"`
	TableName string `db:"table_name" bson:"table_name"`
	TeamName  string `db:"team_name" bson:"team_name"`
	Code      string `db:"code" bson:"code"`

	Cash          decimal.Decimal `db:"cash" bson:"cash"`
	Income        decimal.Decimal `db:"income" bson:"income"`
	PassiveIncome decimal.Decimal `db:"passive_income" bson:"passive_income"`
	Assets        decimal.Decimal `db:"assets" bson:"assets"`
	Expenses      decimal.Decimal `db:"expenses" bson:"expenses"`

	SmallDealLoan decimal.Decimal `db:"small_deal_loan" bson:"small_deal_loan"`
	BigDealLoan   decimal.Decimal `db:"big_deal_loan" bson:"big_deal_loan"`
	PersonalLoan  decimal.Decimal `db:"personal_loan" bson:"personal_loan"`
	StocksLoan    decimal.Decimal `db:"stocks_loan" bson:"stocks_loan"`
	CryptoLoan    decimal.Decimal `db:"crypto_loan" bson:"crypto_loan"`

	SmallDealEmis []EMISchedule `db:"small_deal_emis" bson:"small_deal_emis"`
	BigDealEmis   []EMISchedule `db:"big_deal_emis" bson:"big_deal_emis"`
	Deals         []string      `db:"deals" bson:"deals"`
	Stocks        []Lot         `db:"stocks" bson:"stocks"`
	Crypto        []Lot         `db:"crypto" bson:"crypto"`

	IsAssetsFrozen      bool `db:"is_assets_frozen" bson:"is_assets_frozen"`
	PaydayFrozenTurn    int  `db:"payday_frozen_turn" bson:"payday_frozen_turn"`
	IsVacationOn        bool `db:"is_vacation_on" bson:"is_vacation_on"`
	VacationPaydaysLeft int  `db:"vacation_paydays_left" bson:"vacation_paydays_left"`
	NextPaydayTax       bool `db:"next_payday_tax" bson:"next_payday_tax"`

	PaydayMultiplier decimal.Decimal `db:"payday_multiplier" bson:"payday_multiplier"`
	LoanInterestRate decimal.Decimal `db:"loan_interest_rate" bson:"loan_interest_rate"`

	FutureCounter  int `db:"future_counter" bson:"future_counter"`
	OptionsCounter int `db:"options_counter" bson:"options_counter"`
	PaydayCounter  int `db:"payday_counter" bson:"payday_counter"`

	Penalties []CardRecord `db:"penalties" bson:"penalties"`
	Chances   []CardRecord `db:"chances" bson:"chances"`

	Version     int64 `db:"version" bson:"version"`
	AuditFields `bson:",inline"`
}
