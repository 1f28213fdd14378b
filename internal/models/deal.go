package models

import "github.com/shopspring/decimal"

// DealOwner marks which team holds a deal on a table.
type DealOwner struct {
	TableID string `json:"tableId" bson:"table_id"`
	TeamID  string `json:"teamId" bson:"team_id"`
}

// Deal is a catalog deal. Postgres keeps owners in deal_owners and aggregates them on read.
type Deal struct {
	DealID        string           `db:"deal_id" bson:"_id"`
	DealType      string           `db:"deal_type" bson:"deal_type"`
	Name          string           `db:"name" bson:"name"`
	Cost          decimal.Decimal  `db:"cost" bson:"cost"`
	PassiveIncome decimal.Decimal  `db:"passive_income" bson:"passive_income"`
	DownPayment   *decimal.Decimal `db:"down_payment" bson:"down_payment,omitempty"`
	Owners        []DealOwner      `db:"owners" bson:"owners"`
}
