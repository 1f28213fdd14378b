package models

import "github.com/shopspring/decimal"

// Card is a chance or penalty catalog entry, keyed by (kind, card_id).
type Card struct {
	CardID      string          `db:"card_id" bson:"card_id"`
	Kind        string          `db:"kind" bson:"kind"`
	Name        string          `db:"name" bson:"name"`
	Amount      decimal.Decimal `db:"amount" bson:"amount"`
	Description string          `db:"description" bson:"description"`
}
