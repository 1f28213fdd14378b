package models

import "time"

// Table is a registered game table login.
type Table struct {
	TableID      string `db:"table_id" bson:"_id"`
	Username     string `db:"username" bson:"username"`
	PasswordHash string `db:"password_hash" bson:"password_hash"`
	AuditFields  `bson:",inline"`
}

// TableLog is one audit line.
type TableLog struct {
	LogID     string    `db:"log_id" bson:"_id"`
	TableID   string    `db:"table_id" bson:"table_id"`
	Message   string    `db:"message" bson:"message"`
	Timestamp time.Time `db:"timestamp" bson:"timestamp"`
}

// GameConfig is the global settings singleton.
type GameConfig struct {
	ConfigID   string    `db:"config_id" bson:"_id"`
	MarketMode string    `db:"market_mode" bson:"market_mode"`
	UpdatedAt  time.Time `db:"updated_at" bson:"updated_at"`
	UpdatedBy  string    `db:"updated_by" bson:"updated_by"`
}
