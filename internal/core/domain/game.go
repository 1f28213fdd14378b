package domain

import (
	"fmt"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
)

// TableLog is an append-only audit line scoped to a table.
type TableLog struct {
	LogID     string    `json:"logId"`
	TableID   string    `json:"tableId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MarketMode is the global game-balance switch.
type MarketMode string

const (
	MarketBull   MarketMode = "bull"
	MarketBear   MarketMode = "bear"
	MarketNormal MarketMode = "normal"
)

// ParseMarketMode accepts bull, bear, normal and the stop aliases, which end a run and restore normal.
func ParseMarketMode(s string) (MarketMode, error) {
	switch s {
	case "bull":
		return MarketBull, nil
	case "bear":
		return MarketBear, nil
	case "normal", "bull-stop", "bear-stop":
		return MarketNormal, nil
	}
	return "", fmt.Errorf("%w: invalid market mode %q", apperrors.ErrValidation, s)
}

// GlobalConfigID is the well-known id of the game configuration singleton.
const GlobalConfigID = "global"

// GameConfig persists process-wide settings so every instance agrees on them.
type GameConfig struct {
	ConfigID   string     `json:"configId"`
	MarketMode MarketMode `json:"marketMode"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	UpdatedBy  string     `json:"updatedBy"`
}

// DefaultGameConfig is used when no record has been stored yet.
func DefaultGameConfig() GameConfig {
	return GameConfig{ConfigID: GlobalConfigID, MarketMode: MarketNormal}
}

// Table is a physical game table that owns several teams.
type Table struct {
	TableID      string `json:"tableId"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	AuditFields
}

// RollEvent is the board square a die roll lands on.
type RollEvent string

const (
	EventChance    RollEvent = "Chance"
	EventSmallDeal RollEvent = "Small Deal"
	EventBigDeal   RollEvent = "Big Deal"
	EventStock     RollEvent = "Stock"
	EventCrypto    RollEvent = "Crypto"
	EventPayday    RollEvent = "Payday"
)

// ActionResult is what every game action hands back to the caller.
type ActionResult struct {
	Team  *Team      `json:"team"`
	Teams []Team     `json:"teams"`
	Logs  []TableLog `json:"logs"`
	Event RollEvent  `json:"event,omitempty"`
	Roll  int        `json:"roll,omitempty"`
	Card  *Card      `json:"card,omitempty"`
}

// TableState is the polling snapshot of a table.
type TableState struct {
	TableID string     `json:"tableId"`
	Teams   []Team     `json:"teams"`
	Logs    []TableLog `json:"logs"`
}

// LogCursor marks a position in a newest-first log listing. Entries strictly older are returned next.
type LogCursor struct {
	Timestamp time.Time
	LogID     string
}

// LogPage is one page of table logs.
type LogPage struct {
	Logs       []TableLog `json:"logs"`
	NextCursor string     `json:"nextCursor,omitempty"`
}
