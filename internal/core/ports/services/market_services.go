package services

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// MarketSvcFacade manages the global market mode.
type MarketSvcFacade interface {
	// GetMarketMode returns the persisted mode, or normal when none was set.
	GetMarketMode(ctx context.Context) (domain.MarketMode, error)

	// SetMarketMode is admin-only. It persists the mode and rewrites every team.
	SetMarketMode(ctx context.Context, actor domain.Actor, rawMode string) (*domain.GameConfig, error)
}
