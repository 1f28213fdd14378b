package repositories

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// GameConfigRepositoryFacade persists the game configuration singleton.
type GameConfigRepositoryFacade interface {
	// GetGameConfig returns apperrors.ErrNotFound until a config has been saved.
	GetGameConfig(ctx context.Context) (*domain.GameConfig, error)
	SaveGameConfig(ctx context.Context, cfg domain.GameConfig) error
}
