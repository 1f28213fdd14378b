package pgsql

import (
	"context"
	"errors"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxGameConfigRepository struct {
	BaseRepository
}

func newPgxGameConfigRepository(pool *pgxpool.Pool) portsrepo.GameConfigRepositoryFacade {
	return &PgxGameConfigRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.GameConfigRepositoryFacade = (*PgxGameConfigRepository)(nil)

func (r *PgxGameConfigRepository) GetGameConfig(ctx context.Context) (*domain.GameConfig, error) {
	query := `SELECT config_id, market_mode, updated_at, updated_by FROM game_config WHERE config_id = $1;`
	var m models.GameConfig
	err := r.Pool.QueryRow(ctx, query, domain.GlobalConfigID).Scan(&m.ConfigID, &m.MarketMode, &m.UpdatedAt, &m.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to read game config", err)
	}
	cfg := mapping.ToDomainGameConfig(m)
	return &cfg, nil
}

func (r *PgxGameConfigRepository) SaveGameConfig(ctx context.Context, cfg domain.GameConfig) error {
	m := mapping.ToModelGameConfig(cfg)
	if m.ConfigID == "" {
		m.ConfigID = domain.GlobalConfigID
	}
	query := `
		INSERT INTO game_config (config_id, market_mode, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_id) DO UPDATE SET
			market_mode = EXCLUDED.market_mode,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	if _, err := r.Pool.Exec(ctx, query, m.ConfigID, m.MarketMode, m.UpdatedAt, m.UpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to save game config", err)
	}
	return nil
}
