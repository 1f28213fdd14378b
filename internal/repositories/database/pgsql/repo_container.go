package pgsql

import (
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TeamRepo:       newPgxTeamRepository(dbPool),
		DealRepo:       newPgxDealRepository(dbPool),
		CardRepo:       newPgxCardRepository(dbPool),
		TableLogRepo:   newPgxTableLogRepository(dbPool),
		GameConfigRepo: newPgxGameConfigRepository(dbPool),
		TableRepo:      newPgxTableRepository(dbPool),
	}
}
