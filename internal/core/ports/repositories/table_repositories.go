package repositories

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// TableReader defines read operations for game tables
type TableReader interface {
	FindTableByID(ctx context.Context, tableID string) (*domain.Table, error)
	FindTableByUsername(ctx context.Context, username string) (*domain.Table, error)
}

// TableWriter defines write operations for game tables
type TableWriter interface {
	// SaveTableWithTeams registers a table and its starting teams as one unit.
	// A taken username returns apperrors.ErrDuplicate.
	SaveTableWithTeams(ctx context.Context, table domain.Table, teams []domain.Team) error
}

// TableRepositoryFacade combines all table-related repository interfaces
type TableRepositoryFacade interface {
	TableReader
	TableWriter
}
