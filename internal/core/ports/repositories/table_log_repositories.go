package repositories

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// TableLogRepositoryFacade stores the append-only per-table audit trail.
type TableLogRepositoryFacade interface {
	AppendLog(ctx context.Context, log domain.TableLog) error

	// ListLogsByTable returns at most limit entries, newest first. A non-nil before
	// restricts the result to entries older than that position.
	ListLogsByTable(ctx context.Context, tableID string, before *domain.LogCursor, limit int) ([]domain.TableLog, error)
}
