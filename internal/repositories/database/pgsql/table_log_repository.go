package pgsql

import (
	"context"
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTableLogRepository struct {
	BaseRepository
}

func newPgxTableLogRepository(pool *pgxpool.Pool) portsrepo.TableLogRepositoryFacade {
	return &PgxTableLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TableLogRepositoryFacade = (*PgxTableLogRepository)(nil)

func (r *PgxTableLogRepository) AppendLog(ctx context.Context, log domain.TableLog) error {
	m := mapping.ToModelTableLog(log)
	query := `INSERT INTO table_logs (log_id, table_id, message, timestamp) VALUES ($1, $2, $3, $4);`
	if _, err := r.Pool.Exec(ctx, query, m.LogID, m.TableID, m.Message, m.Timestamp); err != nil {
		return apperrors.NewAppError(500, "failed to append table log", err)
	}
	return nil
}

// ListLogsByTable pages newest first using a (timestamp, log_id) keyset.
func (r *PgxTableLogRepository) ListLogsByTable(ctx context.Context, tableID string, before *domain.LogCursor, limit int) ([]domain.TableLog, error) {
	query := `SELECT log_id, table_id, message, timestamp FROM table_logs WHERE table_id = $1`
	args := []any{tableID}
	if before != nil {
		query += ` AND (timestamp, log_id) < ($2, $3)`
		args = append(args, before.Timestamp, before.LogID)
	}
	query += fmt.Sprintf(` ORDER BY timestamp DESC, log_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query table logs", err)
	}
	defer rows.Close()

	modelLogs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TableLog])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect table log rows", err)
	}
	return mapping.ToDomainTableLogSlice(modelLogs), nil
}
