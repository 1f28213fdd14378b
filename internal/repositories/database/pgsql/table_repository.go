package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTableRepository struct {
	BaseRepository
}

func newPgxTableRepository(pool *pgxpool.Pool) portsrepo.TableRepositoryFacade {
	return &PgxTableRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TableRepositoryFacade = (*PgxTableRepository)(nil)

const tableSelectQuery = `
SELECT g.table_id, g.username, g.password_hash, g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
FROM game_tables g
`

func (r *PgxTableRepository) getTable(ctx context.Context, filterQuery string, args ...any) (*domain.Table, error) {
	rows, err := r.Pool.Query(ctx, tableSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tables", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Table])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect table row", err)
	}
	table := mapping.ToDomainTable(m)
	return &table, nil
}

func (r *PgxTableRepository) FindTableByID(ctx context.Context, tableID string) (*domain.Table, error) {
	return r.getTable(ctx, `WHERE g.table_id = $1`, tableID)
}

func (r *PgxTableRepository) FindTableByUsername(ctx context.Context, username string) (*domain.Table, error) {
	return r.getTable(ctx, `WHERE g.username = $1`, username)
}

// SaveTableWithTeams inserts the table and all its teams in one transaction.
func (r *PgxTableRepository) SaveTableWithTeams(ctx context.Context, table domain.Table, teams []domain.Team) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	m := mapping.ToModelTable(table)
	query := `
		INSERT INTO game_tables (table_id, username, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query, m.TableID, m.Username, m.PasswordHash, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, table.Username)
		}
		return apperrors.NewAppError(500, "failed to save table "+table.TableID, err)
	}

	for _, team := range teams {
		if err = insertTeam(ctx, tx, team); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}
