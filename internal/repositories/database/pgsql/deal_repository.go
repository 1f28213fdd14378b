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

type PgxDealRepository struct {
	BaseRepository
}

// newPgxDealRepository creates a new repository for the deal catalog.
func newPgxDealRepository(pool *pgxpool.Pool) portsrepo.DealRepositoryFacade {
	return &PgxDealRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DealRepositoryFacade = (*PgxDealRepository)(nil)

const dealSelectQuery = `
SELECT
	d.deal_id, d.deal_type, d.name, d.cost, d.passive_income, d.down_payment,
	COALESCE((
		SELECT json_agg(json_build_object('tableId', o.table_id, 'teamId', o.team_id) ORDER BY o.table_id)
		FROM deal_owners o
		WHERE o.deal_id = d.deal_id
	), '[]'::json) AS owners
FROM deals d
`

func (r *PgxDealRepository) getDeals(ctx context.Context, filterQuery string, args ...any) ([]domain.Deal, error) {
	rows, err := r.Pool.Query(ctx, dealSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query deals", err)
	}
	defer rows.Close()

	modelDeals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Deal])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect deal rows", err)
	}
	return mapping.ToDomainDealSlice(modelDeals), nil
}

func (r *PgxDealRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	deals, err := r.getDeals(ctx, `WHERE d.deal_id = $1`, dealID)
	if err != nil {
		return nil, err
	}
	if len(deals) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &deals[0], nil
}

func (r *PgxDealRepository) ListDealsByType(ctx context.Context, class domain.DealClass) ([]domain.Deal, error) {
	return r.getDeals(ctx, `WHERE d.deal_type = $1 ORDER BY d.cost, d.name`, string(class))
}

// SaveDeal upserts a catalog entry. Owners are managed through AddOwner and RemoveOwner.
func (r *PgxDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	m := mapping.ToModelDeal(deal)
	query := `
		INSERT INTO deals (deal_id, deal_type, name, cost, passive_income, down_payment)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (deal_id) DO UPDATE SET
			deal_type = EXCLUDED.deal_type,
			name = EXCLUDED.name,
			cost = EXCLUDED.cost,
			passive_income = EXCLUDED.passive_income,
			down_payment = EXCLUDED.down_payment;
	`
	_, err := r.Pool.Exec(ctx, query, m.DealID, m.DealType, m.Name, m.Cost, m.PassiveIncome, m.DownPayment)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save deal "+deal.DealID, err)
	}
	return nil
}

// AddOwner relies on the (deal_id, table_id) primary key so two tables never race into a double claim.
func (r *PgxDealRepository) AddOwner(ctx context.Context, dealID string, owner domain.DealOwner) error {
	query := `INSERT INTO deal_owners (deal_id, table_id, team_id) VALUES ($1, $2, $3);`
	_, err := r.Pool.Exec(ctx, query, dealID, owner.TableID, owner.TeamID)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return apperrors.NewConflictError(fmt.Sprintf("deal %s is already owned on table %s", dealID, owner.TableID))
		case pgForeignKeyViolation:
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to claim deal "+dealID, err)
	}
	return nil
}

func (r *PgxDealRepository) RemoveOwner(ctx context.Context, dealID string, owner domain.DealOwner) error {
	query := `DELETE FROM deal_owners WHERE deal_id = $1 AND table_id = $2 AND team_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, dealID, owner.TableID, owner.TeamID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release deal "+dealID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
