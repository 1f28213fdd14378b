package pgsql

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCardRepository struct {
	BaseRepository
}

func newPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepositoryFacade {
	return &PgxCardRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CardRepositoryFacade = (*PgxCardRepository)(nil)

const cardSelectQuery = `SELECT c.card_id, c.kind, c.name, c.amount, c.description FROM cards c `

func (r *PgxCardRepository) getCards(ctx context.Context, filterQuery string, args ...any) ([]domain.Card, error) {
	rows, err := r.Pool.Query(ctx, cardSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cards", err)
	}
	defer rows.Close()

	modelCards, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Card])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect card rows", err)
	}
	return mapping.ToDomainCardSlice(modelCards), nil
}

func (r *PgxCardRepository) FindCardByID(ctx context.Context, kind domain.CardKind, cardID string) (*domain.Card, error) {
	cards, err := r.getCards(ctx, `WHERE c.kind = $1 AND c.card_id = $2`, string(kind), cardID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &cards[0], nil
}

func (r *PgxCardRepository) ListCardsByKind(ctx context.Context, kind domain.CardKind) ([]domain.Card, error) {
	return r.getCards(ctx, `WHERE c.kind = $1 ORDER BY c.name`, string(kind))
}

func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	m := mapping.ToModelCard(card)
	query := `
		INSERT INTO cards (card_id, kind, name, amount, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, card_id) DO UPDATE SET
			name = EXCLUDED.name,
			amount = EXCLUDED.amount,
			description = EXCLUDED.description;
	`
	if _, err := r.Pool.Exec(ctx, query, m.CardID, m.Kind, m.Name, m.Amount, m.Description); err != nil {
		return apperrors.NewAppError(500, "failed to save card "+card.CardID, err)
	}
	return nil
}
