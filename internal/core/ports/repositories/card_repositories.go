package repositories

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// CardReader defines read operations for chance and penalty cards
type CardReader interface {
	FindCardByID(ctx context.Context, kind domain.CardKind, cardID string) (*domain.Card, error)
	ListCardsByKind(ctx context.Context, kind domain.CardKind) ([]domain.Card, error)
}

// CardWriter defines write operations for chance and penalty cards
type CardWriter interface {
	SaveCard(ctx context.Context, card domain.Card) error
}

// CardRepositoryFacade combines all card-related repository interfaces
type CardRepositoryFacade interface {
	CardReader
	CardWriter
}
