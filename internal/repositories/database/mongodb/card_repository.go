package mongodb

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCardRepository struct {
	BaseRepository
}

func newMongoCardRepository(db *mongo.Database) portsrepo.CardRepositoryFacade {
	return &MongoCardRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.CardRepositoryFacade = (*MongoCardRepository)(nil)

func (r *MongoCardRepository) FindCardByID(ctx context.Context, kind domain.CardKind, cardID string) (*domain.Card, error) {
	m, err := findOne[models.Card](ctx, r.collection(cardsCollection), bson.M{"kind": string(kind), "card_id": cardID}, "card")
	if err != nil {
		return nil, err
	}
	card := mapping.ToDomainCard(*m)
	return &card, nil
}

func (r *MongoCardRepository) ListCardsByKind(ctx context.Context, kind domain.CardKind) ([]domain.Card, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	ms, err := findAll[models.Card](ctx, r.collection(cardsCollection), bson.M{"kind": string(kind)}, opts, "cards")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainCardSlice(ms), nil
}

func (r *MongoCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	m := mapping.ToModelCard(card)
	filter := bson.M{"kind": m.Kind, "card_id": m.CardID}
	_, err := r.collection(cardsCollection).ReplaceOne(ctx, filter, m, options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.NewAppError(500, "failed to save card "+card.CardID, err)
	}
	return nil
}
