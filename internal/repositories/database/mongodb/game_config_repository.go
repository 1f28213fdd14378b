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

type MongoGameConfigRepository struct {
	BaseRepository
}

func newMongoGameConfigRepository(db *mongo.Database) portsrepo.GameConfigRepositoryFacade {
	return &MongoGameConfigRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.GameConfigRepositoryFacade = (*MongoGameConfigRepository)(nil)

func (r *MongoGameConfigRepository) GetGameConfig(ctx context.Context) (*domain.GameConfig, error) {
	m, err := findOne[models.GameConfig](ctx, r.collection(gameConfigCollection), bson.M{"_id": domain.GlobalConfigID}, "game config")
	if err != nil {
		return nil, err
	}
	cfg := mapping.ToDomainGameConfig(*m)
	return &cfg, nil
}

func (r *MongoGameConfigRepository) SaveGameConfig(ctx context.Context, cfg domain.GameConfig) error {
	m := mapping.ToModelGameConfig(cfg)
	if m.ConfigID == "" {
		m.ConfigID = domain.GlobalConfigID
	}
	_, err := r.collection(gameConfigCollection).ReplaceOne(ctx, bson.M{"_id": m.ConfigID}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.NewAppError(500, "failed to save game config", err)
	}
	return nil
}
