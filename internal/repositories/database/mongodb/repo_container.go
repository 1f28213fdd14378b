package mongodb

import (
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

func NewRepositoryProvider(db *mongo.Database) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TeamRepo:       newMongoTeamRepository(db),
		DealRepo:       newMongoDealRepository(db),
		CardRepo:       newMongoCardRepository(db),
		TableLogRepo:   newMongoTableLogRepository(db),
		GameConfigRepo: newMongoGameConfigRepository(db),
		TableRepo:      newMongoTableRepository(db),
	}
}
