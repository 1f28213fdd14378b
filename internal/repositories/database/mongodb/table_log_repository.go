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

type MongoTableLogRepository struct {
	BaseRepository
}

func newMongoTableLogRepository(db *mongo.Database) portsrepo.TableLogRepositoryFacade {
	return &MongoTableLogRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.TableLogRepositoryFacade = (*MongoTableLogRepository)(nil)

func (r *MongoTableLogRepository) AppendLog(ctx context.Context, log domain.TableLog) error {
	if _, err := r.collection(tableLogsCollection).InsertOne(ctx, mapping.ToModelTableLog(log)); err != nil {
		return apperrors.NewAppError(500, "failed to append table log", err)
	}
	return nil
}

func (r *MongoTableLogRepository) ListLogsByTable(ctx context.Context, tableID string, before *domain.LogCursor, limit int) ([]domain.TableLog, error) {
	filter := bson.M{"table_id": tableID}
	if before != nil {
		filter["$or"] = bson.A{
			bson.M{"timestamp": bson.M{"$lt": before.Timestamp}},
			bson.M{"timestamp": before.Timestamp, "_id": bson.M{"$lt": before.LogID}},
		}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	ms, err := findAll[models.TableLog](ctx, r.collection(tableLogsCollection), filter, opts, "table logs")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTableLogSlice(ms), nil
}
