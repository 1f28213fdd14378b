package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	teamsCollection      = "teams"
	dealsCollection      = "deals"
	cardsCollection      = "cards"
	tableLogsCollection  = "table_logs"
	gameConfigCollection = "game_config"
	tablesCollection     = "game_tables"
)

// compensationTimeout bounds the cleanup run after a partial multi-document write.
const compensationTimeout = 5 * time.Second

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *mongo.Database
}

func (r *BaseRepository) collection(name string) *mongo.Collection {
	return r.DB.Collection(name)
}

// findOne decodes a single document, mapping a miss to apperrors.ErrNotFound.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, what string) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find "+what, err)
	}
	return &doc, nil
}

// findAll drains a cursor into a slice that is never nil.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts *options.FindOptions, what string) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+what, err)
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode "+what, err)
	}
	return docs, nil
}

func exists(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check "+coll.Name(), err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the unique keys the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		teamsCollection: {
			{Keys: bson.D{{Key: "table_id", Value: 1}, {Key: "team_name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "team_name", Value: 1}, {Key: "code", Value: 1}}},
		},
		dealsCollection: {
			{Keys: bson.D{{Key: "deal_type", Value: 1}, {Key: "cost", Value: 1}}},
		},
		cardsCollection: {
			{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "card_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		tableLogsCollection: {
			{Keys: bson.D{{Key: "table_id", Value: 1}, {Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}},
		},
		tablesCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return apperrors.NewAppError(500, "failed to create indexes on "+name, err)
		}
	}
	return nil
}
