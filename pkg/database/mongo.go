package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 30 * time.Second

// NewMongoDatabase connects to uri, pings the primary and returns the named database.
// The registry decides how custom types such as decimals are encoded.
func NewMongoDatabase(ctx context.Context, uri, dbName string, registry *bsoncodec.Registry) (*mongo.Database, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo URI cannot be empty")
	}
	if dbName == "" {
		return nil, fmt.Errorf("mongo database name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(uri)
	if registry != nil {
		opts.SetRegistry(registry)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("Connected to MongoDB", "database", dbName)
	return client.Database(dbName), nil
}

// CloseMongo disconnects the client behind db.
func CloseMongo(ctx context.Context, db *mongo.Database) {
	if db == nil {
		return
	}
	if err := db.Client().Disconnect(ctx); err != nil {
		slog.Error("Failed to disconnect MongoDB", "error", err)
		return
	}
	slog.Info("MongoDB connection closed")
}
