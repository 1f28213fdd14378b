// Package store opens the entity store selected by STORE_DRIVER.
package store

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/platform/config"
	"github.com/Garvkhullar/cashflow4.0-official/internal/repositories/database/mongodb"
	"github.com/Garvkhullar/cashflow4.0-official/internal/repositories/database/pgsql"
	"github.com/Garvkhullar/cashflow4.0-official/pkg/database"
)

// Store bundles the repositories with the connection that backs them.
type Store struct {
	Repos portsrepo.RepositoryProvider
	close func(context.Context)
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) {
	if s != nil && s.close != nil {
		s.close(ctx)
	}
}

// Options controls what Open does besides connecting.
type Options struct {
	// Migrate applies Postgres migrations or Mongo indexes before returning.
	Migrate bool
}

// Open connects to the configured store.
func Open(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts Options) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if opts.Migrate {
			if err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return &Store{
			Repos: pgsql.NewRepositoryProvider(pool),
			close: func(context.Context) { database.ClosePgxPool(pool) },
		}, nil

	case config.DriverMongo:
		db, err := database.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDatabase, mongodb.NewRegistry())
		if err != nil {
			return nil, err
		}
		if opts.Migrate {
			if err := mongodb.EnsureIndexes(ctx, db); err != nil {
				database.CloseMongo(ctx, db)
				return nil, err
			}
			logger.Info("MongoDB indexes ensured")
		}
		return &Store{
			Repos: mongodb.NewRepositoryProvider(db),
			close: func(ctx context.Context) { database.CloseMongo(ctx, db) },
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
