package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoTableRepository struct {
	BaseRepository
}

func newMongoTableRepository(db *mongo.Database) portsrepo.TableRepositoryFacade {
	return &MongoTableRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.TableRepositoryFacade = (*MongoTableRepository)(nil)

func (r *MongoTableRepository) getTable(ctx context.Context, filter bson.M) (*domain.Table, error) {
	m, err := findOne[models.Table](ctx, r.collection(tablesCollection), filter, "table")
	if err != nil {
		return nil, err
	}
	table := mapping.ToDomainTable(*m)
	return &table, nil
}

func (r *MongoTableRepository) FindTableByID(ctx context.Context, tableID string) (*domain.Table, error) {
	return r.getTable(ctx, bson.M{"_id": tableID})
}

func (r *MongoTableRepository) FindTableByUsername(ctx context.Context, username string) (*domain.Table, error) {
	return r.getTable(ctx, bson.M{"username": username})
}

// SaveTableWithTeams inserts the table and then its teams. Standalone servers have no
// multi-document transactions, so a failed team insert deletes what was written.
func (r *MongoTableRepository) SaveTableWithTeams(ctx context.Context, table domain.Table, teams []domain.Team) error {
	tables := r.collection(tablesCollection)
	if _, err := tables.InsertOne(ctx, mapping.ToModelTable(table)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, table.Username)
		}
		return apperrors.NewAppError(500, "failed to save table "+table.TableID, err)
	}
	if len(teams) == 0 {
		return nil
	}

	docs := make([]any, len(teams))
	for i, team := range teams {
		m := mapping.ToModelTeam(team)
		if m.Version < 1 {
			m.Version = 1
		}
		docs[i] = m
	}
	_, err := r.collection(teamsCollection).InsertMany(ctx, docs)
	if err == nil {
		return nil
	}

	r.compensate(ctx, table.TableID)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: duplicate team on table %s", apperrors.ErrDuplicate, table.TableID)
	}
	return apperrors.NewAppError(500, "failed to save teams for table "+table.TableID, err)
}

func (r *MongoTableRepository) compensate(ctx context.Context, tableID string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if _, err := r.collection(teamsCollection).DeleteMany(cleanupCtx, bson.M{"table_id": tableID}); err != nil {
		slog.Error("Failed to remove teams of a half-registered table", "table_id", tableID, "error", err)
	}
	if _, err := r.collection(tablesCollection).DeleteOne(cleanupCtx, bson.M{"_id": tableID}); err != nil {
		slog.Error("Failed to remove half-registered table", "table_id", tableID, "error", err)
	}
}
