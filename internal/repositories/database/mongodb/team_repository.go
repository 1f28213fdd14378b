package mongodb

import (
	"context"
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoTeamRepository struct {
	BaseRepository
}

func newMongoTeamRepository(db *mongo.Database) portsrepo.TeamRepositoryFacade {
	return &MongoTeamRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.TeamRepositoryFacade = (*MongoTeamRepository)(nil)

func (r *MongoTeamRepository) teams() *mongo.Collection {
	return r.collection(teamsCollection)
}

func (r *MongoTeamRepository) getTeam(ctx context.Context, filter bson.M) (*domain.Team, error) {
	m, err := findOne[models.Team](ctx, r.teams(), filter, "team")
	if err != nil {
		return nil, err
	}
	team := mapping.ToDomainTeam(*m)
	return &team, nil
}

func (r *MongoTeamRepository) getTeams(ctx context.Context, filter bson.M) ([]domain.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "table_id", Value: 1}, {Key: "team_name", Value: 1}})
	ms, err := findAll[models.Team](ctx, r.teams(), filter, opts, "teams")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTeamSlice(ms), nil
}

func (r *MongoTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	return r.getTeam(ctx, bson.M{"_id": teamID})
}

func (r *MongoTeamRepository) FindTeamsByTable(ctx context.Context, tableID string) ([]domain.Team, error) {
	return r.getTeams(ctx, bson.M{"table_id": tableID})
}

func (r *MongoTeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return r.getTeams(ctx, bson.M{})
}

func (r *MongoTeamRepository) FindTeamByNameAndCode(ctx context.Context, teamName, code string) (*domain.Team, error) {
	return r.getTeam(ctx, bson.M{"team_name": teamName, "code": code})
}

func (r *MongoTeamRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	m := mapping.ToModelTeam(team)
	if m.Version < 1 {
		m.Version = 1
	}
	if _, err := r.teams().InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: team %q already exists on this table", apperrors.ErrDuplicate, team.TeamName)
		}
		return apperrors.NewAppError(500, "failed to save team "+team.TeamID, err)
	}
	return nil
}

// UpdateTeam replaces the document only while its version still matches.
func (r *MongoTeamRepository) UpdateTeam(ctx context.Context, team *domain.Team) error {
	m := mapping.ToModelTeam(*team)
	m.Version = team.Version + 1

	res, err := r.teams().ReplaceOne(ctx, bson.M{"_id": team.TeamID, "version": team.Version}, m)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update team "+team.TeamID, err)
	}
	if res.MatchedCount == 0 {
		found, err := exists(ctx, r.teams(), team.TeamID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: team %s is no longer at version %d", apperrors.ErrStaleVersion, team.TeamID, team.Version)
	}

	team.Version++
	return nil
}
