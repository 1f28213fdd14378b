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

type MongoDealRepository struct {
	BaseRepository
}

func newMongoDealRepository(db *mongo.Database) portsrepo.DealRepositoryFacade {
	return &MongoDealRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.DealRepositoryFacade = (*MongoDealRepository)(nil)

func (r *MongoDealRepository) deals() *mongo.Collection {
	return r.collection(dealsCollection)
}

func (r *MongoDealRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	m, err := findOne[models.Deal](ctx, r.deals(), bson.M{"_id": dealID}, "deal")
	if err != nil {
		return nil, err
	}
	deal := mapping.ToDomainDeal(*m)
	return &deal, nil
}

func (r *MongoDealRepository) ListDealsByType(ctx context.Context, class domain.DealClass) ([]domain.Deal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "cost", Value: 1}, {Key: "name", Value: 1}})
	ms, err := findAll[models.Deal](ctx, r.deals(), bson.M{"deal_type": string(class)}, opts, "deals")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainDealSlice(ms), nil
}

// SaveDeal upserts the catalog fields and leaves existing owners untouched.
func (r *MongoDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	m := mapping.ToModelDeal(deal)
	update := bson.M{
		"$set": bson.M{
			"deal_type":      m.DealType,
			"name":           m.Name,
			"cost":           m.Cost,
			"passive_income": m.PassiveIncome,
			"down_payment":   m.DownPayment,
		},
		"$setOnInsert": bson.M{"owners": []models.DealOwner{}},
	}
	_, err := r.deals().UpdateOne(ctx, bson.M{"_id": m.DealID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return apperrors.NewAppError(500, "failed to save deal "+deal.DealID, err)
	}
	return nil
}

// AddOwner pushes the owner only if no entry for the same table exists, so the check and write are one atomic step.
func (r *MongoDealRepository) AddOwner(ctx context.Context, dealID string, owner domain.DealOwner) error {
	filter := bson.M{"_id": dealID, "owners.table_id": bson.M{"$ne": owner.TableID}}
	update := bson.M{"$push": bson.M{"owners": models.DealOwner{TableID: owner.TableID, TeamID: owner.TeamID}}}

	res, err := r.deals().UpdateOne(ctx, filter, update)
	if err != nil {
		return apperrors.NewAppError(500, "failed to claim deal "+dealID, err)
	}
	if res.MatchedCount == 0 {
		found, err := exists(ctx, r.deals(), dealID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}
		return apperrors.NewConflictError(fmt.Sprintf("deal %s is already owned on table %s", dealID, owner.TableID))
	}
	return nil
}

func (r *MongoDealRepository) RemoveOwner(ctx context.Context, dealID string, owner domain.DealOwner) error {
	update := bson.M{"$pull": bson.M{"owners": bson.M{"table_id": owner.TableID, "team_id": owner.TeamID}}}
	res, err := r.deals().UpdateOne(ctx, bson.M{"_id": dealID}, update)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release deal "+dealID, err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
