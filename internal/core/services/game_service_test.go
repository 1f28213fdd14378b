package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/turn"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testTeam() *domain.Team {
	return &domain.Team{
		TeamID:           "team-1",
		TableID:          "table-1",
		TeamName:         "Alpha",
		Cash:             dec(500000),
		Income:           dec(450000),
		Expenses:         dec(300000),
		PaydayMultiplier: dec(1),
		LoanInterestRate: decimal.RequireFromString("0.10"),
		Version:          1,
	}
}

type GameServiceTestSuite struct {
	suite.Suite
	teamRepo *MockTeamRepository
	dealRepo *MockDealRepository
	cardRepo *MockCardRepository
	audit    *MockAuditService
	dice     *fixedSource
	service  portssvc.GameSvcFacade
	ctx      context.Context
	player   domain.Actor
}

func (suite *GameServiceTestSuite) SetupTest() {
	suite.teamRepo = new(MockTeamRepository)
	suite.dealRepo = new(MockDealRepository)
	suite.cardRepo = new(MockCardRepository)
	suite.audit = new(MockAuditService)
	suite.dice = &fixedSource{}
	suite.ctx = context.Background()
	suite.player = domain.Actor{ID: "team-1", Role: domain.RoleTeam, TableID: "table-1"}

	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	engine := ledger.NewEngine(ledger.DefaultRules()).WithClock(func() time.Time { return fixed })
	suite.service = services.NewGameService(
		suite.teamRepo, suite.dealRepo, suite.cardRepo, suite.audit,
		engine, turn.NewSequencer(engine, suite.dice),
		services.WithLogTail(10),
		services.WithGameClock(func() time.Time { return fixed }),
	)
}

// expectResultAssembly stubs the audit write and the response reads that follow a successful action.
func (suite *GameServiceTestSuite) expectResultAssembly(team *domain.Team) {
	suite.audit.On("Append", mock.Anything, team.TableID, mock.Anything).Return().Once()
	suite.teamRepo.On("FindTeamsByTable", mock.Anything, team.TableID).Return([]domain.Team{*team}, nil).Once()
	suite.audit.On("Tail", mock.Anything, team.TableID, 10).Return([]domain.TableLog{{LogID: "l1", Message: "latest"}}, nil).Once()
}

// --- Payday ---

func (suite *GameServiceTestSuite) TestPayday_Success() {
	team := testTeam()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.MatchedBy(func(t *domain.Team) bool {
		return t.Cash.Equal(dec(650000)) && t.PaydayCounter == 1 && t.LastUpdatedBy == "team-1"
	})).Return(nil).Once()
	suite.expectResultAssembly(team)

	result, err := suite.service.Payday(suite.ctx, suite.player, "team-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Team)
	suite.True(result.Team.Cash.Equal(dec(650000)), result.Team.Cash.String())
	suite.Equal(int64(2), result.Team.Version)
	suite.Len(result.Teams, 1)
	suite.True(result.Teams[0].Cash.Equal(dec(650000)), "table view carries the updated team")
	suite.Len(result.Logs, 1)
	suite.True(team.Cash.Equal(dec(500000)), "fixture must not be mutated")
	suite.teamRepo.AssertExpectations(suite.T())
	suite.audit.AssertExpectations(suite.T())
}

func (suite *GameServiceTestSuite) TestPayday_RetriesAfterStaleVersion() {
	team := testTeam()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Twice()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(apperrors.ErrStaleVersion).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(nil).Once()
	suite.expectResultAssembly(team)

	result, err := suite.service.Payday(suite.ctx, suite.player, "team-1")

	suite.Require().NoError(err)
	suite.True(result.Team.Cash.Equal(dec(650000)), "payday applied exactly once")
	suite.teamRepo.AssertNumberOfCalls(suite.T(), "UpdateTeam", 2)
}

func (suite *GameServiceTestSuite) TestPayday_GivesUpAfterMaxAttempts() {
	team := testTeam()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil)
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(apperrors.ErrStaleVersion)

	result, err := suite.service.Payday(suite.ctx, suite.player, "team-1")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.teamRepo.AssertNumberOfCalls(suite.T(), "UpdateTeam", services.MaxSaveAttempts)
	suite.audit.AssertNotCalled(suite.T(), "Append", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GameServiceTestSuite) TestPayday_ForbiddenForOtherTeam() {
	team := testTeam()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()

	other := domain.Actor{ID: "team-2", Role: domain.RoleTeam, TableID: "table-1"}
	_, err := suite.service.Payday(suite.ctx, other, "team-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.teamRepo.AssertNotCalled(suite.T(), "UpdateTeam", mock.Anything, mock.Anything)
}

func (suite *GameServiceTestSuite) TestPayday_TeamNotFound() {
	suite.teamRepo.On("FindTeamByID", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Payday(suite.ctx, suite.player, "ghost")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GameServiceTestSuite) TestPayday_StoreFailureIsNotRetried() {
	team := testTeam()
	storeErr := apperrors.NewAppError(500, "db down", errors.New("connection refused"))
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(storeErr).Once()

	_, err := suite.service.Payday(suite.ctx, suite.player, "team-1")

	suite.ErrorIs(err, apperrors.ErrStoreUnavailable)
	suite.teamRepo.AssertNumberOfCalls(suite.T(), "UpdateTeam", 1)
}

// --- Roll ---

func (suite *GameServiceTestSuite) TestRoll_ReportsEventWithoutSaving() {
	team := testTeam()
	suite.dice.next = []int{5}
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.expectResultAssembly(team)

	result, err := suite.service.Roll(suite.ctx, suite.player, "team-1")

	suite.Require().NoError(err)
	suite.Equal(6, result.Roll)
	suite.Equal(domain.EventPayday, result.Event)
	suite.teamRepo.AssertNotCalled(suite.T(), "UpdateTeam", mock.Anything, mock.Anything)
}

// --- Deals ---

func testDeal() *domain.Deal {
	return &domain.Deal{
		DealID:        "deal-1",
		DealType:      domain.DealClassSmall,
		Name:          "Duplex",
		Cost:          dec(200000),
		PassiveIncome: dec(20000),
	}
}

func (suite *GameServiceTestSuite) TestBuyDeal_ClaimsOwnership() {
	team := testTeam()
	owner := domain.DealOwner{TableID: "table-1", TeamID: "team-1"}
	suite.dealRepo.On("FindDealByID", mock.Anything, "deal-1").Return(testDeal(), nil).Once()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.dealRepo.On("AddOwner", mock.Anything, "deal-1", owner).Return(nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(nil).Once()
	suite.expectResultAssembly(team)

	req := dto.BuyDealRequest{TeamID: "team-1", DealID: "deal-1", BuyAmount: dec(100000), Installments: 4}
	result, err := suite.service.BuyDeal(suite.ctx, suite.player, domain.DealClassSmall, req)

	suite.Require().NoError(err)
	suite.True(result.Team.Cash.Equal(dec(400000)))
	suite.True(result.Team.SmallDealLoan.Equal(dec(108000)), result.Team.SmallDealLoan.String())
	suite.Require().Len(result.Team.SmallDealEmis, 1)
	suite.True(result.Team.SmallDealEmis[0].EMI.Equal(dec(27000)))
	suite.Equal([]string{"deal-1"}, result.Team.Deals)
	suite.dealRepo.AssertNotCalled(suite.T(), "RemoveOwner", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GameServiceTestSuite) TestBuyDeal_ReleasesClaimWhenSaveFails() {
	team := testTeam()
	owner := domain.DealOwner{TableID: "table-1", TeamID: "team-1"}
	suite.dealRepo.On("FindDealByID", mock.Anything, "deal-1").Return(testDeal(), nil).Once()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.dealRepo.On("AddOwner", mock.Anything, "deal-1", owner).Return(nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(apperrors.NewAppError(500, "db down", nil)).Once()
	suite.dealRepo.On("RemoveOwner", mock.Anything, "deal-1", owner).Return(nil).Once()

	req := dto.BuyDealRequest{TeamID: "team-1", DealID: "deal-1", BuyAmount: dec(100000), Installments: 4}
	_, err := suite.service.BuyDeal(suite.ctx, suite.player, domain.DealClassSmall, req)

	suite.Require().Error(err)
	suite.dealRepo.AssertExpectations(suite.T())
}

func (suite *GameServiceTestSuite) TestBuyDeal_ClaimedOnceAcrossRetries() {
	team := testTeam()
	owner := domain.DealOwner{TableID: "table-1", TeamID: "team-1"}
	suite.dealRepo.On("FindDealByID", mock.Anything, "deal-1").Return(testDeal(), nil).Once()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Twice()
	suite.dealRepo.On("AddOwner", mock.Anything, "deal-1", owner).Return(nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(apperrors.ErrStaleVersion).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(nil).Once()
	suite.expectResultAssembly(team)

	req := dto.BuyDealRequest{TeamID: "team-1", DealID: "deal-1", BuyAmount: dec(100000), Installments: 4}
	_, err := suite.service.BuyDeal(suite.ctx, suite.player, domain.DealClassSmall, req)

	suite.Require().NoError(err)
	suite.dealRepo.AssertNumberOfCalls(suite.T(), "AddOwner", 1)
}

func (suite *GameServiceTestSuite) TestBuyDeal_AlreadyOwnedOnTable() {
	team := testTeam()
	owner := domain.DealOwner{TableID: "table-1", TeamID: "team-1"}
	suite.dealRepo.On("FindDealByID", mock.Anything, "deal-1").Return(testDeal(), nil).Once()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.dealRepo.On("AddOwner", mock.Anything, "deal-1", owner).Return(apperrors.NewConflictError("deal already owned")).Once()

	req := dto.BuyDealRequest{TeamID: "team-1", DealID: "deal-1", BuyAmount: dec(100000), Installments: 4}
	_, err := suite.service.BuyDeal(suite.ctx, suite.player, domain.DealClassSmall, req)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.teamRepo.AssertNotCalled(suite.T(), "UpdateTeam", mock.Anything, mock.Anything)
	suite.dealRepo.AssertNotCalled(suite.T(), "RemoveOwner", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GameServiceTestSuite) TestBuyDeal_UnknownDeal() {
	suite.dealRepo.On("FindDealByID", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.BuyDealRequest{TeamID: "team-1", DealID: "nope", BuyAmount: dec(1), Installments: 4}
	_, err := suite.service.BuyDeal(suite.ctx, suite.player, domain.DealClassSmall, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Assets ---

func (suite *GameServiceTestSuite) TestBuyAsset_FrozenTeamRejected() {
	team := testTeam()
	team.IsAssetsFrozen = true
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()

	req := dto.AssetTradeRequest{TeamID: "team-1", Name: "ACME", Quantity: dec(10), Price: dec(100)}
	_, err := suite.service.BuyAsset(suite.ctx, suite.player, domain.AssetClassStock, req)

	suite.ErrorIs(err, apperrors.ErrFrozen)
	suite.teamRepo.AssertNotCalled(suite.T(), "UpdateTeam", mock.Anything, mock.Anything)
}

func (suite *GameServiceTestSuite) TestSellAsset_LoanNotAllowed() {
	req := dto.AssetTradeRequest{TeamID: "team-1", Name: "ACME", Quantity: dec(1), Price: dec(100), LoanAmount: dec(10)}
	_, err := suite.service.SellAsset(suite.ctx, suite.player, domain.AssetClassStock, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.teamRepo.AssertNotCalled(suite.T(), "FindTeamByID", mock.Anything, mock.Anything)
}

// --- Cards ---

func (suite *GameServiceTestSuite) TestDrawChance_AppliesPickedCard() {
	team := testTeam()
	deck := []domain.Card{
		{CardID: "c1", Kind: domain.CardChance, Name: "Lottery", Amount: dec(10000)},
		{CardID: "c2", Kind: domain.CardChance, Name: "Inheritance", Amount: dec(50000)},
	}
	suite.dice.next = []int{1}
	suite.cardRepo.On("ListCardsByKind", mock.Anything, domain.CardChance).Return(deck, nil).Once()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(nil).Once()
	suite.expectResultAssembly(team)

	result, err := suite.service.DrawChance(suite.ctx, suite.player, "team-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Card)
	suite.Equal("c2", result.Card.CardID)
	suite.True(result.Team.Cash.Equal(dec(550000)))
	suite.Len(result.Team.Chances, 1)
}

func (suite *GameServiceTestSuite) TestDrawChance_EmptyDeck() {
	suite.cardRepo.On("ListCardsByKind", mock.Anything, domain.CardChance).Return(nil, nil).Once()

	_, err := suite.service.DrawChance(suite.ctx, suite.player, "team-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GameServiceTestSuite) TestApplyPenalty_UsesOverride() {
	team := testTeam()
	card := &domain.Card{CardID: "p1", Kind: domain.CardPenalty, Name: "Speeding", Amount: dec(20000)}
	suite.cardRepo.On("FindCardByID", mock.Anything, domain.CardPenalty, "p1").Return(card, nil).Once()
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(nil).Once()
	suite.expectResultAssembly(team)

	req := dto.PenaltyRequest{TeamID: "team-1", PenaltyID: "p1", Amount: decimal.NewNullDecimal(dec(5000))}
	result, err := suite.service.ApplyPenalty(suite.ctx, suite.player, req)

	suite.Require().NoError(err)
	suite.True(result.Team.Cash.Equal(dec(495000)))
	suite.Equal("p1", result.Card.CardID)
}

// --- Status ---

func (suite *GameServiceTestSuite) TestToggleVacation_RequiresFlag() {
	_, err := suite.service.ToggleVacation(suite.ctx, suite.player, dto.VacationRequest{TeamID: "team-1"})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *GameServiceTestSuite) TestAdjustCash_TablePrincipal() {
	team := testTeam()
	table := domain.Actor{ID: "table-1", Role: domain.RoleTable, TableID: "table-1"}
	suite.teamRepo.On("FindTeamByID", mock.Anything, "team-1").Return(team, nil).Once()
	suite.teamRepo.On("UpdateTeam", mock.Anything, mock.Anything).Return(nil).Once()
	suite.expectResultAssembly(team)

	req := dto.CashUpdateRequest{TeamID: "team-1", Value: dec(10), Unit: "percent", Operation: "add"}
	result, err := suite.service.AdjustCash(suite.ctx, table, req)

	suite.Require().NoError(err)
	suite.True(result.Team.Cash.Equal(dec(550000)), result.Team.Cash.String())
	suite.Equal("table-1", result.Team.LastUpdatedBy)
}

// --- Reads ---

func (suite *GameServiceTestSuite) TestGetTableState_DefaultsToOwnTable() {
	team := testTeam()
	suite.teamRepo.On("FindTeamsByTable", mock.Anything, "table-1").Return([]domain.Team{*team}, nil).Once()
	suite.audit.On("Tail", mock.Anything, "table-1", 10).Return([]domain.TableLog{}, nil).Once()

	state, err := suite.service.GetTableState(suite.ctx, suite.player, "")

	suite.Require().NoError(err)
	suite.Equal("table-1", state.TableID)
	suite.Len(state.Teams, 1)
}

func (suite *GameServiceTestSuite) TestGetTableState_OtherTableForbidden() {
	_, err := suite.service.GetTableState(suite.ctx, suite.player, "table-2")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GameServiceTestSuite) TestListDeals_NeverNil() {
	suite.dealRepo.On("ListDealsByType", mock.Anything, domain.DealClassBig).Return(nil, nil).Once()

	deals, err := suite.service.ListDeals(suite.ctx, domain.DealClassBig)

	suite.Require().NoError(err)
	suite.NotNil(deals)
	suite.Empty(deals)
}

func TestGameService(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}
