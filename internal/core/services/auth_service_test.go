package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const authSecret = "auth-test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	tableRepo *MockTableRepository
	teamRepo  *MockTeamRepository
	market    *MockMarketService
	service   portssvc.AuthSvcFacade
	ctx       context.Context
	adminHash string
}

func (suite *AuthServiceTestSuite) SetupSuite() {
	hash, err := utils.HashPassword("admin-pass")
	suite.Require().NoError(err)
	suite.adminHash = hash
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.tableRepo = new(MockTableRepository)
	suite.teamRepo = new(MockTeamRepository)
	suite.market = new(MockMarketService)
	suite.ctx = context.Background()
	suite.service = services.NewAuthService(suite.tableRepo, suite.teamRepo, suite.market, ledger.NewEngine(ledger.DefaultRules()), services.TokenSettings{
		Secret:            authSecret,
		Issuer:            "test",
		Expiry:            time.Hour,
		AdminUsername:     "gm",
		AdminPasswordHash: suite.adminHash,
	})
}

func (suite *AuthServiceTestSuite) claims(token string) *utils.SessionClaims {
	claims, err := utils.ParseAndValidateJWT(token, authSecret)
	suite.Require().NoError(err)
	return claims
}

func (suite *AuthServiceTestSuite) TestRegisterTable_DefaultTeams() {
	suite.market.On("GetMarketMode", mock.Anything).Return(domain.MarketBull, nil).Once()
	suite.teamRepo.On("FindTeamByNameAndCode", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.tableRepo.On("SaveTableWithTeams", mock.Anything,
		mock.MatchedBy(func(t domain.Table) bool {
			return t.Username == "table-one" && t.PasswordHash != "" && t.PasswordHash != "secret1"
		}),
		mock.MatchedBy(func(teams []domain.Team) bool {
			if len(teams) != 3 {
				return false
			}
			for _, t := range teams {
				if !t.PaydayMultiplier.Equal(decimal.RequireFromString("1.25")) || len(t.Code) != 4 || t.Version != 1 {
					return false
				}
			}
			return true
		}),
	).Return(nil).Once()

	resp, err := suite.service.RegisterTable(suite.ctx, dto.RegisterTableRequest{Username: " table-one ", Password: "secret1"})

	suite.Require().NoError(err)
	suite.Equal(string(domain.RoleTable), resp.Role)
	suite.Require().Len(resp.Teams, 3)
	suite.Equal("Team 1", resp.Teams[0].TeamName)
	claims := suite.claims(resp.Token)
	suite.Equal(resp.TableID, claims.Subject)
	suite.Equal(resp.TableID, claims.TableID)
	suite.tableRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegisterTable_DuplicateTeamNames() {
	_, err := suite.service.RegisterTable(suite.ctx, dto.RegisterTableRequest{
		Username:  "table-one",
		Password:  "secret1",
		TeamNames: []string{"Alpha", "alpha"},
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.tableRepo.AssertNotCalled(suite.T(), "SaveTableWithTeams", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegisterTable_UsernameTaken() {
	suite.market.On("GetMarketMode", mock.Anything).Return(domain.MarketNormal, nil).Once()
	suite.teamRepo.On("FindTeamByNameAndCode", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.tableRepo.On("SaveTableWithTeams", mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.RegisterTable(suite.ctx, dto.RegisterTableRequest{Username: "taken", Password: "secret1", TeamNames: []string{"A"}})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestLoginTable() {
	hash, err := utils.HashPassword("secret1")
	suite.Require().NoError(err)
	table := &domain.Table{TableID: "table-1", Username: "table-one", PasswordHash: hash}
	suite.tableRepo.On("FindTableByUsername", mock.Anything, "table-one").Return(table, nil).Twice()

	resp, err := suite.service.LoginTable(suite.ctx, dto.TableLoginRequest{Username: "table-one", Password: "secret1"})
	suite.Require().NoError(err)
	suite.Equal("table-1", suite.claims(resp.Token).TableID)

	_, err = suite.service.LoginTable(suite.ctx, dto.TableLoginRequest{Username: "table-one", Password: "wrong"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLoginTable_UnknownUser() {
	suite.tableRepo.On("FindTableByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.LoginTable(suite.ctx, dto.TableLoginRequest{Username: "ghost", Password: "x"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLoginTeam() {
	team := &domain.Team{TeamID: "team-1", TableID: "table-1", TeamName: "Alpha"}
	suite.teamRepo.On("FindTeamByNameAndCode", mock.Anything, "Alpha", "1234").Return(team, nil).Once()
	suite.teamRepo.On("FindTeamByNameAndCode", mock.Anything, "Alpha", "0000").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.LoginTeam(suite.ctx, dto.TeamLoginRequest{TeamName: "Alpha", Code: "1234"})
	suite.Require().NoError(err)
	suite.Equal("team-1", resp.TeamID)
	claims := suite.claims(resp.Token)
	suite.Equal("team-1", claims.Subject)
	suite.Equal(string(domain.RoleTeam), claims.Role)
	suite.Equal("table-1", claims.TableID)

	_, err = suite.service.LoginTeam(suite.ctx, dto.TeamLoginRequest{TeamName: "Alpha", Code: "0000"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLoginAdmin() {
	resp, err := suite.service.LoginAdmin(suite.ctx, dto.AdminLoginRequest{Username: "gm", Password: "admin-pass"})
	suite.Require().NoError(err)
	suite.Equal(string(domain.RoleAdmin), suite.claims(resp.Token).Role)

	_, err = suite.service.LoginAdmin(suite.ctx, dto.AdminLoginRequest{Username: "gm", Password: "nope"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
