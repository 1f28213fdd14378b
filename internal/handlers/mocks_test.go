package handlers_test

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock GameService ---
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) result(args mock.Arguments) (*domain.ActionResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActionResult), args.Error(1)
}

func (m *MockGameService) GetTableState(ctx context.Context, actor domain.Actor, tableID string) (*domain.TableState, error) {
	args := m.Called(ctx, actor, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableState), args.Error(1)
}

func (m *MockGameService) ListDeals(ctx context.Context, class domain.DealClass) ([]domain.Deal, error) {
	args := m.Called(ctx, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockGameService) ListCards(ctx context.Context, kind domain.CardKind) ([]domain.Card, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockGameService) Payday(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, teamID))
}

func (m *MockGameService) Roll(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, teamID))
}

func (m *MockGameService) BuyDeal(ctx context.Context, actor domain.Actor, class domain.DealClass, req dto.BuyDealRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, class, req))
}

func (m *MockGameService) BuyAsset(ctx context.Context, actor domain.Actor, class domain.AssetClass, req dto.AssetTradeRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, class, req))
}

func (m *MockGameService) SellAsset(ctx context.Context, actor domain.Actor, class domain.AssetClass, req dto.AssetTradeRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, class, req))
}

func (m *MockGameService) Borrow(ctx context.Context, actor domain.Actor, req dto.BorrowRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, req))
}

func (m *MockGameService) Repay(ctx context.Context, actor domain.Actor, req dto.RepayRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, req))
}

func (m *MockGameService) ApplyPenalty(ctx context.Context, actor domain.Actor, req dto.PenaltyRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, req))
}

func (m *MockGameService) ApplyChance(ctx context.Context, actor domain.Actor, req dto.ChanceRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, req))
}

func (m *MockGameService) DrawChance(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, teamID))
}

func (m *MockGameService) Freeze(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, teamID))
}

func (m *MockGameService) SetTax(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, teamID))
}

func (m *MockGameService) ToggleVacation(ctx context.Context, actor domain.Actor, req dto.VacationRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, req))
}

func (m *MockGameService) ToggleCounter(ctx context.Context, actor domain.Actor, teamID string, counter ledger.Counter) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, teamID, counter))
}

func (m *MockGameService) AdjustCash(ctx context.Context, actor domain.Actor, req dto.CashUpdateRequest) (*domain.ActionResult, error) {
	return m.result(m.Called(ctx, actor, req))
}

var _ portssvc.GameSvcFacade = (*MockGameService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Append(ctx context.Context, tableID string, messages ...string) {
	m.Called(ctx, tableID, messages)
}

func (m *MockAuditService) Tail(ctx context.Context, tableID string, limit int) ([]domain.TableLog, error) {
	args := m.Called(ctx, tableID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TableLog), args.Error(1)
}

func (m *MockAuditService) Page(ctx context.Context, actor domain.Actor, tableID, cursor string, limit int) (*domain.LogPage, error) {
	args := m.Called(ctx, actor, tableID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LogPage), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Mock MarketService ---
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) GetMarketMode(ctx context.Context) (domain.MarketMode, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.MarketMode), args.Error(1)
}

func (m *MockMarketService) SetMarketMode(ctx context.Context, actor domain.Actor, rawMode string) (*domain.GameConfig, error) {
	args := m.Called(ctx, actor, rawMode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameConfig), args.Error(1)
}

var _ portssvc.MarketSvcFacade = (*MockMarketService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) login(args mock.Arguments) (*dto.LoginResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) RegisterTable(ctx context.Context, req dto.RegisterTableRequest) (*dto.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

func (m *MockAuthService) LoginTable(ctx context.Context, req dto.TableLoginRequest) (*dto.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

func (m *MockAuthService) LoginTeam(ctx context.Context, req dto.TeamLoginRequest) (*dto.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

func (m *MockAuthService) LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)
