package services_test

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock TeamRepository ---
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	var team *domain.Team
	if args.Get(0) != nil {
		// hand out a copy so the service never shares state with the fixture
		team = args.Get(0).(*domain.Team).Clone()
	}
	return team, args.Error(1)
}

func (m *MockTeamRepository) FindTeamsByTable(ctx context.Context, tableID string) ([]domain.Team, error) {
	args := m.Called(ctx, tableID)
	var teams []domain.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]domain.Team)
	}
	return teams, args.Error(1)
}

func (m *MockTeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	var teams []domain.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]domain.Team)
	}
	return teams, args.Error(1)
}

func (m *MockTeamRepository) FindTeamByNameAndCode(ctx context.Context, teamName, code string) (*domain.Team, error) {
	args := m.Called(ctx, teamName, code)
	var team *domain.Team
	if args.Get(0) != nil {
		team = args.Get(0).(*domain.Team)
	}
	return team, args.Error(1)
}

func (m *MockTeamRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

// UpdateTeam advances the version on success like the real stores do.
func (m *MockTeamRepository) UpdateTeam(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	if args.Error(0) == nil {
		team.Version++
	}
	return args.Error(0)
}

// --- Mock DealRepository ---
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	var deal *domain.Deal
	if args.Get(0) != nil {
		deal = args.Get(0).(*domain.Deal)
	}
	return deal, args.Error(1)
}

func (m *MockDealRepository) ListDealsByType(ctx context.Context, class domain.DealClass) ([]domain.Deal, error) {
	args := m.Called(ctx, class)
	var deals []domain.Deal
	if args.Get(0) != nil {
		deals = args.Get(0).([]domain.Deal)
	}
	return deals, args.Error(1)
}

func (m *MockDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) AddOwner(ctx context.Context, dealID string, owner domain.DealOwner) error {
	args := m.Called(ctx, dealID, owner)
	return args.Error(0)
}

func (m *MockDealRepository) RemoveOwner(ctx context.Context, dealID string, owner domain.DealOwner) error {
	args := m.Called(ctx, dealID, owner)
	return args.Error(0)
}

// --- Mock CardRepository ---
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) FindCardByID(ctx context.Context, kind domain.CardKind, cardID string) (*domain.Card, error) {
	args := m.Called(ctx, kind, cardID)
	var card *domain.Card
	if args.Get(0) != nil {
		card = args.Get(0).(*domain.Card)
	}
	return card, args.Error(1)
}

func (m *MockCardRepository) ListCardsByKind(ctx context.Context, kind domain.CardKind) ([]domain.Card, error) {
	args := m.Called(ctx, kind)
	var cards []domain.Card
	if args.Get(0) != nil {
		cards = args.Get(0).([]domain.Card)
	}
	return cards, args.Error(1)
}

func (m *MockCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

// --- Mock TableLogRepository ---
type MockTableLogRepository struct {
	mock.Mock
}

func (m *MockTableLogRepository) AppendLog(ctx context.Context, log domain.TableLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockTableLogRepository) ListLogsByTable(ctx context.Context, tableID string, before *domain.LogCursor, limit int) ([]domain.TableLog, error) {
	args := m.Called(ctx, tableID, before, limit)
	var logs []domain.TableLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.TableLog)
	}
	return logs, args.Error(1)
}

// --- Mock GameConfigRepository ---
type MockGameConfigRepository struct {
	mock.Mock
}

func (m *MockGameConfigRepository) GetGameConfig(ctx context.Context) (*domain.GameConfig, error) {
	args := m.Called(ctx)
	var cfg *domain.GameConfig
	if args.Get(0) != nil {
		cfg = args.Get(0).(*domain.GameConfig)
	}
	return cfg, args.Error(1)
}

func (m *MockGameConfigRepository) SaveGameConfig(ctx context.Context, cfg domain.GameConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// --- Mock TableRepository ---
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) FindTableByID(ctx context.Context, tableID string) (*domain.Table, error) {
	args := m.Called(ctx, tableID)
	var table *domain.Table
	if args.Get(0) != nil {
		table = args.Get(0).(*domain.Table)
	}
	return table, args.Error(1)
}

func (m *MockTableRepository) FindTableByUsername(ctx context.Context, username string) (*domain.Table, error) {
	args := m.Called(ctx, username)
	var table *domain.Table
	if args.Get(0) != nil {
		table = args.Get(0).(*domain.Table)
	}
	return table, args.Error(1)
}

func (m *MockTableRepository) SaveTableWithTeams(ctx context.Context, table domain.Table, teams []domain.Team) error {
	args := m.Called(ctx, table, teams)
	return args.Error(0)
}

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Append(ctx context.Context, tableID string, messages ...string) {
	m.Called(ctx, tableID, messages)
}

func (m *MockAuditService) Tail(ctx context.Context, tableID string, limit int) ([]domain.TableLog, error) {
	args := m.Called(ctx, tableID, limit)
	var logs []domain.TableLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.TableLog)
	}
	return logs, args.Error(1)
}

func (m *MockAuditService) Page(ctx context.Context, actor domain.Actor, tableID, cursor string, limit int) (*domain.LogPage, error) {
	args := m.Called(ctx, actor, tableID, cursor, limit)
	var page *domain.LogPage
	if args.Get(0) != nil {
		page = args.Get(0).(*domain.LogPage)
	}
	return page, args.Error(1)
}

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
	var cfg *domain.GameConfig
	if args.Get(0) != nil {
		cfg = args.Get(0).(*domain.GameConfig)
	}
	return cfg, args.Error(1)
}

// fixedSource replays preset dice values.
type fixedSource struct{ next []int }

func (f *fixedSource) IntN(n int) int {
	v := f.next[0]
	f.next = f.next[1:]
	return v % n
}
