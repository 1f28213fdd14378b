package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/turn"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
)

// MaxSaveAttempts bounds how often an action is replayed after losing a version race.
const MaxSaveAttempts = 3

// mutation is one engine step applied to a private copy of a team.
type mutation func(t *domain.Team, trail *ledger.Trail) error

type gameService struct {
	BaseService
	teamRepo portsrepo.TeamRepositoryFacade
	dealRepo portsrepo.DealRepositoryFacade
	cardRepo portsrepo.CardRepositoryFacade
	audit    portssvc.AuditSvcFacade
	engine   *ledger.Engine
	seq      *turn.Sequencer
	logTail  int
	now      func() time.Time
}

// GameServiceOption is a function that configures a gameService
type GameServiceOption func(*gameService)

// WithLogTail sets how many log entries accompany every action result.
func WithLogTail(n int) GameServiceOption {
	return func(s *gameService) {
		if n > 0 {
			s.logTail = n
		}
	}
}

// WithGameClock replaces the clock used for audit fields.
func WithGameClock(now func() time.Time) GameServiceOption {
	return func(s *gameService) {
		s.now = now
	}
}

// NewGameService creates the game orchestration service.
func NewGameService(
	teamRepo portsrepo.TeamRepositoryFacade,
	dealRepo portsrepo.DealRepositoryFacade,
	cardRepo portsrepo.CardRepositoryFacade,
	audit portssvc.AuditSvcFacade,
	engine *ledger.Engine,
	seq *turn.Sequencer,
	opts ...GameServiceOption,
) portssvc.GameSvcFacade {
	s := &gameService{
		teamRepo: teamRepo,
		dealRepo: dealRepo,
		cardRepo: cardRepo,
		audit:    audit,
		engine:   engine,
		seq:      seq,
		logTail:  50,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.GameSvcFacade = (*gameService)(nil)

func validationError(err error) error {
	if errors.Is(err, apperrors.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}

func (s *gameService) loadTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load team", slog.String("team_id", teamID))
		}
		return nil, err
	}
	return team, nil
}

// mutate loads the team, applies fn to a clone and saves it with a version check.
// On a lost race the whole step is replayed against fresh state.
func (s *gameService) mutate(ctx context.Context, actor domain.Actor, teamID, action string, fn mutation) (*domain.Team, *ledger.Trail, error) {
	for attempt := 1; ; attempt++ {
		current, err := s.loadTeam(ctx, teamID)
		if err != nil {
			return nil, nil, err
		}
		if err := s.AuthorizeTeam(ctx, actor, current); err != nil {
			return nil, nil, err
		}

		working := current.Clone()
		trail := &ledger.Trail{}
		if err := fn(working, trail); err != nil {
			s.LogDebug(ctx, "Game action rejected",
				slog.String("action", action),
				slog.String("team_id", teamID),
				slog.String("reason", err.Error()))
			return nil, nil, err
		}
		working.Touch(actor.ID, s.now())

		err = s.teamRepo.UpdateTeam(ctx, working)
		if err == nil {
			s.LogInfo(ctx, "Game action applied",
				slog.String("action", action),
				slog.String("team_id", teamID),
				slog.Int64("version", working.Version))
			return working, trail, nil
		}
		if !errors.Is(err, apperrors.ErrStaleVersion) {
			s.LogError(ctx, err, "Failed to save team",
				slog.String("action", action),
				slog.String("team_id", teamID))
			return nil, nil, err
		}
		if attempt >= MaxSaveAttempts {
			s.LogError(ctx, err, "Giving up after concurrent updates",
				slog.String("action", action),
				slog.String("team_id", teamID),
				slog.Int("attempts", attempt))
			return nil, nil, fmt.Errorf("%w: team %s was changed concurrently, try again", apperrors.ErrConflict, teamID)
		}
		s.LogDebug(ctx, "Retrying after version conflict",
			slog.String("action", action),
			slog.String("team_id", teamID),
			slog.Int("attempt", attempt))
	}
}

// finish writes the audit lines and assembles the caller's view of the table.
func (s *gameService) finish(ctx context.Context, team *domain.Team, trail *ledger.Trail) *domain.ActionResult {
	s.audit.Append(ctx, team.TableID, trail.Lines()...)
	result := &domain.ActionResult{Team: team, Teams: []domain.Team{*team}, Logs: []domain.TableLog{}}

	teams, err := s.teamRepo.FindTeamsByTable(ctx, team.TableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load table teams for response", slog.String("table_id", team.TableID))
	} else {
		for i := range teams {
			if teams[i].TeamID == team.TeamID {
				teams[i] = *team
			}
		}
		result.Teams = teams
	}

	if logs, err := s.audit.Tail(ctx, team.TableID, s.logTail); err == nil {
		result.Logs = logs
	}
	return result
}

func (s *gameService) run(ctx context.Context, actor domain.Actor, teamID, action string, fn mutation) (*domain.ActionResult, error) {
	team, trail, err := s.mutate(ctx, actor, teamID, action, fn)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, team, trail), nil
}

// --- Reads ---

func (s *gameService) GetTableState(ctx context.Context, actor domain.Actor, tableID string) (*domain.TableState, error) {
	if tableID == "" {
		tableID = actor.TableID
	}
	if tableID == "" {
		return nil, fmt.Errorf("%w: tableId is required", apperrors.ErrValidation)
	}
	if err := s.AuthorizeTable(ctx, actor, tableID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.FindTeamsByTable(ctx, tableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load table teams", slog.String("table_id", tableID))
		return nil, err
	}
	logs, err := s.audit.Tail(ctx, tableID, s.logTail)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	return &domain.TableState{TableID: tableID, Teams: teams, Logs: logs}, nil
}

func (s *gameService) ListDeals(ctx context.Context, class domain.DealClass) ([]domain.Deal, error) {
	deals, err := s.dealRepo.ListDealsByType(ctx, class)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deals", slog.String("deal_type", string(class)))
		return nil, err
	}
	if deals == nil {
		deals = []domain.Deal{}
	}
	return deals, nil
}

func (s *gameService) ListCards(ctx context.Context, kind domain.CardKind) ([]domain.Card, error) {
	cards, err := s.cardRepo.ListCardsByKind(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cards", slog.String("kind", string(kind)))
		return nil, err
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	return cards, nil
}

// --- Turns ---

func (s *gameService) Payday(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return s.run(ctx, actor, teamID, "payday", func(t *domain.Team, trail *ledger.Trail) error {
		s.seq.Payday(t, trail)
		return nil
	})
}

// Roll reports where the team lands. It changes no team state.
func (s *gameService) Roll(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	team, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeTeam(ctx, actor, team); err != nil {
		return nil, err
	}
	trail := &ledger.Trail{}
	roll := s.seq.Roll(team, trail)
	s.LogInfo(ctx, "Dice rolled",
		slog.String("team_id", teamID),
		slog.Int("value", roll.Value),
		slog.String("event", string(roll.Event)))

	result := s.finish(ctx, team, trail)
	result.Roll = roll.Value
	result.Event = roll.Event
	return result, nil
}

// --- Trades ---

func (s *gameService) BuyDeal(ctx context.Context, actor domain.Actor, class domain.DealClass, req dto.BuyDealRequest) (*domain.ActionResult, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, req.DealID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load deal", slog.String("deal_id", req.DealID))
		}
		return nil, err
	}
	order := ledger.DealOrder{Class: class, BuyAmount: req.BuyAmount, Installments: req.Installments}

	var claim *domain.DealOwner
	team, trail, err := s.mutate(ctx, actor, req.TeamID, "buy_deal", func(t *domain.Team, trail *ledger.Trail) error {
		snapshot := *deal
		snapshot.Owners = slices.Clone(deal.Owners)
		if _, err := s.engine.BuyDeal(t, &snapshot, order, trail); err != nil {
			return err
		}
		if claim != nil {
			return nil
		}
		owner := domain.DealOwner{TableID: t.TableID, TeamID: t.TeamID}
		if err := s.dealRepo.AddOwner(ctx, deal.DealID, owner); err != nil {
			return err
		}
		claim = &owner
		return nil
	})
	if err != nil {
		if claim != nil {
			s.releaseClaim(ctx, deal.DealID, *claim)
		}
		return nil, err
	}
	return s.finish(ctx, team, trail), nil
}

func (s *gameService) releaseClaim(ctx context.Context, dealID string, owner domain.DealOwner) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()
	if err := s.dealRepo.RemoveOwner(releaseCtx, dealID, owner); err != nil {
		s.LogError(ctx, err, "Failed to release deal claim",
			slog.String("deal_id", dealID),
			slog.String("table_id", owner.TableID),
			slog.String("team_id", owner.TeamID))
	}
}

func (s *gameService) BuyAsset(ctx context.Context, actor domain.Actor, class domain.AssetClass, req dto.AssetTradeRequest) (*domain.ActionResult, error) {
	order := ledger.AssetOrder{Class: class, Name: req.Name, Quantity: req.Quantity, Price: req.Price, LoanAmount: req.LoanAmount}
	return s.run(ctx, actor, req.TeamID, "buy_"+string(class), func(t *domain.Team, trail *ledger.Trail) error {
		return s.engine.BuyAsset(t, order, trail)
	})
}

func (s *gameService) SellAsset(ctx context.Context, actor domain.Actor, class domain.AssetClass, req dto.AssetTradeRequest) (*domain.ActionResult, error) {
	if req.LoanAmount.IsPositive() {
		return nil, fmt.Errorf("%w: loanAmount is not allowed when selling", apperrors.ErrValidation)
	}
	order := ledger.AssetOrder{Class: class, Name: req.Name, Quantity: req.Quantity, Price: req.Price}
	return s.run(ctx, actor, req.TeamID, "sell_"+string(class), func(t *domain.Team, trail *ledger.Trail) error {
		_, err := s.engine.SellAsset(t, order, trail)
		return err
	})
}

// --- Loans ---

func (s *gameService) Borrow(ctx context.Context, actor domain.Actor, req dto.BorrowRequest) (*domain.ActionResult, error) {
	return s.run(ctx, actor, req.TeamID, "borrow", func(t *domain.Team, trail *ledger.Trail) error {
		return s.engine.Borrow(t, req.Amount, trail)
	})
}

func (s *gameService) Repay(ctx context.Context, actor domain.Actor, req dto.RepayRequest) (*domain.ActionResult, error) {
	kind, err := domain.ParseLoanKind(req.LoanType)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, actor, req.TeamID, "repay", func(t *domain.Team, trail *ledger.Trail) error {
		return s.engine.Repay(t, req.Amount, kind, trail)
	})
}

// --- Cards ---

func (s *gameService) loadCard(ctx context.Context, kind domain.CardKind, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, kind, cardID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load card", slog.String("card_id", cardID), slog.String("kind", string(kind)))
		}
		return nil, err
	}
	return card, nil
}

func (s *gameService) ApplyPenalty(ctx context.Context, actor domain.Actor, req dto.PenaltyRequest) (*domain.ActionResult, error) {
	card, err := s.loadCard(ctx, domain.CardPenalty, req.PenaltyID)
	if err != nil {
		return nil, err
	}
	result, err := s.run(ctx, actor, req.TeamID, "penalty", func(t *domain.Team, trail *ledger.Trail) error {
		_, err := s.engine.ApplyPenalty(t, card, req.Amount, trail)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Card = card
	return result, nil
}

func (s *gameService) ApplyChance(ctx context.Context, actor domain.Actor, req dto.ChanceRequest) (*domain.ActionResult, error) {
	card, err := s.loadCard(ctx, domain.CardChance, req.ChanceID)
	if err != nil {
		return nil, err
	}
	return s.applyChanceCard(ctx, actor, req.TeamID, card)
}

func (s *gameService) DrawChance(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	deck, err := s.ListCards(ctx, domain.CardChance)
	if err != nil {
		return nil, err
	}
	i, err := s.seq.Pick(len(deck))
	if err != nil {
		return nil, err
	}
	return s.applyChanceCard(ctx, actor, teamID, &deck[i])
}

func (s *gameService) applyChanceCard(ctx context.Context, actor domain.Actor, teamID string, card *domain.Card) (*domain.ActionResult, error) {
	result, err := s.run(ctx, actor, teamID, "chance", func(t *domain.Team, trail *ledger.Trail) error {
		_, err := s.engine.ApplyChance(t, card, trail)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Card = card
	return result, nil
}

// --- Status toggles ---

func (s *gameService) Freeze(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return s.run(ctx, actor, teamID, "freeze", func(t *domain.Team, trail *ledger.Trail) error {
		s.engine.Freeze(t, trail)
		return nil
	})
}

func (s *gameService) SetTax(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
	return s.run(ctx, actor, teamID, "set_tax", func(t *domain.Team, trail *ledger.Trail) error {
		s.engine.SetTax(t, trail)
		return nil
	})
}

func (s *gameService) ToggleVacation(ctx context.Context, actor domain.Actor, req dto.VacationRequest) (*domain.ActionResult, error) {
	if req.IsVacationOn == nil {
		return nil, fmt.Errorf("%w: isVacationOn is required", apperrors.ErrValidation)
	}
	on := *req.IsVacationOn
	return s.run(ctx, actor, req.TeamID, "vacation", func(t *domain.Team, trail *ledger.Trail) error {
		s.engine.ToggleVacation(t, on, trail)
		return nil
	})
}

func (s *gameService) ToggleCounter(ctx context.Context, actor domain.Actor, teamID string, counter ledger.Counter) (*domain.ActionResult, error) {
	return s.run(ctx, actor, teamID, "counter_"+string(counter), func(t *domain.Team, trail *ledger.Trail) error {
		s.engine.ToggleCounter(t, counter, trail)
		return nil
	})
}

func (s *gameService) AdjustCash(ctx context.Context, actor domain.Actor, req dto.CashUpdateRequest) (*domain.ActionResult, error) {
	adj := ledger.CashAdjustment{Value: req.Value, Unit: ledger.CashUnit(req.Unit), Op: ledger.CashOp(req.Operation)}
	return s.run(ctx, actor, req.TeamID, "adjust_cash", func(t *domain.Team, trail *ledger.Trail) error {
		_, err := s.engine.AdjustCash(t, adj, trail)
		return err
	})
}
