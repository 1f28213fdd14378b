package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
)

type marketService struct {
	BaseService
	configRepo portsrepo.GameConfigRepositoryFacade
	teamRepo   portsrepo.TeamRepositoryFacade
	audit      portssvc.AuditSvcFacade
	engine     *ledger.Engine
	now        func() time.Time
}

// NewMarketService creates the market mode service.
func NewMarketService(
	configRepo portsrepo.GameConfigRepositoryFacade,
	teamRepo portsrepo.TeamRepositoryFacade,
	audit portssvc.AuditSvcFacade,
	engine *ledger.Engine,
) portssvc.MarketSvcFacade {
	return &marketService{
		configRepo: configRepo,
		teamRepo:   teamRepo,
		audit:      audit,
		engine:     engine,
		now:        time.Now,
	}
}

var _ portssvc.MarketSvcFacade = (*marketService)(nil)

func (s *marketService) GetMarketMode(ctx context.Context) (domain.MarketMode, error) {
	cfg, err := s.configRepo.GetGameConfig(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.MarketNormal, nil
		}
		s.LogError(ctx, err, "Failed to read game config")
		return "", err
	}
	return cfg.MarketMode, nil
}

// SetMarketMode persists the mode first so teams created afterwards pick it up,
// then rewrites every existing team one at a time.
func (s *marketService) SetMarketMode(ctx context.Context, actor domain.Actor, rawMode string) (*domain.GameConfig, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only the admin can change the market", apperrors.ErrForbidden)
	}
	mode, err := domain.ParseMarketMode(rawMode)
	if err != nil {
		return nil, err
	}

	cfg := domain.GameConfig{
		ConfigID:   domain.GlobalConfigID,
		MarketMode: mode,
		UpdatedAt:  s.now().UTC(),
		UpdatedBy:  actor.ID,
	}
	if err := s.configRepo.SaveGameConfig(ctx, cfg); err != nil {
		s.LogError(ctx, err, "Failed to save game config", slog.String("mode", string(mode)))
		return nil, err
	}

	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list teams for market update")
		return nil, err
	}

	eff := s.engine.Rules().Effect(mode)
	tables := make([]string, 0)
	seen := make(map[string]struct{})
	for i := range teams {
		if err := s.applyToTeam(ctx, actor, &teams[i], mode); err != nil {
			return nil, err
		}
		if _, ok := seen[teams[i].TableID]; !ok {
			seen[teams[i].TableID] = struct{}{}
			tables = append(tables, teams[i].TableID)
		}
	}

	msg := fmt.Sprintf("Market mode changed to %s. Payday multiplier %s, loan interest %s.",
		mode, eff.PaydayMultiplier.String(), eff.LoanInterestRate.String())
	for _, tableID := range tables {
		s.audit.Append(ctx, tableID, msg)
	}

	s.LogInfo(ctx, "Market mode changed",
		slog.String("mode", string(mode)),
		slog.Int("teams", len(teams)),
		slog.Int("tables", len(tables)))
	return &cfg, nil
}

func (s *marketService) applyToTeam(ctx context.Context, actor domain.Actor, team *domain.Team, mode domain.MarketMode) error {
	current := team
	for attempt := 1; ; attempt++ {
		working := current.Clone()
		s.engine.ApplyMarketMode(working, mode)
		working.Touch(actor.ID, s.now())

		err := s.teamRepo.UpdateTeam(ctx, working)
		if err == nil {
			*team = *working
			return nil
		}
		if !errors.Is(err, apperrors.ErrStaleVersion) || attempt >= MaxSaveAttempts {
			s.LogError(ctx, err, "Failed to apply market mode", slog.String("team_id", team.TeamID))
			if errors.Is(err, apperrors.ErrStaleVersion) {
				return fmt.Errorf("%w: team %s was changed concurrently, try again", apperrors.ErrConflict, team.TeamID)
			}
			return err
		}
		current, err = s.teamRepo.FindTeamByID(ctx, team.TeamID)
		if err != nil {
			s.LogError(ctx, err, "Failed to reload team for market update", slog.String("team_id", team.TeamID))
			return err
		}
	}
}
