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
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/shopspring/decimal"
)

type maintenanceService struct {
	BaseService
	teamRepo portsrepo.TeamRepositoryFacade
	audit    portssvc.AuditSvcFacade
	engine   *ledger.Engine
	now      func() time.Time
}

// NewMaintenanceService creates the operator maintenance service.
func NewMaintenanceService(teamRepo portsrepo.TeamRepositoryFacade, audit portssvc.AuditSvcFacade, engine *ledger.Engine) portssvc.MaintenanceSvcFacade {
	return &maintenanceService{
		teamRepo: teamRepo,
		audit:    audit,
		engine:   engine,
		now:      time.Now,
	}
}

func (s *maintenanceService) RecomputeExpenses(ctx context.Context, actor domain.Actor, dryRun bool) ([]domain.ExpenseCorrection, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: maintenance is admin only", apperrors.ErrForbidden)
	}
	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list teams for expense recompute")
		return nil, err
	}

	corrections := []domain.ExpenseCorrection{}
	for i := range teams {
		team := &teams[i]
		want := s.engine.ExpensesFor(team)
		if want.Equal(team.Expenses) {
			continue
		}
		fix := domain.ExpenseCorrection{
			TeamID:   team.TeamID,
			TableID:  team.TableID,
			TeamName: team.TeamName,
			From:     team.Expenses,
			To:       want,
		}
		if !dryRun {
			if fix.To, err = s.saveRecomputed(ctx, actor, team); err != nil {
				return corrections, err
			}
			s.audit.Append(ctx, team.TableID, fmt.Sprintf("Expenses of team %s corrected from %s to %s.",
				team.TeamName, utils.FormatMoney(fix.From), utils.FormatMoney(fix.To)))
		}
		corrections = append(corrections, fix)
	}

	s.LogInfo(ctx, "Expense recompute finished",
		slog.Int("teams", len(teams)),
		slog.Int("corrected", len(corrections)),
		slog.Bool("dry_run", dryRun))
	return corrections, nil
}

// saveRecomputed writes the derived expenses, reloading on a lost race.
func (s *maintenanceService) saveRecomputed(ctx context.Context, actor domain.Actor, team *domain.Team) (expenses decimal.Decimal, err error) {
	current := team
	for attempt := 1; ; attempt++ {
		working := current.Clone()
		s.engine.RecomputeExpenses(working)
		working.Touch(actor.ID, s.now())

		err = s.teamRepo.UpdateTeam(ctx, working)
		if err == nil {
			return working.Expenses, nil
		}
		if !errors.Is(err, apperrors.ErrStaleVersion) || attempt >= MaxSaveAttempts {
			s.LogError(ctx, err, "Failed to save recomputed expenses", slog.String("team_id", team.TeamID))
			if errors.Is(err, apperrors.ErrStaleVersion) {
				return expenses, fmt.Errorf("%w: team %s was changed concurrently, try again", apperrors.ErrConflict, team.TeamID)
			}
			return expenses, err
		}
		if current, err = s.teamRepo.FindTeamByID(ctx, team.TeamID); err != nil {
			return expenses, err
		}
	}
}
