package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeTeam checks that the actor may act on the team.
func (s *BaseService) AuthorizeTeam(ctx context.Context, actor domain.Actor, team *domain.Team) error {
	if actor.CanActOn(team) {
		return nil
	}
	s.LogDebug(ctx, "Actor may not act on team",
		slog.String("actor_id", actor.ID),
		slog.String("role", string(actor.Role)),
		slog.String("team_id", team.TeamID))
	return fmt.Errorf("%w: team %s is not yours to play", apperrors.ErrForbidden, team.TeamID)
}

// AuthorizeTable checks that the actor may read the table.
func (s *BaseService) AuthorizeTable(ctx context.Context, actor domain.Actor, tableID string) error {
	if actor.CanViewTable(tableID) {
		return nil
	}
	s.LogDebug(ctx, "Actor may not view table",
		slog.String("actor_id", actor.ID),
		slog.String("table_id", tableID))
	return fmt.Errorf("%w: table %s", apperrors.ErrForbidden, tableID)
}
