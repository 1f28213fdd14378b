package repositories

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// TeamReader defines read operations for team data
type TeamReader interface {
	// FindTeamByID retrieves a team by its unique identifier.
	FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// FindTeamsByTable retrieves every team seated at a table, ordered by name.
	FindTeamsByTable(ctx context.Context, tableID string) ([]domain.Team, error)

	// ListTeams retrieves all teams across all tables.
	ListTeams(ctx context.Context) ([]domain.Team, error)

	// FindTeamByNameAndCode resolves a team login.
	FindTeamByNameAndCode(ctx context.Context, teamName, code string) (*domain.Team, error)
}

// TeamWriter defines write operations for team data
type TeamWriter interface {
	// SaveTeam persists a new team at version 1.
	SaveTeam(ctx context.Context, team domain.Team) error

	// UpdateTeam stores the team only if the stored version still equals team.Version,
	// then advances team.Version. A lost race returns apperrors.ErrStaleVersion.
	UpdateTeam(ctx context.Context, team *domain.Team) error
}

// TeamRepositoryFacade combines all team-related repository interfaces
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
}
