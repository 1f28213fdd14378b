package pgsql

import (
	"context"
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTeamRepository struct {
	BaseRepository
}

// newPgxTeamRepository creates a new repository for team data.
func newPgxTeamRepository(pool *pgxpool.Pool) portsrepo.TeamRepositoryFacade {
	return &PgxTeamRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTeamRepository implements portsrepo.TeamRepositoryFacade
var _ portsrepo.TeamRepositoryFacade = (*PgxTeamRepository)(nil)

const teamSelectQuery = `
SELECT
	t.team_id, t.table_id, t.table_name, t.team_name, t.code,
	t.cash, t.income, t.passive_income, t.assets, t.expenses,
	t.small_deal_loan, t.big_deal_loan, t.personal_loan, t.stocks_loan, t.crypto_loan,
	t.small_deal_emis, t.big_deal_emis, t.deals, t.stocks, t.crypto,
	t.is_assets_frozen, t.payday_frozen_turn, t.is_vacation_on, t.vacation_paydays_left, t.next_payday_tax,
	t.payday_multiplier, t.loan_interest_rate,
	t.future_counter, t.options_counter, t.payday_counter,
	t.penalties, t.chances,
	t.version, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM teams t
`

// getTeams runs the shared select with the given filter.
func (r *PgxTeamRepository) getTeams(ctx context.Context, filterQuery string, args ...any) ([]domain.Team, error) {
	rows, err := r.Pool.Query(ctx, teamSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query teams", err)
	}
	defer rows.Close()

	modelTeams, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Team])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect team rows", err)
	}
	return mapping.ToDomainTeamSlice(modelTeams), nil
}

func (r *PgxTeamRepository) getTeam(ctx context.Context, filterQuery string, args ...any) (*domain.Team, error) {
	teams, err := r.getTeams(ctx, filterQuery, args...)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &teams[0], nil
}

func (r *PgxTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	return r.getTeam(ctx, `WHERE t.team_id = $1`, teamID)
}

func (r *PgxTeamRepository) FindTeamsByTable(ctx context.Context, tableID string) ([]domain.Team, error) {
	return r.getTeams(ctx, `WHERE t.table_id = $1 ORDER BY t.team_name`, tableID)
}

func (r *PgxTeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return r.getTeams(ctx, `ORDER BY t.table_id, t.team_name`)
}

func (r *PgxTeamRepository) FindTeamByNameAndCode(ctx context.Context, teamName, code string) (*domain.Team, error) {
	return r.getTeam(ctx, `WHERE t.team_name = $1 AND t.code = $2 ORDER BY t.created_at LIMIT 1`, teamName, code)
}

func teamArgs(m models.Team) pgx.NamedArgs {
	return pgx.NamedArgs{
		"team_id":               m.TeamID,
		"table_id":              m.TableID,
		"table_name":            m.TableName,
		"team_name":             m.TeamName,
		"code":                  m.Code,
		"cash":                  m.Cash,
		"income":                m.Income,
		"passive_income":        m.PassiveIncome,
		"assets":                m.Assets,
		"expenses":              m.Expenses,
		"small_deal_loan":       m.SmallDealLoan,
		"big_deal_loan":         m.BigDealLoan,
		"personal_loan":         m.PersonalLoan,
		"stocks_loan":           m.StocksLoan,
		"crypto_loan":           m.CryptoLoan,
		"small_deal_emis":       m.SmallDealEmis,
		"big_deal_emis":         m.BigDealEmis,
		"deals":                 m.Deals,
		"stocks":                m.Stocks,
		"crypto":                m.Crypto,
		"is_assets_frozen":      m.IsAssetsFrozen,
		"payday_frozen_turn":    m.PaydayFrozenTurn,
		"is_vacation_on":        m.IsVacationOn,
		"vacation_paydays_left": m.VacationPaydaysLeft,
		"next_payday_tax":       m.NextPaydayTax,
		"payday_multiplier":     m.PaydayMultiplier,
		"loan_interest_rate":    m.LoanInterestRate,
		"future_counter":        m.FutureCounter,
		"options_counter":       m.OptionsCounter,
		"payday_counter":        m.PaydayCounter,
		"penalties":             m.Penalties,
		"chances":               m.Chances,
		"version":               m.Version,
		"created_at":            m.CreatedAt,
		"created_by":            m.CreatedBy,
		"last_updated_at":       m.LastUpdatedAt,
		"last_updated_by":       m.LastUpdatedBy,
	}
}

const insertTeamQuery = `
INSERT INTO teams (
	team_id, table_id, table_name, team_name, code,
	cash, income, passive_income, assets, expenses,
	small_deal_loan, big_deal_loan, personal_loan, stocks_loan, crypto_loan,
	small_deal_emis, big_deal_emis, deals, stocks, crypto,
	is_assets_frozen, payday_frozen_turn, is_vacation_on, vacation_paydays_left, next_payday_tax,
	payday_multiplier, loan_interest_rate,
	future_counter, options_counter, payday_counter,
	penalties, chances,
	version, created_at, created_by, last_updated_at, last_updated_by
) VALUES (
	@team_id, @table_id, @table_name, @team_name, @code,
	@cash, @income, @passive_income, @assets, @expenses,
	@small_deal_loan, @big_deal_loan, @personal_loan, @stocks_loan, @crypto_loan,
	@small_deal_emis, @big_deal_emis, @deals, @stocks, @crypto,
	@is_assets_frozen, @payday_frozen_turn, @is_vacation_on, @vacation_paydays_left, @next_payday_tax,
	@payday_multiplier, @loan_interest_rate,
	@future_counter, @options_counter, @payday_counter,
	@penalties, @chances,
	@version, @created_at, @created_by, @last_updated_at, @last_updated_by
)`

func insertTeam(ctx context.Context, db execer, team domain.Team) error {
	modelTeam := mapping.ToModelTeam(team)
	if modelTeam.Version < 1 {
		modelTeam.Version = 1
	}
	_, err := db.Exec(ctx, insertTeamQuery, teamArgs(modelTeam))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: team %q already exists on this table", apperrors.ErrDuplicate, team.TeamName)
		}
		return apperrors.NewAppError(500, "failed to save team "+team.TeamID, err)
	}
	return nil
}

func (r *PgxTeamRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	return insertTeam(ctx, r.Pool, team)
}

const updateTeamQuery = `
UPDATE teams SET
	table_name = @table_name, team_name = @team_name, code = @code,
	cash = @cash, income = @income, passive_income = @passive_income, assets = @assets, expenses = @expenses,
	small_deal_loan = @small_deal_loan, big_deal_loan = @big_deal_loan, personal_loan = @personal_loan,
	stocks_loan = @stocks_loan, crypto_loan = @crypto_loan,
	small_deal_emis = @small_deal_emis, big_deal_emis = @big_deal_emis, deals = @deals, stocks = @stocks, crypto = @crypto,
	is_assets_frozen = @is_assets_frozen, payday_frozen_turn = @payday_frozen_turn,
	is_vacation_on = @is_vacation_on, vacation_paydays_left = @vacation_paydays_left, next_payday_tax = @next_payday_tax,
	payday_multiplier = @payday_multiplier, loan_interest_rate = @loan_interest_rate,
	future_counter = @future_counter, options_counter = @options_counter, payday_counter = @payday_counter,
	penalties = @penalties, chances = @chances,
	last_updated_at = @last_updated_at, last_updated_by = @last_updated_by,
	version = version + 1
WHERE team_id = @team_id AND version = @version`

// UpdateTeam writes the team only when the stored version matches, then advances team.Version.
func (r *PgxTeamRepository) UpdateTeam(ctx context.Context, team *domain.Team) error {
	cmdTag, err := r.Pool.Exec(ctx, updateTeamQuery, teamArgs(mapping.ToModelTeam(*team)))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update team "+team.TeamID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the team is gone or someone else saved first.
		var exists bool
		err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE team_id = $1)`, team.TeamID).Scan(&exists)
		if err != nil {
			return apperrors.NewAppError(500, "failed to check team "+team.TeamID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: team %s is no longer at version %d", apperrors.ErrStaleVersion, team.TeamID, team.Version)
	}

	team.Version++
	return nil
}
