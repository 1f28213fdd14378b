package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/google/uuid"
)

const (
	loginCodeDigits  = 4
	defaultTeamCount = 3
	// maxCodeAttempts bounds the search for a name+code pair nobody else logs in with.
	maxCodeAttempts = 10
)

// TokenSettings carries the JWT and admin credentials the auth service needs.
type TokenSettings struct {
	Secret            string
	Issuer            string
	Expiry            time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

type authService struct {
	BaseService
	tableRepo portsrepo.TableRepositoryFacade
	teamRepo  portsrepo.TeamRepositoryFacade
	market    portssvc.MarketSvcFacade
	engine    *ledger.Engine
	tokens    TokenSettings
	now       func() time.Time
}

// NewAuthService creates the login and registration service.
func NewAuthService(
	tableRepo portsrepo.TableRepositoryFacade,
	teamRepo portsrepo.TeamRepositoryFacade,
	market portssvc.MarketSvcFacade,
	engine *ledger.Engine,
	tokens TokenSettings,
) portssvc.AuthSvcFacade {
	return &authService{
		tableRepo: tableRepo,
		teamRepo:  teamRepo,
		market:    market,
		engine:    engine,
		tokens:    tokens,
		now:       time.Now,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) RegisterTable(ctx context.Context, req dto.RegisterTableRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	names, err := teamNames(req.TeamNames)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash table password")
		return nil, fmt.Errorf("%w: hash password: %v", apperrors.ErrInternal, err)
	}

	mode, err := s.market.GetMarketMode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tableID := uuid.NewString()
	table := domain.Table{TableID: tableID, Username: username, PasswordHash: hash}
	table.Touch(tableID, now)

	teams := make([]domain.Team, 0, len(names))
	creds := make([]dto.TeamCredential, 0, len(names))
	for _, name := range names {
		code, err := s.freeCode(ctx, name)
		if err != nil {
			return nil, err
		}
		team := s.engine.NewTeam(uuid.NewString(), tableID, username, name, code, mode)
		team.Version = 1
		team.Touch(tableID, now)
		teams = append(teams, *team)
		creds = append(creds, dto.TeamCredential{TeamID: team.TeamID, TeamName: name, Code: code})
	}

	if err := s.tableRepo.SaveTableWithTeams(ctx, table, teams); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to register table", slog.String("username", username))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Table registered",
		slog.String("table_id", tableID),
		slog.Int("teams", len(teams)),
		slog.String("market_mode", string(mode)))

	resp, err := s.issue(ctx, tableID, domain.RoleTable, tableID)
	if err != nil {
		return nil, err
	}
	resp.Teams = creds
	return resp, nil
}

func (s *authService) LoginTable(ctx context.Context, req dto.TableLoginRequest) (*dto.LoginResponse, error) {
	table, err := s.tableRepo.FindTableByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up table", slog.String("username", req.Username))
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, table.PasswordHash) {
		s.LogDebug(ctx, "Table login rejected", slog.String("table_id", table.TableID))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return s.issue(ctx, table.TableID, domain.RoleTable, table.TableID)
}

func (s *authService) LoginTeam(ctx context.Context, req dto.TeamLoginRequest) (*dto.LoginResponse, error) {
	team, err := s.teamRepo.FindTeamByNameAndCode(ctx, strings.TrimSpace(req.TeamName), req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid team name or code", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up team", slog.String("team_name", req.TeamName))
		return nil, err
	}
	resp, err := s.issue(ctx, team.TeamID, domain.RoleTeam, team.TableID)
	if err != nil {
		return nil, err
	}
	resp.TeamID = team.TeamID
	return resp, nil
}

func (s *authService) LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	if s.tokens.AdminPasswordHash == "" {
		return nil, fmt.Errorf("%w: admin login is disabled", apperrors.ErrUnauthorized)
	}
	if req.Username != s.tokens.AdminUsername || !utils.CheckPasswordHash(req.Password, s.tokens.AdminPasswordHash) {
		s.LogDebug(ctx, "Admin login rejected", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return s.issue(ctx, req.Username, domain.RoleAdmin, "")
}

func (s *authService) issue(ctx context.Context, subject string, role domain.Role, tableID string) (*dto.LoginResponse, error) {
	token, expiresAt, err := utils.GenerateJWT(subject, string(role), tableID, s.tokens.Secret, s.tokens.Expiry, s.tokens.Issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("subject", subject))
		return nil, fmt.Errorf("%w: generate token: %v", apperrors.ErrInternal, err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      string(role),
		TableID:   tableID,
	}, nil
}

// freeCode draws login codes until the name+code pair is unused.
func (s *authService) freeCode(ctx context.Context, teamName string) (string, error) {
	for range maxCodeAttempts {
		code, err := utils.GenerateLoginCode(loginCodeDigits)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate login code")
			return "", fmt.Errorf("%w: generate login code: %v", apperrors.ErrInternal, err)
		}
		_, err = s.teamRepo.FindTeamByNameAndCode(ctx, teamName, code)
		if errors.Is(err, apperrors.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: no free login code for team %q", apperrors.ErrConflict, teamName)
}

func teamNames(raw []string) ([]string, error) {
	if len(raw) == 0 {
		names := make([]string, defaultTeamCount)
		for i := range names {
			names[i] = fmt.Sprintf("Team %d", i+1)
		}
		return names, nil
	}
	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, n := range raw {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("%w: team names must not be blank", apperrors.ErrValidation)
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate team name %q", apperrors.ErrValidation, n)
		}
		seen[key] = struct{}{}
		names = append(names, n)
	}
	return names, nil
}
