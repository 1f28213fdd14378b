package services

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
)

// AuthSvcFacade issues session tokens for tables, teams and the admin.
type AuthSvcFacade interface {
	// RegisterTable creates a table login plus its teams and returns the team codes once.
	RegisterTable(ctx context.Context, req dto.RegisterTableRequest) (*dto.LoginResponse, error)
	LoginTable(ctx context.Context, req dto.TableLoginRequest) (*dto.LoginResponse, error)
	LoginTeam(ctx context.Context, req dto.TeamLoginRequest) (*dto.LoginResponse, error)
	LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.LoginResponse, error)
}
