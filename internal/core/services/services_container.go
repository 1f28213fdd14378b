package services

import (
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/turn"
	"github.com/Garvkhullar/cashflow4.0-official/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, engine *ledger.Engine, seq *turn.Sequencer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first, every other service writes through it
	container.Audit = NewAuditService(repos.TableLogRepo)

	container.Market = NewMarketService(repos.GameConfigRepo, repos.TeamRepo, container.Audit, engine)

	container.Game = NewGameService(
		repos.TeamRepo,
		repos.DealRepo,
		repos.CardRepo,
		container.Audit,
		engine,
		seq,
		WithLogTail(cfg.LogTailLimit),
	)

	container.Auth = NewAuthService(repos.TableRepo, repos.TeamRepo, container.Market, engine, TokenSettings{
		Secret:            cfg.JWTSecret,
		Issuer:            cfg.JWTIssuer,
		Expiry:            cfg.JWTExpiryDuration,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	container.Maintenance = NewMaintenanceService(repos.TeamRepo, container.Audit, engine)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.GameSvcFacade        = (*gameService)(nil)
	_ portssvc.AuditSvcFacade       = (*auditService)(nil)
	_ portssvc.MarketSvcFacade      = (*marketService)(nil)
	_ portssvc.AuthSvcFacade        = (*authService)(nil)
	_ portssvc.MaintenanceSvcFacade = (*maintenanceService)(nil)
)
