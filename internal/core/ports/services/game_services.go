package services

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
)

// GameReaderSvc defines the read side of the game
type GameReaderSvc interface {
	// GetTableState returns every team on the table and the newest log entries.
	GetTableState(ctx context.Context, actor domain.Actor, tableID string) (*domain.TableState, error)

	// ListDeals returns the small or big deal catalog.
	ListDeals(ctx context.Context, class domain.DealClass) ([]domain.Deal, error)

	// ListCards returns the chance or penalty catalog.
	ListCards(ctx context.Context, kind domain.CardKind) ([]domain.Card, error)
}

// TurnSvc defines the dice and payday operations
type TurnSvc interface {
	Payday(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error)
	Roll(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error)
}

// TradeSvc defines purchases and sales of deals and market assets
type TradeSvc interface {
	BuyDeal(ctx context.Context, actor domain.Actor, class domain.DealClass, req dto.BuyDealRequest) (*domain.ActionResult, error)
	BuyAsset(ctx context.Context, actor domain.Actor, class domain.AssetClass, req dto.AssetTradeRequest) (*domain.ActionResult, error)
	SellAsset(ctx context.Context, actor domain.Actor, class domain.AssetClass, req dto.AssetTradeRequest) (*domain.ActionResult, error)
}

// LoanSvc defines borrowing and repayment
type LoanSvc interface {
	Borrow(ctx context.Context, actor domain.Actor, req dto.BorrowRequest) (*domain.ActionResult, error)
	Repay(ctx context.Context, actor domain.Actor, req dto.RepayRequest) (*domain.ActionResult, error)
}

// CardSvc defines chance and penalty card handling
type CardSvc interface {
	ApplyPenalty(ctx context.Context, actor domain.Actor, req dto.PenaltyRequest) (*domain.ActionResult, error)
	ApplyChance(ctx context.Context, actor domain.Actor, req dto.ChanceRequest) (*domain.ActionResult, error)
	// DrawChance applies a random chance card from the catalog.
	DrawChance(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error)
}

// TeamStatusSvc defines the status toggles and manual corrections
type TeamStatusSvc interface {
	Freeze(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error)
	SetTax(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error)
	ToggleVacation(ctx context.Context, actor domain.Actor, req dto.VacationRequest) (*domain.ActionResult, error)
	ToggleCounter(ctx context.Context, actor domain.Actor, teamID string, counter ledger.Counter) (*domain.ActionResult, error)
	AdjustCash(ctx context.Context, actor domain.Actor, req dto.CashUpdateRequest) (*domain.ActionResult, error)
}

// GameSvcFacade combines all game-related service interfaces
type GameSvcFacade interface {
	GameReaderSvc
	TurnSvc
	TradeSvc
	LoanSvc
	CardSvc
	TeamStatusSvc
}
