package dto

import (
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Game action DTOs ---

// TeamActionRequest targets a single team with no further input (payday, roll, freeze, tax).
type TeamActionRequest struct {
	TeamID string `json:"teamId" binding:"required"`
}

// BuyDealRequest buys a deal from the small or big catalog; the class comes from the path.
type BuyDealRequest struct {
	TeamID       string          `json:"teamId" binding:"required"`
	DealID       string          `json:"dealId" binding:"required"`
	BuyAmount    decimal.Decimal `json:"buyAmount" binding:"dec_gt0"`
	Installments int             `json:"installments" binding:"required,gt=0"`
}

// AssetTradeRequest buys or sells a stock or crypto lot; the class comes from the path.
type AssetTradeRequest struct {
	TeamID     string          `json:"teamId" binding:"required"`
	Name       string          `json:"name" binding:"required,max=100"`
	Quantity   decimal.Decimal `json:"quantity" binding:"dec_gt0"`
	Price      decimal.Decimal `json:"price" binding:"dec_gt0"`
	LoanAmount decimal.Decimal `json:"loanAmount" binding:"dec_gte0"`
}

// BorrowRequest takes a personal loan.
type BorrowRequest struct {
	TeamID string          `json:"teamId" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"dec_gt0"`
}

// RepayRequest pays down one of the team's loans.
type RepayRequest struct {
	TeamID   string          `json:"teamId" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"dec_gt0"`
	LoanType string          `json:"loanType" binding:"required,oneof=smallDealLoan bigDealLoan personalLoan stocksLoan cryptoLoan"`
}

// PenaltyRequest charges a penalty card, optionally overriding its amount.
type PenaltyRequest struct {
	TeamID    string              `json:"teamId" binding:"required"`
	PenaltyID string              `json:"penaltyId" binding:"required"`
	Amount    decimal.NullDecimal `json:"amount" binding:"omitempty,dec_gt0"`
}

// ChanceRequest applies a specific chance card.
type ChanceRequest struct {
	TeamID   string `json:"teamId" binding:"required"`
	ChanceID string `json:"chanceId" binding:"required"`
}

// VacationRequest starts or cancels a vacation.
type VacationRequest struct {
	TeamID       string `json:"teamId" binding:"required"`
	IsVacationOn *bool  `json:"isVacationOn" binding:"required"`
}

// CashUpdateRequest is a manual cash correction.
type CashUpdateRequest struct {
	TeamID    string          `json:"teamId" binding:"required"`
	Value     decimal.Decimal `json:"value" binding:"dec_gt0"`
	Unit      string          `json:"unit" binding:"required,oneof=number percent"`
	Operation string          `json:"operation" binding:"required,oneof=add deduct"`
}

// MarketModeRequest switches the global market mode.
type MarketModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=bull bear normal bull-stop bear-stop"`
}

// MarketModeResponse reports the current market mode.
type MarketModeResponse struct {
	Mode domain.MarketMode `json:"mode"`
}

// ActionResponse is returned by every game action.
type ActionResponse struct {
	Team  *domain.Team      `json:"team"`
	Teams []domain.Team     `json:"teams"`
	Logs  []domain.TableLog `json:"logs"`
	Event domain.RollEvent  `json:"event,omitempty"`
	Roll  int               `json:"roll,omitempty"`
	Card  *domain.Card      `json:"card,omitempty"`
}

// ToActionResponse converts a domain.ActionResult to its DTO.
func ToActionResponse(r *domain.ActionResult) ActionResponse {
	return ActionResponse{
		Team:  r.Team,
		Teams: r.Teams,
		Logs:  r.Logs,
		Event: r.Event,
		Roll:  r.Roll,
		Card:  r.Card,
	}
}

// ListDealsResponse wraps a catalog listing.
type ListDealsResponse struct {
	Deals []domain.Deal `json:"deals"`
}

// ListCardsResponse wraps a chance or penalty listing.
type ListCardsResponse struct {
	Cards []domain.Card `json:"cards"`
}
