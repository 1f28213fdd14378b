package repositories

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// DealReader defines read operations for the deal catalog
type DealReader interface {
	FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error)
	ListDealsByType(ctx context.Context, class domain.DealClass) ([]domain.Deal, error)
}

// DealWriter defines write operations for the deal catalog and its per-table owners
type DealWriter interface {
	SaveDeal(ctx context.Context, deal domain.Deal) error

	// AddOwner claims the deal for owner.TableID. It fails with apperrors.ErrConflict
	// when that table already owns the deal.
	AddOwner(ctx context.Context, dealID string, owner domain.DealOwner) error

	// RemoveOwner releases a claim made by AddOwner.
	RemoveOwner(ctx context.Context, dealID string, owner domain.DealOwner) error
}

// DealRepositoryFacade combines all deal-related repository interfaces
type DealRepositoryFacade interface {
	DealReader
	DealWriter
}
