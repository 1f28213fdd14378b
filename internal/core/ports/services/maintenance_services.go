package services

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// MaintenanceSvcFacade holds operator jobs run from the CLI.
type MaintenanceSvcFacade interface {
	// RecomputeExpenses re-derives expenses for every team and saves the ones that drifted.
	// With dryRun set nothing is written.
	RecomputeExpenses(ctx context.Context, actor domain.Actor, dryRun bool) ([]domain.ExpenseCorrection, error)
}
