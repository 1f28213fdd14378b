// Package ledger holds the game's financial state transitions.
//
// Every operation works on a *domain.Team owned by the caller, validates all of
// its inputs before touching the team, and records what happened on a Trail.
package ledger

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MarketEffect is what a market mode writes onto every team.
type MarketEffect struct {
	PaydayMultiplier decimal.Decimal
	LoanInterestRate decimal.Decimal
}

// Rules are the game-balance parameters. They come from configuration.
type Rules struct {
	BaseExpense      decimal.Decimal
	TaxRate          decimal.Decimal
	PersonalLoanRate decimal.Decimal
	// InstallmentPlans maps an installment count to its flat interest rate.
	InstallmentPlans map[int]decimal.Decimal
	VacationPaydays  int
	CounterPaydays   int
	DefaultLoanRate  decimal.Decimal
	MarketEffects    map[domain.MarketMode]MarketEffect
	StartingCash     decimal.Decimal
	StartingIncome   decimal.Decimal
}

// DefaultRules returns the current game balance.
func DefaultRules() Rules {
	return Rules{
		BaseExpense:      decimal.NewFromInt(300000),
		TaxRate:          decimal.RequireFromString("0.40"),
		PersonalLoanRate: decimal.RequireFromString("0.18"),
		InstallmentPlans: map[int]decimal.Decimal{
			4: decimal.RequireFromString("0.08"),
			6: decimal.RequireFromString("0.14"),
			7: decimal.RequireFromString("0.28"),
		},
		VacationPaydays: 2,
		CounterPaydays:  3,
		DefaultLoanRate: decimal.RequireFromString("0.10"),
		MarketEffects: map[domain.MarketMode]MarketEffect{
			domain.MarketBull:   {PaydayMultiplier: decimal.RequireFromString("1.25"), LoanInterestRate: decimal.RequireFromString("0.07")},
			domain.MarketBear:   {PaydayMultiplier: decimal.RequireFromString("0.75"), LoanInterestRate: decimal.RequireFromString("0.18")},
			domain.MarketNormal: {PaydayMultiplier: decimal.NewFromInt(1), LoanInterestRate: decimal.RequireFromString("0.10")},
		},
		StartingCash:   decimal.NewFromInt(500000),
		StartingIncome: decimal.NewFromInt(500000),
	}
}

// Validate rejects balance settings the engine cannot run with.
func (r Rules) Validate() error {
	if r.BaseExpense.IsNegative() {
		return fmt.Errorf("%w: base expense must not be negative", apperrors.ErrValidation)
	}
	if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: tax rate must be within [0,1]", apperrors.ErrValidation)
	}
	if r.PersonalLoanRate.IsNegative() || r.DefaultLoanRate.IsNegative() {
		return fmt.Errorf("%w: loan rates must not be negative", apperrors.ErrValidation)
	}
	if len(r.InstallmentPlans) == 0 {
		return fmt.Errorf("%w: at least one installment plan is required", apperrors.ErrValidation)
	}
	for n, rate := range r.InstallmentPlans {
		if n <= 0 || rate.IsNegative() {
			return fmt.Errorf("%w: bad installment plan %d at %s", apperrors.ErrValidation, n, rate)
		}
	}
	for _, mode := range []domain.MarketMode{domain.MarketBull, domain.MarketBear, domain.MarketNormal} {
		eff, ok := r.MarketEffects[mode]
		if !ok {
			return fmt.Errorf("%w: missing market effect for %s", apperrors.ErrValidation, mode)
		}
		if !eff.PaydayMultiplier.IsPositive() || eff.LoanInterestRate.IsNegative() {
			return fmt.Errorf("%w: bad market effect for %s", apperrors.ErrValidation, mode)
		}
	}
	if r.VacationPaydays < 0 || r.CounterPaydays < 0 {
		return fmt.Errorf("%w: payday counts must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// PlanRate looks up the interest rate for an installment count.
func (r Rules) PlanRate(installments int) (decimal.Decimal, bool) {
	rate, ok := r.InstallmentPlans[installments]
	return rate, ok
}

// Plans returns the supported installment counts in ascending order.
func (r Rules) Plans() []int {
	return slices.Sorted(maps.Keys(r.InstallmentPlans))
}

// Effect returns the effect for mode, falling back to normal.
func (r Rules) Effect(mode domain.MarketMode) MarketEffect {
	if eff, ok := r.MarketEffects[mode]; ok {
		return eff
	}
	return r.MarketEffects[domain.MarketNormal]
}
