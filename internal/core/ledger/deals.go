package ledger

import (
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/shopspring/decimal"
)

// DealOrder is a request to buy a catalog deal, financing the rest of the cost.
type DealOrder struct {
	Class        domain.DealClass
	BuyAmount    decimal.Decimal
	Installments int
}

// DealTerms describes the loan a deal purchase creates.
type DealTerms struct {
	Principal    decimal.Decimal
	Rate         decimal.Decimal
	TotalLoan    decimal.Decimal
	EMI          decimal.Decimal
	Installments int
}

// QuoteDeal validates an order against the team and deal and prices its loan without mutating anything.
func (e *Engine) QuoteDeal(t *domain.Team, deal *domain.Deal, order DealOrder) (DealTerms, error) {
	if t.IsAssetsFrozen {
		return DealTerms{}, fmt.Errorf("%w: cannot buy deals", apperrors.ErrFrozen)
	}
	if deal.DealType != order.Class {
		return DealTerms{}, fmt.Errorf("%w: deal %s is a %s deal", apperrors.ErrValidation, deal.DealID, deal.DealType)
	}
	if owner, ok := deal.OwnerOnTable(t.TableID); ok {
		return DealTerms{}, fmt.Errorf("%w: deal already owned by team %s on this table", apperrors.ErrConflict, owner.TeamID)
	}
	if t.HasEMIFor(deal.DealID) || t.HoldsDeal(deal.DealID) {
		return DealTerms{}, fmt.Errorf("%w: deal %s already registered for this team", apperrors.ErrConflict, deal.DealID)
	}
	if !order.BuyAmount.IsPositive() || order.BuyAmount.GreaterThan(deal.Cost) {
		return DealTerms{}, fmt.Errorf("%w: buy amount must be within (0, %s]", apperrors.ErrValidation, utils.FormatMoney(deal.Cost))
	}
	if deal.DownPayment.Valid && order.BuyAmount.LessThan(deal.DownPayment.Decimal) {
		return DealTerms{}, fmt.Errorf("%w: buy amount must be at least the down payment of %s", apperrors.ErrValidation, utils.FormatMoney(deal.DownPayment.Decimal))
	}
	if t.Cash.LessThan(order.BuyAmount) {
		return DealTerms{}, fmt.Errorf("%w: not enough cash to buy this deal", apperrors.ErrInsufficientFunds)
	}
	rate, ok := e.rules.PlanRate(order.Installments)
	if !ok {
		return DealTerms{}, fmt.Errorf("%w: unsupported installment plan %d, expected one of %v", apperrors.ErrValidation, order.Installments, e.rules.Plans())
	}

	principal := deal.Cost.Sub(order.BuyAmount)
	total := principal.Mul(decimal.NewFromInt(1).Add(rate))
	return DealTerms{
		Principal:    principal,
		Rate:         rate,
		TotalLoan:    total,
		EMI:          total.Div(decimal.NewFromInt(int64(order.Installments))).Round(2),
		Installments: order.Installments,
	}, nil
}

// BuyDeal purchases deal for t. The ownership entry is appended to deal as well;
// the caller must persist it atomically with the store.
func (e *Engine) BuyDeal(t *domain.Team, deal *domain.Deal, order DealOrder, trail *Trail) (DealTerms, error) {
	terms, err := e.QuoteDeal(t, deal, order)
	if err != nil {
		return DealTerms{}, err
	}

	deal.Owners = append(deal.Owners, domain.DealOwner{TableID: t.TableID, TeamID: t.TeamID})
	t.Cash = t.Cash.Sub(order.BuyAmount)
	t.PassiveIncome = t.PassiveIncome.Add(deal.PassiveIncome)
	t.Assets = t.Assets.Add(order.BuyAmount)
	t.Deals = append(t.Deals, deal.DealID)

	loan := domain.LoanForDeal(order.Class).Balance(t)
	*loan = loan.Add(terms.TotalLoan)
	// a fully paid deal has nothing to amortize
	if terms.TotalLoan.IsPositive() {
		emis := t.Emis(order.Class)
		*emis = append(*emis, domain.EMISchedule{
			DealID:           deal.DealID,
			TotalLoan:        terms.TotalLoan,
			EMI:              terms.EMI,
			InstallmentsLeft: terms.Installments,
			InterestRate:     terms.Rate,
		})
	}
	e.RecomputeExpenses(t)

	trail.Addf("Team %s purchased %q for %s. Loan: %s (%d installments, %s interest). EMI: %s.",
		t.TeamName, deal.Name, utils.FormatMoney(order.BuyAmount), utils.FormatMoney(terms.TotalLoan),
		terms.Installments, utils.FormatRate(terms.Rate), utils.FormatMoneyFixed(terms.EMI))
	return terms, nil
}
