package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/shopspring/decimal"
)

// AssetOrder buys or sells a stock or crypto lot.
// LoanAmount is only read on purchases.
type AssetOrder struct {
	Class      domain.AssetClass
	Name       string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	LoanAmount decimal.Decimal
}

func (o AssetOrder) validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("%w: asset name is required", apperrors.ErrValidation)
	}
	if err := requirePositive("quantity", o.Quantity); err != nil {
		return err
	}
	return requirePositive("price", o.Price)
}

// BuyAsset appends a new lot. A requested loan carries flat interest at the
// team's market rate and lands on the asset-class loan without any EMI.
func (e *Engine) BuyAsset(t *domain.Team, order AssetOrder, trail *Trail) error {
	if t.IsAssetsFrozen {
		return fmt.Errorf("%w: cannot buy %s", apperrors.ErrFrozen, order.Class)
	}
	if err := order.validate(); err != nil {
		return err
	}
	if order.LoanAmount.IsNegative() {
		return fmt.Errorf("%w: loan amount must not be negative", apperrors.ErrValidation)
	}
	cost := order.Price.Mul(order.Quantity)
	if order.LoanAmount.GreaterThan(cost) {
		return fmt.Errorf("%w: loan amount exceeds the purchase cost of %s", apperrors.ErrValidation, utils.FormatMoney(cost))
	}

	if order.LoanAmount.IsPositive() {
		rate := t.LoanInterestRate
		if !rate.IsPositive() {
			rate = e.rules.DefaultLoanRate
		}
		total := order.LoanAmount.Add(order.LoanAmount.Mul(rate))
		loan := domain.LoanForAsset(order.Class).Balance(t)
		*loan = loan.Add(total)
		t.Cash = clampZero(t.Cash.Sub(cost.Sub(order.LoanAmount)))
		trail.Addf("Team %s bought %s units of %s %s for %s. Loan: %s (%s interest).",
			t.TeamName, order.Quantity, order.Name, order.Class, utils.FormatMoney(cost), utils.FormatMoney(total), utils.FormatRate(rate))
	} else {
		if t.Cash.LessThan(cost) {
			return fmt.Errorf("%w: not enough cash to buy this %s", apperrors.ErrInsufficientFunds, order.Class)
		}
		t.Cash = t.Cash.Sub(cost)
		trail.Addf("Team %s bought %s units of %s %s for %s.",
			t.TeamName, order.Quantity, order.Name, order.Class, utils.FormatMoney(cost))
	}

	lots := t.Lots(order.Class)
	*lots = append(*lots, domain.Lot{Name: order.Name, Quantity: order.Quantity, PurchasePrice: order.Price})
	t.Assets = t.Assets.Add(cost)
	return nil
}

// SellAsset sells from the first lot matching the name. Assets drop by the
// lot's purchase price, not the sale price.
func (e *Engine) SellAsset(t *domain.Team, order AssetOrder, trail *Trail) (decimal.Decimal, error) {
	if t.IsAssetsFrozen {
		return decimal.Zero, fmt.Errorf("%w: cannot sell %s", apperrors.ErrFrozen, order.Class)
	}
	if err := order.validate(); err != nil {
		return decimal.Zero, err
	}
	lots := t.Lots(order.Class)
	i := slices.IndexFunc(*lots, func(l domain.Lot) bool { return l.Name == order.Name })
	if i < 0 {
		return decimal.Zero, fmt.Errorf("%w: no %s lot named %q", apperrors.ErrNotFound, order.Class, order.Name)
	}
	lot := (*lots)[i]
	if order.Quantity.GreaterThan(lot.Quantity) {
		return decimal.Zero, fmt.Errorf("%w: only %s units of %s held in this lot", apperrors.ErrValidation, lot.Quantity, order.Name)
	}

	proceeds := order.Price.Mul(order.Quantity)
	if order.Quantity.Equal(lot.Quantity) {
		*lots = slices.Delete(*lots, i, i+1)
	} else {
		(*lots)[i].Quantity = lot.Quantity.Sub(order.Quantity)
	}
	t.Cash = t.Cash.Add(proceeds)
	t.Assets = clampZero(t.Assets.Sub(lot.PurchasePrice.Mul(order.Quantity)))

	trail.Addf("Team %s sold %s units of %s %s for %s.",
		t.TeamName, order.Quantity, order.Name, order.Class, utils.FormatMoney(proceeds))
	return proceeds, nil
}
