package ledger

import (
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/shopspring/decimal"
)

// ApplyPenalty charges a penalty card. override replaces the card's amount when valid.
// A shortfall becomes personal loan.
func (e *Engine) ApplyPenalty(t *domain.Team, card *domain.Card, override decimal.NullDecimal, trail *Trail) (decimal.Decimal, error) {
	if card.Kind != domain.CardPenalty {
		return decimal.Zero, fmt.Errorf("%w: card %s is not a penalty", apperrors.ErrValidation, card.CardID)
	}
	amount := card.Amount.Abs()
	if override.Valid {
		if err := requirePositive("penalty amount", override.Decimal); err != nil {
			return decimal.Zero, err
		}
		amount = override.Decimal
	}

	trail.Addf("Team %s paid a penalty %q of %s.", t.TeamName, card.Name, utils.FormatMoney(amount))
	if e.deduct(t, amount, trail).IsPositive() {
		e.RecomputeExpenses(t)
	}
	t.Penalties = append(t.Penalties, domain.CardRecord{CardID: card.CardID, Name: card.Name, Amount: amount, Date: e.now()})
	return amount, nil
}

// ApplyChance applies a chance card. Negative amounts are charged like a penalty.
func (e *Engine) ApplyChance(t *domain.Team, card *domain.Card, trail *Trail) (decimal.Decimal, error) {
	if card.Kind != domain.CardChance {
		return decimal.Zero, fmt.Errorf("%w: card %s is not a chance card", apperrors.ErrValidation, card.CardID)
	}

	trail.Addf("Team %s drew a Chance card: %q (%s).", t.TeamName, card.Name, utils.FormatMoney(card.Amount))
	if card.Amount.IsNegative() {
		if e.deduct(t, card.Amount.Neg(), trail).IsPositive() {
			e.RecomputeExpenses(t)
		}
	} else {
		t.Cash = t.Cash.Add(card.Amount)
	}
	t.Chances = append(t.Chances, domain.CardRecord{CardID: card.CardID, Name: card.Name, Amount: card.Amount, Date: e.now()})
	return card.Amount, nil
}
