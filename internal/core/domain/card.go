package domain

import (
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CardKind distinguishes chance cards from penalties.
type CardKind string

const (
	CardChance  CardKind = "chance"
	CardPenalty CardKind = "penalty"
)

// ParseCardKind validates a raw kind string.
func ParseCardKind(s string) (CardKind, error) {
	switch k := CardKind(s); k {
	case CardChance, CardPenalty:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown card kind %q", apperrors.ErrValidation, s)
}

// Card is an immutable catalog entry with a fixed cash delta.
// Penalty amounts are always charged; chance amounts are signed.
type Card struct {
	CardID      string          `json:"cardId"`
	Kind        CardKind        `json:"kind"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
