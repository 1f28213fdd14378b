package domain

import (
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LoanKind names one of the team's loan balances.
type LoanKind string

const (
	LoanSmallDeal LoanKind = "smallDealLoan"
	LoanBigDeal   LoanKind = "bigDealLoan"
	LoanPersonal  LoanKind = "personalLoan"
	LoanStocks    LoanKind = "stocksLoan"
	LoanCrypto    LoanKind = "cryptoLoan"
)

var loanAccessors = map[LoanKind]func(*Team) *decimal.Decimal{
	LoanSmallDeal: func(t *Team) *decimal.Decimal { return &t.SmallDealLoan },
	LoanBigDeal:   func(t *Team) *decimal.Decimal { return &t.BigDealLoan },
	LoanPersonal:  func(t *Team) *decimal.Decimal { return &t.PersonalLoan },
	LoanStocks:    func(t *Team) *decimal.Decimal { return &t.StocksLoan },
	LoanCrypto:    func(t *Team) *decimal.Decimal { return &t.CryptoLoan },
}

// LoanKinds lists every balance in a stable order.
var LoanKinds = []LoanKind{LoanSmallDeal, LoanBigDeal, LoanPersonal, LoanStocks, LoanCrypto}

// ParseLoanKind validates a raw loan field name.
func ParseLoanKind(s string) (LoanKind, error) {
	k := LoanKind(s)
	if _, ok := loanAccessors[k]; !ok {
		return "", fmt.Errorf("%w: unknown loan %q", apperrors.ErrValidation, s)
	}
	return k, nil
}

// Balance returns a pointer to the balance field for k on t.
func (k LoanKind) Balance(t *Team) *decimal.Decimal {
	return loanAccessors[k](t)
}

// LoanForDeal maps a deal class to the balance its financing lands on.
func LoanForDeal(c DealClass) LoanKind {
	if c == DealClassBig {
		return LoanBigDeal
	}
	return LoanSmallDeal
}

// LoanForAsset maps an asset class to the balance its financing lands on.
func LoanForAsset(c AssetClass) LoanKind {
	if c == AssetClassCrypto {
		return LoanCrypto
	}
	return LoanStocks
}
