package ledger_test

import (
	"testing"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallDeal() *domain.Deal {
	return &domain.Deal{
		DealID:        "deal-1",
		DealType:      domain.DealClassSmall,
		Name:          "Iron Empire Gym",
		Cost:          d(1000000),
		PassiveIncome: d(22000),
	}
}

func TestBuyDeal_FinancedWithFourInstallments(t *testing.T) {
	e := newEngine()
	team := newTeam()
	deal := smallDeal()
	trail := &ledger.Trail{}

	terms, err := e.BuyDeal(team, deal, ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 4}, trail)
	require.NoError(t, err)

	assert.True(t, terms.Principal.Equal(d(600000)))
	assert.True(t, terms.TotalLoan.Equal(d(648000)))
	assert.True(t, terms.EMI.Equal(d(162000)))
	assert.True(t, team.SmallDealLoan.Equal(d(648000)))
	require.Len(t, team.SmallDealEmis, 1)
	assert.Equal(t, 4, team.SmallDealEmis[0].InstallmentsLeft)
	assert.Equal(t, "deal-1", team.SmallDealEmis[0].DealID)

	assert.True(t, team.Cash.Equal(d(100000)))
	assert.True(t, team.Assets.Equal(d(400000)))
	assert.True(t, team.PassiveIncome.Equal(d(22000)))
	assert.True(t, team.Expenses.Equal(d(462000)))
	assert.Equal(t, []string{"deal-1"}, team.Deals)
	assert.Equal(t, []domain.DealOwner{{TableID: "table-1", TeamID: "team-1"}}, deal.Owners)
	require.Equal(t, 1, trail.Len())
	assert.Contains(t, trail.Lines()[0], "EMI: 162000.00")
	assertNonNegative(t, team)
}

func TestBuyDeal_BigDealUsesBigLoan(t *testing.T) {
	e := newEngine()
	team := newTeam()
	team.Cash = d(2000000)
	deal := &domain.Deal{DealID: "deal-big", DealType: domain.DealClassBig, Name: "Radio Station", Cost: d(5900000), PassiveIncome: d(320960)}

	terms, err := e.BuyDeal(team, deal, ledger.DealOrder{Class: domain.DealClassBig, BuyAmount: d(1900000), Installments: 7}, nil)
	require.NoError(t, err)

	assert.True(t, terms.TotalLoan.Equal(d(5120000)))
	assert.True(t, team.BigDealLoan.Equal(d(5120000)))
	assert.True(t, team.SmallDealLoan.IsZero())
	require.Len(t, team.BigDealEmis, 1)
	assert.Empty(t, team.SmallDealEmis)
}

func TestBuyDeal_FullPaymentHasNoSchedule(t *testing.T) {
	e := newEngine()
	team := newTeam()
	team.Cash = d(1000000)

	_, err := e.BuyDeal(team, smallDeal(), ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(1000000), Installments: 6}, nil)
	require.NoError(t, err)

	assert.Empty(t, team.SmallDealEmis)
	assert.True(t, team.SmallDealLoan.IsZero())
	assert.True(t, team.Cash.IsZero())
}

func TestBuyDeal_Rejections(t *testing.T) {
	e := newEngine()

	tests := []struct {
		name    string
		setup   func(*domain.Team, *domain.Deal)
		order   ledger.DealOrder
		wantErr error
	}{
		{
			name:    "frozen",
			setup:   func(tm *domain.Team, _ *domain.Deal) { tm.IsAssetsFrozen = true },
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 4},
			wantErr: apperrors.ErrFrozen,
		},
		{
			name:    "owned on this table",
			setup:   func(_ *domain.Team, dl *domain.Deal) { dl.Owners = []domain.DealOwner{{TableID: "table-1", TeamID: "team-9"}} },
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 4},
			wantErr: apperrors.ErrConflict,
		},
		{
			name: "duplicate schedule",
			setup: func(tm *domain.Team, _ *domain.Deal) {
				tm.SmallDealEmis = []domain.EMISchedule{{DealID: "deal-1", TotalLoan: d(1), EMI: d(1), InstallmentsLeft: 1}}
			},
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 4},
			wantErr: apperrors.ErrConflict,
		},
		{
			name:    "class mismatch",
			order:   ledger.DealOrder{Class: domain.DealClassBig, BuyAmount: d(400000), Installments: 4},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "zero amount",
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(0), Installments: 4},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "amount above cost",
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(1000001), Installments: 4},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "below down payment",
			setup:   func(_ *domain.Team, dl *domain.Deal) { dl.DownPayment = decimal.NewNullDecimal(d(450000)) },
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 4},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "not enough cash",
			setup:   func(tm *domain.Team, _ *domain.Deal) { tm.Cash = d(399999) },
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 4},
			wantErr: apperrors.ErrInsufficientFunds,
		},
		{
			name:    "unsupported plan",
			order:   ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 5},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := newTeam()
			deal := smallDeal()
			if tt.setup != nil {
				tt.setup(team, deal)
			}
			before := team.Clone()
			ownersBefore := len(deal.Owners)

			_, err := e.BuyDeal(team, deal, tt.order, nil)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, team)
			assert.Len(t, deal.Owners, ownersBefore)
		})
	}
}

func TestBuyDeal_OtherTableMayOwnACopy(t *testing.T) {
	e := newEngine()
	team := newTeam()
	deal := smallDeal()
	deal.Owners = []domain.DealOwner{{TableID: "table-2", TeamID: "team-7"}}

	_, err := e.BuyDeal(team, deal, ledger.DealOrder{Class: domain.DealClassSmall, BuyAmount: d(400000), Installments: 4}, nil)
	require.NoError(t, err)
	assert.Len(t, deal.Owners, 2)
}
