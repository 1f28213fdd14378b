package domain_test

import (
	"testing"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMISchedule_Exhausted(t *testing.T) {
	tests := []struct {
		name string
		emi  domain.EMISchedule
		want bool
	}{
		{
			name: "active schedule",
			emi:  domain.EMISchedule{TotalLoan: decimal.NewFromInt(1000), InstallmentsLeft: 2},
			want: false,
		},
		{
			name: "no installments left",
			emi:  domain.EMISchedule{TotalLoan: decimal.NewFromInt(1000), InstallmentsLeft: 0},
			want: true,
		},
		{
			name: "loan paid down",
			emi:  domain.EMISchedule{TotalLoan: decimal.Zero, InstallmentsLeft: 3},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.emi.Exhausted())
		})
	}
}

func TestTeam_CloneIsDeep(t *testing.T) {
	orig := &domain.Team{
		TeamID:        "t1",
		Cash:          decimal.NewFromInt(100),
		Stocks:        []domain.Lot{{Name: "ACME", Quantity: decimal.NewFromInt(5)}},
		SmallDealEmis: []domain.EMISchedule{{DealID: "d1", InstallmentsLeft: 4}},
		Deals:         []string{"d1"},
	}

	c := orig.Clone()
	c.Stocks[0].Quantity = decimal.NewFromInt(1)
	c.SmallDealEmis[0].InstallmentsLeft = 1
	c.Deals[0] = "d2"

	assert.True(t, orig.Stocks[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 4, orig.SmallDealEmis[0].InstallmentsLeft)
	assert.Equal(t, "d1", orig.Deals[0])
}

func TestLoanKind_Dispatch(t *testing.T) {
	team := &domain.Team{}
	for i, k := range domain.LoanKinds {
		*k.Balance(team) = decimal.NewFromInt(int64(i + 1))
	}

	assert.True(t, team.SmallDealLoan.Equal(decimal.NewFromInt(1)))
	assert.True(t, team.BigDealLoan.Equal(decimal.NewFromInt(2)))
	assert.True(t, team.PersonalLoan.Equal(decimal.NewFromInt(3)))
	assert.True(t, team.StocksLoan.Equal(decimal.NewFromInt(4)))
	assert.True(t, team.CryptoLoan.Equal(decimal.NewFromInt(5)))

	_, err := domain.ParseLoanKind("expenses")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseMarketMode(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.MarketMode
		wantErr bool
	}{
		{in: "bull", want: domain.MarketBull},
		{in: "bear", want: domain.MarketBear},
		{in: "normal", want: domain.MarketNormal},
		{in: "bull-stop", want: domain.MarketNormal},
		{in: "bear-stop", want: domain.MarketNormal},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseMarketMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActor_CanActOn(t *testing.T) {
	team := &domain.Team{TeamID: "team-1", TableID: "table-1"}

	assert.True(t, domain.Actor{Role: domain.RoleAdmin, ID: "root"}.CanActOn(team))
	assert.True(t, domain.Actor{Role: domain.RoleTable, ID: "table-1", TableID: "table-1"}.CanActOn(team))
	assert.False(t, domain.Actor{Role: domain.RoleTable, ID: "table-2", TableID: "table-2"}.CanActOn(team))
	assert.True(t, domain.Actor{Role: domain.RoleTeam, ID: "team-1", TableID: "table-1"}.CanActOn(team))
	assert.False(t, domain.Actor{Role: domain.RoleTeam, ID: "team-2", TableID: "table-1"}.CanActOn(team))
}
