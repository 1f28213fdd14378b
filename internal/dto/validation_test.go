package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestBuyDealRequest_Validation(t *testing.T) {
	v := newValidator(t)

	ok := BuyDealRequest{TeamID: "t", DealID: "d", BuyAmount: decimal.NewFromInt(400000), Installments: 4}
	assert.NoError(t, v.Struct(ok))

	zero := ok
	zero.BuyAmount = decimal.Zero
	assert.Error(t, v.Struct(zero))

	negative := ok
	negative.BuyAmount = decimal.NewFromInt(-1)
	assert.Error(t, v.Struct(negative))
}

func TestAssetTradeRequest_LoanMayBeZero(t *testing.T) {
	v := newValidator(t)
	req := AssetTradeRequest{TeamID: "t", Name: "ACME", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(10)}
	assert.NoError(t, v.Struct(req))

	req.LoanAmount = decimal.NewFromInt(-5)
	assert.Error(t, v.Struct(req))
}

func TestPenaltyRequest_OptionalOverride(t *testing.T) {
	v := newValidator(t)
	req := PenaltyRequest{TeamID: "t", PenaltyID: "p"}
	assert.NoError(t, v.Struct(req))

	req.Amount = decimal.NewNullDecimal(decimal.NewFromInt(-1))
	assert.Error(t, v.Struct(req))

	req.Amount = decimal.NewNullDecimal(decimal.NewFromInt(1000))
	assert.NoError(t, v.Struct(req))
}

func TestRepayRequest_LoanType(t *testing.T) {
	v := newValidator(t)
	req := RepayRequest{TeamID: "t", Amount: decimal.NewFromInt(1), LoanType: "cryptoLoan"}
	assert.NoError(t, v.Struct(req))

	req.LoanType = "mortgage"
	assert.Error(t, v.Struct(req))
}
