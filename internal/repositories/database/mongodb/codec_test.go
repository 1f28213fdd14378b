package mongodb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type priced struct {
	Price decimal.Decimal  `bson:"price"`
	Down  *decimal.Decimal `bson:"down,omitempty"`
}

func TestDecimalCodec_StoresDecimal128(t *testing.T) {
	reg := NewRegistry()
	down := decimal.RequireFromString("12500.50")

	raw, err := bson.MarshalWithRegistry(reg, priced{Price: decimal.RequireFromString("108000"), Down: &down})
	require.NoError(t, err)

	assert.Equal(t, bsontype.Decimal128, bson.Raw(raw).Lookup("price").Type)

	var got priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &got))
	assert.True(t, got.Price.Equal(decimal.NewFromInt(108000)))
	require.NotNil(t, got.Down)
	assert.True(t, got.Down.Equal(down))
}

func TestDecimalCodec_NilPointerOmitted(t *testing.T) {
	reg := NewRegistry()

	raw, err := bson.MarshalWithRegistry(reg, priced{Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	_, lookupErr := bson.Raw(raw).LookupErr("down")
	assert.Error(t, lookupErr)

	var got priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &got))
	assert.Nil(t, got.Down)
}

func TestDecimalCodec_ReadsLegacyTypes(t *testing.T) {
	reg := NewRegistry()
	cases := map[string]bson.M{
		"string": {"price": "2500.75"},
		"double": {"price": 2500.75},
		"int32":  {"price": int32(2500)},
		"int64":  {"price": int64(2500)},
	}
	want := map[string]decimal.Decimal{
		"string": decimal.RequireFromString("2500.75"),
		"double": decimal.RequireFromString("2500.75"),
		"int32":  decimal.NewFromInt(2500),
		"int64":  decimal.NewFromInt(2500),
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(doc)
			require.NoError(t, err)

			var got priced
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &got))
			assert.True(t, got.Price.Equal(want[name]), "got %s", got.Price)
		})
	}
}

func TestDecimalCodec_RejectsBoolean(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"price": true})
	require.NoError(t, err)

	var got priced
	assert.Error(t, bson.UnmarshalWithRegistry(NewRegistry(), raw, &got))
}
