package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches v to read decimals and adds the dec_gt0 and dec_gte0 rules.
func RegisterValidators(v *validator.Validate) error {
	// Struct-typed fields are only checked against tags once mapped to a plain value.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	if err := v.RegisterValidation("dec_gt0", decimalGreaterThanZero); err != nil {
		return err
	}
	return v.RegisterValidation("dec_gte0", decimalNotNegative)
}

func decimalValue(field reflect.Value) any {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.String()
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.String()
	}
	return nil
}

func parseField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := parseField(fl)
	return ok && d.IsPositive()
}

func decimalNotNegative(fl validator.FieldLevel) bool {
	d, ok := parseField(fl)
	return ok && !d.IsNegative()
}
