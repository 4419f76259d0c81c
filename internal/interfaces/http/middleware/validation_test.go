package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceInput struct {
	UnitPrice decimal.Decimal  `json:"unit_price" validate:"decimal_gt0"`
	Tax       decimal.Decimal  `json:"tax_percentage" validate:"tax_pct"`
	Discount  *decimal.Decimal `json:"discounted_price" validate:"omitempty,decimal_gt0"`
	Method    string           `json:"payment_method" validate:"omitempty,payment_method"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

func TestRegisterValidations(t *testing.T) {
	v := newValidator()
	neg := decimal.NewFromInt(-5)

	tests := []struct {
		name      string
		input     priceInput
		wantField string
	}{
		{"valid", priceInput{UnitPrice: decimal.NewFromInt(100), Tax: decimal.NewFromInt(10), Method: "CASH"}, ""},
		{"zero tax allowed", priceInput{UnitPrice: decimal.RequireFromString("0.01"), Tax: decimal.Zero}, ""},
		{"zero price", priceInput{UnitPrice: decimal.Zero, Tax: decimal.Zero}, "unit_price"},
		{"tax above 100", priceInput{UnitPrice: decimal.NewFromInt(1), Tax: decimal.NewFromInt(101)}, "tax_percentage"},
		{"negative tax", priceInput{UnitPrice: decimal.NewFromInt(1), Tax: neg}, "tax_percentage"},
		{"negative discount", priceInput{UnitPrice: decimal.NewFromInt(1), Discount: &neg}, "discounted_price"},
		{"unknown payment method", priceInput{UnitPrice: decimal.NewFromInt(1), Method: "BARTER"}, "payment_method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verrs := err.(validator.ValidationErrors)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := newValidator()
	err := v.Struct(priceInput{UnitPrice: decimal.Zero, Tax: decimal.NewFromInt(150)})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-9")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "req-9", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "Must be a decimal greater than 0", resp.Error.Details[0].Message)
	assert.Equal(t, "Must be a percentage between 0 and 100", resp.Error.Details[1].Message)
}
