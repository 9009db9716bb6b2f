package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositAmountPrecision(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		amount  string
		wantTag string
	}{
		{"50.25", ""},
		{"10", ""},
		{"0.004", "cents"},
		{"4.995", "cents"},
		{"-1", "gt"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := v.Struct(api.DepositRequest{
				Amount: decimal.RequireFromString(tt.amount),
				Card:   "4111111111111111",
			})
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, "Amount", verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}

func TestValidationMessageForCents(t *testing.T) {
	err := NewValidator().Struct(api.WithdrawRequest{
		Amount:      decimal.RequireFromString("0.001"),
		BankAccount: "TR330006100519786457841326",
	})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, ErrCents, ValidationMessage(verrs[0]))
}
