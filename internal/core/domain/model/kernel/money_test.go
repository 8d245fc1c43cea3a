package kernel_test

import (
	"testing"

	"courierdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"35", "35.00"},
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"12.345", "12.35"},
		{"0.125", "0.13"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got := kernel.RoundMoney(decimal.RequireFromString(tc.in))

			assert.Equal(t, tc.expected, got.StringFixed(kernel.MoneyPlaces))
		})
	}
}

func TestOptionalDecimal(t *testing.T) {
	assert.Nil(t, kernel.OptionalDecimal(nil))

	original := decimal.NewFromInt(4)
	cp := kernel.OptionalDecimal(&original)

	assert.NotSame(t, &original, cp)
	assert.True(t, original.Equal(*cp))
}
