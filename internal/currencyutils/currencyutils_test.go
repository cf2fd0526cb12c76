package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"plain amount", "120.00", "120.00", false},
		{"no decimals", "15", "15.00", false},
		{"trailing spaces", " 92.50 ", "92.50", false},
		{"negative amount", "-10.25", "-10.25", false},
		{"empty string", "", "0.00", false},
		{"garbage", "N/A", "", true},
		{"comma decimal", "12,50", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, amount.StringFixed(2))
		})
	}
}

func TestAmountOrZero(t *testing.T) {
	assert.Equal(t, "15.00", AmountOrZero("15.00").StringFixed(2))
	assert.Equal(t, "0.00", AmountOrZero("").StringFixed(2))
	assert.Equal(t, "0.00", AmountOrZero("garbage").StringFixed(2))
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12.005", "12.01"},
		{"12.004", "12.00"},
		{"12.0049", "12.00"},
		{"0.125", "0.13"},
		{"7", "7.00"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, RoundCents(d).StringFixed(2))
	}
}
