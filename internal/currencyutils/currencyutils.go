// Package currencyutils provides common currency and decimal operations
// used throughout the application.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a string representation of an amount into a decimal
// value. Empty strings parse to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// AmountOrZero parses an amount, substituting zero for anything that is
// not a valid decimal. SRI amount fields are optional in several schema
// variants, so a missing or garbled field is not fatal.
func AmountOrZero(amountStr string) decimal.Decimal {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// RoundCents rounds a currency amount to 2 decimal places using half-up
// tie-breaking, so 12.005 rounds to 12.01.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
