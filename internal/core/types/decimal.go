// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; the reconciliation
// invariant depends on exact fixed-point comparison.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// CurrencyScale is the number of fractional digits carried by currency
// amounts at comparison time.
const CurrencyScale = 2

// RoundCurrency rounds a monetary value to the currency scale.
// Rounding is applied once to an aggregate, never per line.
func RoundCurrency(m Money) Money {
	return m.Round(CurrencyScale)
}

// SameAmount reports whether two monetary values are exactly equal.
// decimal.Equal ignores exponent differences (15.0 == 15.00).
func SameAmount(a, b Money) bool {
	return a.Equal(b)
}
