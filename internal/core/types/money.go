// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Persisted collections predate this implementation and store amounts as
	// plain JSON numbers; keep that layout.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Epsilon is the tolerance applied to balance comparisons. Historical data
// was accumulated with float arithmetic, so paid-off ledgers may carry a
// residue below this threshold.
var Epsilon = decimal.NewFromFloat(0.001)

// NewMoney creates a Money value from a float.
// Prefer MoneyFromString for exact values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// MoneyFromInt creates a Money value from an integer amount.
func MoneyFromInt(n int64) Money {
	return decimal.NewFromInt(n)
}

// MoneyFromString creates a Money value from a string.
func MoneyFromString(s string) (Money, error) {
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

// IsSettled reports whether a pending balance counts as fully paid,
// within Epsilon.
func IsSettled(saldo Money) bool {
	return saldo.LessThanOrEqual(Epsilon)
}

// ExceedsBalance reports whether a payment amount is larger than the pending
// balance, within Epsilon.
func ExceedsBalance(amount, saldo Money) bool {
	return amount.GreaterThan(saldo.Add(Epsilon))
}
