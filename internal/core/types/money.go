// Package types provides common type aliases and numeric utilities.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; rounding to 2 decimal
// places happens only at display and submission boundaries, never between
// intermediate calculation steps.
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

// Round2 rounds half-up to 2 decimal places. Display/submission boundary only.
func Round2(m Money) Money {
	return m.Round(2)
}

// RoundDown2 truncates toward zero to 2 decimal places.
// Used by the "pay full amount" helper so a payment never exceeds the balance.
func RoundDown2(m Money) Money {
	return m.RoundDown(2)
}

// ParseNumberOrZero parses a spreadsheet cell into Money.
//
// Policy (deliberate, documented): blank and non-numeric values coerce to
// zero rather than failing the row. Callers that must distinguish "zero"
// from "unparseable" use ParseNumber instead. Thousands separators are
// stripped before parsing.
func ParseNumberOrZero(raw string) Money {
	m, ok := ParseNumber(raw)
	if !ok {
		return decimal.Zero
	}
	return m
}

// ParseNumber parses a spreadsheet cell into Money, reporting success.
// Returns (0, true) for a blank cell: absence is a legitimate zero.
func ParseNumber(raw string) (Money, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, true
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Percent applies pct (e.g. 18 for 18%) to base without intermediate rounding.
func Percent(base Money, pct Money) Money {
	return base.Mul(pct).Div(decimal.NewFromInt(100))
}
