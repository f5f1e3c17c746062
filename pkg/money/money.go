// Package money holds monetary amounts as integer minor units (paise/cents)
// to avoid floating point drift in stored values.
package money

import (
	"fmt"
	"math"
)

// RoundHalfUp rounds a fractional minor-unit amount to the nearest integer
// minor unit, halves away from zero for positive values.
func RoundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// FromUnits converts an amount expressed in major currency units to minor units.
func FromUnits(v float64) int64 {
	return RoundHalfUp(v * 100)
}

// Percent returns pct% of amount, rounded half-up to the minor unit.
func Percent(amount int64, pct float64) int64 {
	return RoundHalfUp(float64(amount) * pct / 100)
}

// ClampNonNegative floors an amount at zero.
func ClampNonNegative(amount int64) int64 {
	if amount < 0 {
		return 0
	}
	return amount
}

// Format renders minor units as a decimal string with two places.
func Format(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
