package utils

import (
	"github.com/shopspring/decimal"
)

// RoundingType selects how digits past the precision are treated.
type RoundingType string

const (
	// NoRounding leaves the value untouched.
	NoRounding RoundingType = "NONE"
	// Up rounds away from zero whenever anything follows the precision.
	Up RoundingType = "UP"
	// Down truncates toward zero.
	Down RoundingType = "DOWN"
	// Closest rounds away from zero when the first dropped digit reaches Digit.
	Closest RoundingType = "CLOSEST"
	// Floor applies Closest to positive values and truncates negative ones.
	Floor RoundingType = "FLOOR"
	// Ceiling applies Closest to negative values and truncates positive ones.
	Ceiling RoundingType = "CEILING"
)

// Rounding rounds to Precision decimal places. Digit is the threshold for
// the first dropped digit; zero means 5.
type Rounding struct {
	Type      RoundingType
	Precision int32
	Digit     int64
}

// Round applies r to v. The arithmetic runs on the shortest decimal
// representation of v, so 1.005 rounds as written.
func (r Rounding) Round(v float64) float64 {
	if r.Type == NoRounding || r.Type == "" {
		return v
	}
	out, _ := r.RoundDecimal(decimal.NewFromFloat(v)).Float64()
	return out
}

// RoundDecimal is Round on a decimal value.
func (r Rounding) RoundDecimal(v decimal.Decimal) decimal.Decimal {
	if r.Type == NoRounding || r.Type == "" {
		return v
	}
	digit := r.Digit
	if digit == 0 {
		digit = 5
	}
	threshold := decimal.New(digit, -1)

	shifted := v.Abs().Shift(r.Precision)
	whole := shifted.Truncate(0)
	frac := shifted.Sub(whole)
	negative := v.IsNegative()

	bump := false
	switch r.Type {
	case Up:
		bump = !frac.IsZero()
	case Closest:
		bump = frac.GreaterThanOrEqual(threshold)
	case Ceiling:
		bump = negative && frac.GreaterThanOrEqual(threshold)
	case Floor:
		bump = !negative && frac.GreaterThanOrEqual(threshold)
	}
	if bump {
		whole = whole.Add(decimal.NewFromInt(1))
	}
	out := whole.Shift(-r.Precision)
	if negative {
		return out.Neg()
	}
	return out
}

// RoundTo rounds a float to the specified decimal places, halves away from zero.
func RoundTo(val float64, decimals uint32) float64 {
	return Rounding{Type: Closest, Precision: int32(decimals)}.Round(val)
}
