package rates

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/meenmo/bondlib/date"
)

// Compounding is the functional form relating a rate to a growth factor.
type Compounding string

const (
	Simple     Compounding = "SIMPLE"
	Compounded Compounding = "COMPOUNDED"
	Continuous Compounding = "CONTINUOUS"
	// SimpleThenCompounded is simple up to one period, compounded after.
	SimpleThenCompounded Compounding = "SIMPLE_THEN_COMPOUNDED"
	// CompoundedThenSimple is compounded up to one period, simple after.
	CompoundedThenSimple Compounding = "COMPOUNDED_THEN_SIMPLE"
)

var (
	// ErrNumeric is returned for non-finite or out-of-domain rates, times and factors.
	ErrNumeric = errors.New("numeric error")
	// ErrUnknownCompounding is returned for unrecognized compounding names.
	ErrUnknownCompounding = errors.New("unknown compounding")
)

// ParseCompounding reads a compounding name, case-insensitive.
func ParseCompounding(s string) (Compounding, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(strings.TrimSpace(s)))
	switch c := Compounding(key); c {
	case Simple, Compounded, Continuous, SimpleThenCompounded, CompoundedThenSimple:
		return c, nil
	}
	return "", fmt.Errorf("ParseCompounding: %q: %w", s, ErrUnknownCompounding)
}

// needsFrequency reports whether c has a discrete compounding leg.
func (c Compounding) needsFrequency() bool {
	return c != Simple && c != Continuous
}

// resolve maps the hybrid forms onto Simple or Compounded for time t.
func (c Compounding) resolve(t, f float64) Compounding {
	switch c {
	case SimpleThenCompounded:
		if t <= 1/f {
			return Simple
		}
		return Compounded
	case CompoundedThenSimple:
		if t <= 1/f {
			return Compounded
		}
		return Simple
	}
	return c
}

func checkInputs(op string, r, t float64, comp Compounding, freq date.Frequency) (float64, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("%s: rate %v: %w", op, r, ErrNumeric)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return 0, fmt.Errorf("%s: time %v: %w", op, t, ErrNumeric)
	}
	f := freq.PerYear()
	if comp.needsFrequency() && f <= 0 {
		return 0, fmt.Errorf("%s: %s needs a frequency, got %s: %w", op, comp, freq, ErrNumeric)
	}
	return f, nil
}

// CompoundFactor returns the growth of one unit invested at r for t years.
func CompoundFactor(r, t float64, comp Compounding, freq date.Frequency) (float64, error) {
	f, err := checkInputs("CompoundFactor", r, t, comp, freq)
	if err != nil {
		return 0, err
	}
	var cf float64
	switch comp.resolve(t, f) {
	case Simple:
		cf = 1 + r*t
	case Compounded:
		// a base at or below zero has no real growth path even when Pow returns one
		if 1+r/f <= 0 {
			return 0, fmt.Errorf("CompoundFactor: rate %v at or below -%v under %s: %w", r, f, comp, ErrNumeric)
		}
		cf = math.Pow(1+r/f, f*t)
	case Continuous:
		cf = math.Exp(r * t)
	default:
		return 0, fmt.Errorf("CompoundFactor: unknown compounding %q: %w", comp, ErrNumeric)
	}
	if !(cf > 0) || math.IsInf(cf, 0) {
		return 0, fmt.Errorf("CompoundFactor: rate %v over %v years under %s gives factor %v: %w", r, t, comp, cf, ErrNumeric)
	}
	return cf, nil
}

// DiscountFactor returns 1 / CompoundFactor(y, t, comp, freq).
func DiscountFactor(y, t float64, comp Compounding, freq date.Frequency) (float64, error) {
	cf, err := CompoundFactor(y, t, comp, freq)
	if err != nil {
		return 0, err
	}
	return 1 / cf, nil
}

// ImpliedRateFromFactor returns the rate that grows one unit into compound
// over t years.
func ImpliedRateFromFactor(compound, t float64, comp Compounding, freq date.Frequency) (float64, error) {
	if !(compound > 0) || math.IsInf(compound, 0) {
		return 0, fmt.Errorf("ImpliedRate: compound factor %v: %w", compound, ErrNumeric)
	}
	f, err := checkInputs("ImpliedRate", 0, t, comp, freq)
	if err != nil {
		return 0, err
	}
	if compound == 1 {
		return 0, nil
	}
	if t == 0 {
		return 0, fmt.Errorf("ImpliedRate: factor %v over zero time: %w", compound, ErrNumeric)
	}
	switch comp.resolve(t, f) {
	case Simple:
		return (compound - 1) / t, nil
	case Compounded:
		return (math.Pow(compound, 1/(f*t)) - 1) * f, nil
	case Continuous:
		return math.Log(compound) / t, nil
	}
	return 0, fmt.Errorf("ImpliedRate: unknown compounding %q: %w", comp, ErrNumeric)
}
