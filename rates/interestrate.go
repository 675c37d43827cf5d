package rates

import (
	"fmt"

	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/daycount"
)

// InterestRate is a rate quoted with its day counter and compounding rule.
type InterestRate struct {
	Rate        float64
	DayCounter  daycount.DayCounter
	Compounding Compounding
	Frequency   date.Frequency
}

// NewInterestRate validates the compounding/frequency pair.
func NewInterestRate(r float64, dc daycount.DayCounter, comp Compounding, freq date.Frequency) (InterestRate, error) {
	if _, err := checkInputs("NewInterestRate", r, 0, comp, freq); err != nil {
		return InterestRate{}, err
	}
	return InterestRate{Rate: r, DayCounter: dc, Compounding: comp, Frequency: freq}, nil
}

func (ir InterestRate) String() string {
	s := fmt.Sprintf("%.6f%% %s %s", ir.Rate*100, ir.DayCounter.Name(), ir.Compounding)
	if ir.Compounding.needsFrequency() {
		s += " " + ir.Frequency.String()
	}
	return s
}

// CompoundFactor returns the growth factor over t years.
func (ir InterestRate) CompoundFactor(t float64) (float64, error) {
	return CompoundFactor(ir.Rate, t, ir.Compounding, ir.Frequency)
}

// DiscountFactor returns the discount factor over t years.
func (ir InterestRate) DiscountFactor(t float64) (float64, error) {
	return DiscountFactor(ir.Rate, t, ir.Compounding, ir.Frequency)
}

// DiscountFactorBetween measures [d1, d2] with the rate's day counter and
// discounts over it. refStart and refEnd are passed through for ISMA.
func (ir InterestRate) DiscountFactorBetween(d1, d2, refStart, refEnd date.Date) (float64, error) {
	if d2.Before(d1) {
		return 0, fmt.Errorf("DiscountFactorBetween: %s before %s: %w", d2, d1, ErrNumeric)
	}
	t, err := ir.DayCounter.YearFractionRef(d1, d2, refStart, refEnd)
	if err != nil {
		return 0, err
	}
	return ir.DiscountFactor(t)
}

// ImpliedRate returns the rate quoted under dc, comp and freq that grows one
// unit into compound over t years.
func ImpliedRate(compound float64, dc daycount.DayCounter, comp Compounding, freq date.Frequency, t float64) (InterestRate, error) {
	r, err := ImpliedRateFromFactor(compound, t, comp, freq)
	if err != nil {
		return InterestRate{}, err
	}
	return InterestRate{Rate: r, DayCounter: dc, Compounding: comp, Frequency: freq}, nil
}

// EquivalentRate re-expresses ir under another compounding and frequency
// so that both produce the same factor over t years.
func (ir InterestRate) EquivalentRate(comp Compounding, freq date.Frequency, t float64) (InterestRate, error) {
	cf, err := ir.CompoundFactor(t)
	if err != nil {
		return InterestRate{}, err
	}
	return ImpliedRate(cf, ir.DayCounter, comp, freq, t)
}
