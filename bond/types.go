package bond

import (
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/daycount"
)

// CashFlow is a single dated payment of a bond.
//
// Amounts are in the same units as the bond's face amount. Coupon flows
// carry their accrual and reference periods; a pure redemption leaves them
// zero.
type CashFlow struct {
	Date      date.Date
	Coupon    float64
	Principal float64

	AccrualStart date.Date
	AccrualEnd   date.Date
	RefStart     date.Date
	RefEnd       date.Date
	Rate         float64
	Nominal      float64
	DayCounter   daycount.DayCounter
}

func (c CashFlow) Amount() float64 {
	return c.Coupon + c.Principal
}

// IsCoupon reports whether the flow accrues interest.
func (c CashFlow) IsCoupon() bool { return !c.AccrualStart.IsZero() }

// AccruedAt returns the coupon accrued from AccrualStart to d, zero outside
// (AccrualStart, Date].
func (c CashFlow) AccruedAt(d date.Date) (float64, error) {
	if !c.IsCoupon() || !d.After(c.AccrualStart) || d.After(c.Date) {
		return 0, nil
	}
	yf, err := c.DayCounter.YearFractionRef(c.AccrualStart, date.Min(d, c.AccrualEnd), c.RefStart, c.RefEnd)
	if err != nil {
		return 0, err
	}
	return c.Nominal * c.Rate * yf, nil
}
