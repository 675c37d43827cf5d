// Package bonds converts cashflow feeds quoted in currency minor units into
// bond cash flows and back.
package bonds

import (
	"errors"
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/rates"
	"github.com/meenmo/bondlib/utils"
)

// ErrUnknownCurrency is returned for ISO codes go-money does not know.
var ErrUnknownCurrency = errors.New("unknown currency")

// CashflowCents mirrors the Bloomberg-style cashflow feed where coupon/principal
// are stored as integer minor units (e.g., cents for EUR).
type CashflowCents struct {
	Date           date.Date
	CouponCents    int64
	PrincipalCents int64
}

func currency(code string) (*money.Currency, error) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("%q: %w", code, ErrUnknownCurrency)
	}
	return cur, nil
}

// ToCashflow converts c into major units of currency code.
func (c CashflowCents) ToCashflow(code string) (bond.CashFlow, error) {
	cur, err := currency(code)
	if err != nil {
		return bond.CashFlow{}, fmt.Errorf("ToCashflow: %w", err)
	}
	return bond.CashFlow{
		Date:      c.Date,
		Coupon:    money.New(c.CouponCents, cur.Code).AsMajorUnits(),
		Principal: money.New(c.PrincipalCents, cur.Code).AsMajorUnits(),
	}, nil
}

func ToCashflows(in []CashflowCents, code string) ([]bond.CashFlow, error) {
	out := make([]bond.CashFlow, 0, len(in))
	for _, cf := range in {
		f, err := cf.ToCashflow(code)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// FromCashflows rounds each amount to the nearest minor unit of code, halves
// away from zero.
func FromCashflows(flows []bond.CashFlow, code string) ([]CashflowCents, error) {
	cur, err := currency(code)
	if err != nil {
		return nil, fmt.Errorf("FromCashflows: %w", err)
	}
	toMinor := func(v float64) (int64, error) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("FromCashflows: amount %v: %w", v, rates.ErrNumeric)
		}
		r := utils.Rounding{Type: utils.Closest, Precision: int32(cur.Fraction)}
		return r.RoundDecimal(decimal.NewFromFloat(v)).Shift(int32(cur.Fraction)).IntPart(), nil
	}
	out := make([]CashflowCents, 0, len(flows))
	for _, cf := range flows {
		coupon, err := toMinor(cf.Coupon)
		if err != nil {
			return nil, err
		}
		principal, err := toMinor(cf.Principal)
		if err != nil {
			return nil, err
		}
		out = append(out, CashflowCents{Date: cf.Date, CouponCents: coupon, PrincipalCents: principal})
	}
	return out, nil
}

// PaymentDates returns the feed dates in ascending order.
func PaymentDates(in []CashflowCents) []date.Date {
	out := make([]date.Date, 0, len(in))
	for _, cf := range in {
		out = append(out, cf.Date)
	}
	utils.SortDates(out)
	return out
}

// PaymentPeriod returns the pair of feed dates bracketing d.
func PaymentPeriod(in []CashflowCents, d date.Date) (date.Date, date.Date, error) {
	prev, next, err := utils.AdjacentDates(d, PaymentDates(in))
	if err != nil {
		return date.Date{}, date.Date{}, fmt.Errorf("PaymentPeriod: %w", err)
	}
	return prev, next, nil
}
