package bond

import (
	"fmt"
	"math"

	"github.com/meenmo/bondlib/config"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/daycount"
	"github.com/meenmo/bondlib/logger"
	"github.com/meenmo/bondlib/rates"
	"github.com/meenmo/bondlib/solver"
)

// PriceType says whether a quoted price includes accrued interest.
type PriceType string

const (
	Clean PriceType = "CLEAN"
	Dirty PriceType = "DIRTY"
)

// YieldConvention is how a yield is quoted: the day counter that measures
// discounting periods, the compounding rule and its frequency.
type YieldConvention struct {
	DayCounter  daycount.DayCounter
	Compounding rates.Compounding
	Frequency   date.Frequency
}

func (c YieldConvention) rate(y float64) rates.InterestRate {
	return rates.InterestRate{Rate: y, DayCounter: c.DayCounter, Compounding: c.Compounding, Frequency: c.Frequency}
}

// PriceFromYield returns the dirty price of b at yield y, in face units.
//
// Flows on or before settlement are excluded. Discounting walks the
// remaining flows in order: each step is measured over the coupon reference
// period (for non-coupon flows, from the previous flow date, or over a
// one-year notional period for the first one) and the step discount factors
// are multiplied.
func PriceFromYield(b Bond, y float64, conv YieldConvention, settlement date.Date) (float64, error) {
	if err := checkSettlement("PriceFromYield", b, settlement); err != nil {
		return 0, err
	}
	return npv(b, conv.rate(y), settlement)
}

// CleanPriceFromYield is PriceFromYield less the accrued amount at settlement.
func CleanPriceFromYield(b Bond, y float64, conv YieldConvention, settlement date.Date) (float64, error) {
	dirty, err := PriceFromYield(b, y, conv, settlement)
	if err != nil {
		return 0, err
	}
	accrued, err := AccruedAmount(b, settlement)
	if err != nil {
		return 0, err
	}
	return dirty - accrued, nil
}

// AccruedAmount returns the coupon interest accrued at settlement, in face units.
func AccruedAmount(b Bond, settlement date.Date) (float64, error) {
	if err := checkSettlement("AccruedAmount", b, settlement); err != nil {
		return 0, err
	}
	var accrued float64
	for _, cf := range b.CashFlows() {
		if !cf.Date.After(settlement) {
			continue
		}
		a, err := cf.AccruedAt(settlement)
		if err != nil {
			return 0, fmt.Errorf("AccruedAmount: %w", err)
		}
		accrued += a
	}
	return accrued, nil
}

func npv(b Bond, ir rates.InterestRate, settlement date.Date) (float64, error) {
	var price float64
	discount := 1.0
	last := settlement
	for _, cf := range b.CashFlows() {
		if !cf.Date.After(settlement) {
			continue
		}
		t, err := stepTime(cf, ir.DayCounter, settlement, last)
		if err != nil {
			return 0, fmt.Errorf("PriceFromYield: flow %s: %w", cf.Date, err)
		}
		df, err := ir.DiscountFactor(t)
		if err != nil {
			return 0, fmt.Errorf("PriceFromYield: flow %s: %w", cf.Date, err)
		}
		discount *= df
		last = cf.Date
		price += cf.Amount() * discount
	}
	return price, nil
}

// stepTime is the discounting time from last to the flow date.
func stepTime(cf CashFlow, dc daycount.DayCounter, settlement, last date.Date) (float64, error) {
	refStart, refEnd := cf.RefStart, cf.RefEnd
	if !cf.IsCoupon() {
		refStart, refEnd = last, cf.Date
		if last == settlement {
			refStart = cf.Date.AddPeriod(date.NewPeriod(-1, date.Years))
		}
	}
	if cf.IsCoupon() && last != cf.AccrualStart {
		// measure inside the coupon's own period so stubs stay consistent
		period, err := dc.YearFractionRef(cf.AccrualStart, cf.Date, refStart, refEnd)
		if err != nil {
			return 0, err
		}
		accrued, err := dc.YearFractionRef(cf.AccrualStart, last, refStart, refEnd)
		if err != nil {
			return 0, err
		}
		return period - accrued, nil
	}
	return dc.YearFractionRef(last, cf.Date, refStart, refEnd)
}

type yieldParams struct {
	solver   solver.Solver
	guess    float64
	hasGuess bool
	step     float64
}

// YieldOption customizes Yield.
type YieldOption func(*yieldParams)

// WithSolver replaces the default NewtonSafe solver.
func WithSolver(s solver.Solver) YieldOption {
	return func(p *yieldParams) { p.solver = s }
}

// WithGuess sets the initial yield instead of the estimate from price and coupon.
func WithGuess(y float64) YieldOption {
	return func(p *yieldParams) { p.guess, p.hasGuess = y, true }
}

// WithStep sets the initial bracketing step.
func WithStep(step float64) YieldOption {
	return func(p *yieldParams) { p.step = step }
}

// Yield solves PriceFromYield(b, y) = price for y. A clean price is grossed up
// by the accrued amount first. The residual is measured relative to the dirty
// price. Non-convergence is returned as *solver.RootNotFoundError.
func Yield(b Bond, price float64, pt PriceType, conv YieldConvention, settlement date.Date, opts ...YieldOption) (float64, error) {
	if err := checkSettlement("Yield", b, settlement); err != nil {
		return 0, err
	}
	if !(price > 0) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("Yield: price %v: %w", price, rates.ErrNumeric)
	}
	dirty := price
	switch pt {
	case Clean:
		accrued, err := AccruedAmount(b, settlement)
		if err != nil {
			return 0, err
		}
		dirty += accrued
	case Dirty:
	default:
		return 0, fmt.Errorf("Yield: unknown price type %q: %w", pt, ErrInvalidBond)
	}

	cfg := config.DefaultConfig().Solver
	p := yieldParams{solver: solver.NewNewtonSafe(cfg.Options()), step: cfg.Step}
	for _, opt := range opts {
		opt(&p)
	}
	if !p.hasGuess {
		p.guess = estimatedYield(b, dirty, settlement)
	}
	p.guess = math.Max(cfg.LowerBound, math.Min(cfg.UpperBound, p.guess))

	objective := func(y float64) (float64, error) {
		v, err := npv(b, conv.rate(y), settlement)
		if err != nil {
			return 0, err
		}
		// relative, so Accuracy holds for deep-discount prices too
		return v/dirty - 1, nil
	}
	logger.L().Debug("bond.yield", "solver", p.solver.Name(), "dirty", dirty, "guess", p.guess, "settlement", settlement.String())
	y, err := p.solver.Solve(solver.Problem{F: objective}, p.guess, p.step)
	if err != nil {
		return 0, fmt.Errorf("Yield: %w", err)
	}
	return y, nil
}

// estimatedYield is the approximate yield to maturity
// (C + (F−P)/n) / ((F+P)/2), with C the annual coupon, F the redemption,
// P the dirty price and n the years to maturity.
func estimatedYield(b Bond, dirty float64, settlement date.Date) float64 {
	var coupon, redemption float64
	for _, cf := range b.CashFlows() {
		if !cf.Date.After(settlement) {
			continue
		}
		redemption += cf.Principal
		if coupon == 0 && cf.IsCoupon() {
			coupon = cf.Nominal * cf.Rate
		}
	}
	n := float64(settlement.DaysUntil(b.MaturityDate())) / 365
	y := (coupon + (redemption-dirty)/n) / ((redemption + dirty) / 2)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0.05
	}
	return y
}
