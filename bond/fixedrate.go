package bond

import (
	"fmt"
	"math"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/daycount"
	"github.com/meenmo/bondlib/schedule"
)

// FixedRateBondInput holds the terms of a fixed-rate bond.
type FixedRateBondInput struct {
	SettlementDays int
	// FaceAmount is the notional; prices come out in the same units.
	FaceAmount float64
	// Schedule holds the accrual period boundaries.
	Schedule *schedule.Schedule
	// CouponRates are decimal annual rates (0.025 for 2.5%), one for all
	// periods or one per period. A shorter list repeats its last rate.
	CouponRates []float64
	// AccrualDayCounter measures each coupon period.
	AccrualDayCounter daycount.DayCounter
	// PaymentConvention adjusts payment dates on the schedule calendar.
	// Empty means Following.
	PaymentConvention calendar.BusinessDayConvention
	// Redemption is the final repayment in percent of face; zero means 100.
	Redemption float64
	IssueDate  date.Date
}

// FixedRateBond pays fixed coupons on a schedule and redeems at maturity.
type FixedRateBond struct {
	settlementDays int
	cal            calendar.Calendar
	face           float64
	maturity       date.Date
	issue          date.Date
	dc             daycount.DayCounter
	frequency      date.Frequency
	flows          []CashFlow
}

// NewFixedRateBond derives the coupon flows from in. Stub periods are
// measured against a notional full-tenor reference period so that
// reference-dependent day counters stay consistent.
func NewFixedRateBond(in FixedRateBondInput) (*FixedRateBond, error) {
	if err := checkCommon("NewFixedRateBond", in.SettlementDays, in.FaceAmount); err != nil {
		return nil, err
	}
	if in.Schedule == nil || in.Schedule.Len() < 2 {
		return nil, fmt.Errorf("NewFixedRateBond: schedule needs two dates: %w", ErrInvalidBond)
	}
	periods := in.Schedule.Periods()
	if len(in.CouponRates) == 0 {
		return nil, fmt.Errorf("NewFixedRateBond: CouponRates are required: %w", ErrInvalidBond)
	}
	if len(in.CouponRates) > len(periods) {
		return nil, fmt.Errorf("NewFixedRateBond: %d coupon rates for %d periods: %w", len(in.CouponRates), len(periods), ErrInvalidBond)
	}
	for _, r := range in.CouponRates {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("NewFixedRateBond: coupon rate %v: %w", r, ErrInvalidBond)
		}
	}
	redemption := in.Redemption
	if redemption == 0 {
		redemption = 100
	}
	if !(redemption > 0) || math.IsInf(redemption, 0) {
		return nil, fmt.Errorf("NewFixedRateBond: redemption %v: %w", in.Redemption, ErrInvalidBond)
	}
	payConv := in.PaymentConvention
	if payConv == "" {
		payConv = calendar.Following
	}

	sched := in.Schedule
	cal := sched.Calendar()
	flows := make([]CashFlow, 0, len(periods))
	for i, p := range periods {
		refStart, refEnd, err := referencePeriod(sched, i, p)
		if err != nil {
			return nil, fmt.Errorf("NewFixedRateBond: period %d: %w", i+1, err)
		}
		pay, err := cal.Adjust(p.EndDate, payConv)
		if err != nil {
			return nil, fmt.Errorf("NewFixedRateBond: period %d: %w", i+1, err)
		}
		rate := in.CouponRates[min(i, len(in.CouponRates)-1)]
		yf, err := in.AccrualDayCounter.YearFractionRef(p.StartDate, p.EndDate, refStart, refEnd)
		if err != nil {
			return nil, fmt.Errorf("NewFixedRateBond: period %d: %w", i+1, err)
		}
		flows = append(flows, CashFlow{
			Date:         pay,
			Coupon:       in.FaceAmount * rate * yf,
			AccrualStart: p.StartDate,
			AccrualEnd:   p.EndDate,
			RefStart:     refStart,
			RefEnd:       refEnd,
			Rate:         rate,
			Nominal:      in.FaceAmount,
			DayCounter:   in.AccrualDayCounter,
		})
	}
	flows[len(flows)-1].Principal = in.FaceAmount * redemption / 100

	freq, err := sched.Tenor().Frequency()
	if err != nil {
		freq = date.NoFrequency
	}
	return &FixedRateBond{
		settlementDays: in.SettlementDays,
		cal:            cal,
		face:           in.FaceAmount,
		maturity:       sched.EndDate(),
		issue:          in.IssueDate,
		dc:             in.AccrualDayCounter,
		frequency:      freq,
		flows:          flows,
	}, nil
}

// referencePeriod returns the notional coupon period for period i: the
// accrual period itself when regular, otherwise end−tenor for a leading stub
// and start+tenor for a trailing one.
func referencePeriod(s *schedule.Schedule, i int, p schedule.SchedulePeriod) (date.Date, date.Date, error) {
	tenor := s.Tenor()
	if p.Regular || tenor.IsZero() {
		return p.StartDate, p.EndDate, nil
	}
	cal, conv := s.Calendar(), s.Convention()
	if conv == "" {
		conv = calendar.Unadjusted
	}
	if i == 0 {
		start, err := cal.Adjust(p.EndDate.AddPeriod(tenor.Neg()), conv)
		if err != nil {
			return date.Date{}, date.Date{}, err
		}
		return start, p.EndDate, nil
	}
	end, err := cal.Adjust(p.StartDate.AddPeriod(tenor), conv)
	if err != nil {
		return date.Date{}, date.Date{}, err
	}
	return p.StartDate, end, nil
}

func (b *FixedRateBond) CashFlows() []CashFlow           { return append([]CashFlow(nil), b.flows...) }
func (b *FixedRateBond) MaturityDate() date.Date         { return b.maturity }
func (b *FixedRateBond) IssueDate() date.Date            { return b.issue }
func (b *FixedRateBond) SettlementDays() int             { return b.settlementDays }
func (b *FixedRateBond) Calendar() calendar.Calendar     { return b.cal }
func (b *FixedRateBond) FaceAmount() float64             { return b.face }
func (b *FixedRateBond) DayCounter() daycount.DayCounter { return b.dc }

// Frequency is the coupon frequency implied by the schedule tenor.
func (b *FixedRateBond) Frequency() date.Frequency { return b.frequency }
