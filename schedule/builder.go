package schedule

import (
	"fmt"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/logger"
	"github.com/meenmo/bondlib/pricing"
)

// Builder accumulates schedule terms and produces a Schedule on Build.
//
// Defaults: Following for intermediate dates, Unadjusted for the effective
// and termination dates, Backward generation, no end-of-month rolling.
// Changing a builder after Build seals it; the next Build fails with
// ErrBuilderSealed.
type Builder struct {
	ctx             pricing.Context
	effective       date.Date
	termination     date.Date
	tenor           date.Period
	cal             calendar.Calendar
	convention      calendar.BusinessDayConvention
	effectiveConv   calendar.BusinessDayConvention
	terminationConv calendar.BusinessDayConvention
	rule            DateGenerationRule
	endOfMonth      bool
	firstDate       date.Date
	nextToLastDate  date.Date

	built  bool
	sealed bool
}

// NewBuilder starts a schedule between effective and termination rolling by tenor on cal.
// A zero effective date is allowed for Backward schedules; a placeholder is then
// derived from the evaluation date of ctx.
func NewBuilder(ctx pricing.Context, effective, termination date.Date, tenor date.Period, cal calendar.Calendar) *Builder {
	return &Builder{
		ctx:         ctx,
		effective:   effective,
		termination: termination,
		tenor:       tenor,
		cal:         cal,
	}
}

func (b *Builder) mutable() bool {
	if b.built {
		b.sealed = true
		return false
	}
	return true
}

// WithConvention sets the convention for intermediate dates.
func (b *Builder) WithConvention(c calendar.BusinessDayConvention) *Builder {
	if b.mutable() {
		b.convention = c
	}
	return b
}

// WithEffectiveConvention sets the convention applied to the first date.
func (b *Builder) WithEffectiveConvention(c calendar.BusinessDayConvention) *Builder {
	if b.mutable() {
		b.effectiveConv = c
	}
	return b
}

// WithTerminationConvention sets the convention applied to the last date.
func (b *Builder) WithTerminationConvention(c calendar.BusinessDayConvention) *Builder {
	if b.mutable() {
		b.terminationConv = c
	}
	return b
}

func (b *Builder) WithRule(r DateGenerationRule) *Builder {
	if b.mutable() {
		b.rule = r
	}
	return b
}

func (b *Builder) Forwards() *Builder  { return b.WithRule(Forward) }
func (b *Builder) Backwards() *Builder { return b.WithRule(Backward) }

// WithEndOfMonth rolls month-end anchors to month ends. Ignored for tenors
// shorter than one month.
func (b *Builder) WithEndOfMonth(eom bool) *Builder {
	if b.mutable() {
		b.endOfMonth = eom
	}
	return b
}

// WithFirstDate sets the end of an irregular first period.
func (b *Builder) WithFirstDate(d date.Date) *Builder {
	if b.mutable() {
		b.firstDate = d
	}
	return b
}

// WithNextToLastDate sets the start of an irregular last period.
func (b *Builder) WithNextToLastDate(d date.Date) *Builder {
	if b.mutable() {
		b.nextToLastDate = d
	}
	return b
}

// Build generates the schedule.
func (b *Builder) Build() (*Schedule, error) {
	if b.sealed {
		return nil, fmt.Errorf("schedule.Build: %w", ErrBuilderSealed)
	}
	b.built = true
	return b.generate()
}

type generator struct {
	cal   calendar.Calendar
	dates []date.Date
	reg   []bool
}

func (g *generator) same(a, b date.Date, c calendar.BusinessDayConvention) (bool, error) {
	x, err := g.cal.Adjust(a, c)
	if err != nil {
		return false, err
	}
	y, err := g.cal.Adjust(b, c)
	if err != nil {
		return false, err
	}
	return x == y, nil
}

func (g *generator) prepend(d date.Date, regular bool) {
	g.dates = append([]date.Date{d}, g.dates...)
	g.reg = append([]bool{regular}, g.reg...)
}

func (g *generator) push(d date.Date, regular bool) {
	g.dates = append(g.dates, d)
	g.reg = append(g.reg, regular)
}

func allowsEndOfMonth(p date.Period) bool {
	switch p.Unit {
	case date.Months:
		return p.Length >= 1
	case date.Years:
		return p.Length >= 1
	}
	return false
}

func orDefault(c, def calendar.BusinessDayConvention) calendar.BusinessDayConvention {
	if c == "" {
		return def
	}
	return c
}

func (b *Builder) generate() (*Schedule, error) {
	conv := orDefault(b.convention, calendar.Following)
	effConv := orDefault(b.effectiveConv, calendar.Unadjusted)
	termConv := orDefault(b.terminationConv, calendar.Unadjusted)
	rule := b.rule
	if rule == "" {
		rule = Backward
	}
	tenor := b.tenor
	eom := b.endOfMonth && allowsEndOfMonth(tenor)
	effective, termination := b.effective, b.termination
	first, nextToLast := b.firstDate, b.nextToLastDate
	if first == effective {
		first = date.Date{}
	}
	if nextToLast == termination {
		nextToLast = date.Date{}
	}

	if termination.IsZero() {
		return nil, fmt.Errorf("schedule.Build: null termination date: %w", ErrInvalidSchedule)
	}
	if effective.IsZero() && first.IsZero() && rule == Backward {
		eval := b.ctx.EvalDate
		if eval.IsZero() || !eval.Before(termination) {
			return nil, fmt.Errorf("schedule.Build: evaluation date %s not before termination %s: %w", eval, termination, ErrInvalidSchedule)
		}
		anchor := termination
		if !nextToLast.IsZero() {
			anchor = nextToLast
		}
		years := anchor.Sub(eval)/366 + 1
		effective = anchor.AddPeriod(date.NewPeriod(-years, date.Years))
	}
	if effective.IsZero() {
		return nil, fmt.Errorf("schedule.Build: null effective date: %w", ErrInvalidSchedule)
	}
	if !effective.Before(termination) {
		return nil, fmt.Errorf("schedule.Build: effective %s not before termination %s: %w", effective, termination, ErrInvalidSchedule)
	}
	if tenor.Length <= 0 && rule != Zero {
		return nil, fmt.Errorf("schedule.Build: non-positive tenor %s with %s rule: %w", tenor, rule, ErrInvalidSchedule)
	}
	switch rule {
	case Backward, Forward, Zero:
	default:
		return nil, fmt.Errorf("schedule.Build: unknown rule %q: %w", rule, ErrInvalidSchedule)
	}
	if !first.IsZero() {
		if rule == Zero {
			return nil, fmt.Errorf("schedule.Build: first date incompatible with %s rule: %w", rule, ErrInvalidSchedule)
		}
		if !first.After(effective) || first.After(termination) {
			return nil, fmt.Errorf("schedule.Build: first date %s outside (%s, %s]: %w", first, effective, termination, ErrInvalidSchedule)
		}
	}
	if !nextToLast.IsZero() {
		if rule == Zero {
			return nil, fmt.Errorf("schedule.Build: next-to-last date incompatible with %s rule: %w", rule, ErrInvalidSchedule)
		}
		if nextToLast.Before(effective) || !nextToLast.Before(termination) {
			return nil, fmt.Errorf("schedule.Build: next-to-last date %s outside [%s, %s): %w", nextToLast, effective, termination, ErrInvalidSchedule)
		}
	}

	g := &generator{cal: b.cal}
	var seed date.Date
	switch rule {
	case Zero:
		tenor = date.NewPeriod(0, date.Years)
		g.dates = []date.Date{effective, termination}
		g.reg = []bool{true}

	case Backward:
		g.dates = []date.Date{termination}
		seed = termination
		if !nextToLast.IsZero() {
			g.prepend(nextToLast, seed.AddPeriodEOM(tenor.Neg(), eom) == nextToLast)
			seed = nextToLast
		}
		exit := effective
		if !first.IsZero() {
			exit = first
		}
		for periods := 1; ; periods++ {
			temp := seed.AddPeriodEOM(tenor.Mul(-periods), eom)
			if temp.Before(exit) {
				if !first.IsZero() {
					same, err := g.same(g.dates[0], first, conv)
					if err != nil {
						return nil, err
					}
					if !same {
						g.prepend(first, false)
					}
				}
				break
			}
			same, err := g.same(g.dates[0], temp, conv)
			if err != nil {
				return nil, err
			}
			if same {
				logger.L().Debug("schedule.skip_duplicate", "date", temp.String(), "rule", string(rule))
				continue
			}
			g.prepend(temp, true)
		}
		same, err := g.same(g.dates[0], effective, conv)
		if err != nil {
			return nil, err
		}
		if !same {
			g.prepend(effective, false)
		}

	case Forward:
		g.dates = []date.Date{effective}
		seed = effective
		if !first.IsZero() {
			g.push(first, seed.AddPeriodEOM(tenor, eom) == first)
			seed = first
		}
		exit := termination
		if !nextToLast.IsZero() {
			exit = nextToLast
		}
		for periods := 1; ; periods++ {
			temp := seed.AddPeriodEOM(tenor.Mul(periods), eom)
			last := g.dates[len(g.dates)-1]
			if temp.After(exit) {
				if !nextToLast.IsZero() {
					same, err := g.same(last, nextToLast, conv)
					if err != nil {
						return nil, err
					}
					if !same {
						g.push(nextToLast, false)
					}
				}
				break
			}
			same, err := g.same(last, temp, conv)
			if err != nil {
				return nil, err
			}
			if same {
				logger.L().Debug("schedule.skip_duplicate", "date", temp.String(), "rule", string(rule))
				continue
			}
			g.push(temp, true)
		}
		same, err := g.same(g.dates[len(g.dates)-1], termination, termConv)
		if err != nil {
			return nil, err
		}
		if !same {
			g.push(termination, false)
		}
	}

	if err := g.adjust(conv, effConv, termConv, eom && !seed.IsZero() && b.cal.IsEndOfMonth(seed)); err != nil {
		return nil, err
	}
	g.dropDegenerate()
	if len(g.dates) < 2 {
		return nil, fmt.Errorf("schedule.Build: degenerate single date %s (effective %s, termination %s): %w",
			g.dates[0], effective, termination, ErrInvalidSchedule)
	}
	for i := 1; i < len(g.dates); i++ {
		if !g.dates[i].After(g.dates[i-1]) {
			return nil, fmt.Errorf("schedule.Build: %s not after %s after adjustment: %w", g.dates[i], g.dates[i-1], ErrInvalidSchedule)
		}
	}

	return &Schedule{
		dates:           g.dates,
		regular:         g.reg,
		cal:             b.cal,
		convention:      conv,
		terminationConv: termConv,
		tenor:           tenor,
		rule:            rule,
		endOfMonth:      eom,
		firstDate:       first,
		nextToLastDate:  nextToLast,
	}, nil
}

// adjust rolls every date onto a business day. The first and last dates use
// their own conventions. With snapEOM intermediate dates move to the end of
// their month.
func (g *generator) adjust(conv, effConv, termConv calendar.BusinessDayConvention, snapEOM bool) error {
	n := len(g.dates)
	var err error
	for i, d := range g.dates {
		switch {
		case i == 0:
			g.dates[i], err = g.cal.Adjust(d, effConv)
		case i == n-1:
			g.dates[i], err = g.cal.Adjust(d, termConv)
		case snapEOM && conv == calendar.Unadjusted:
			g.dates[i] = d.EndOfMonth()
		case snapEOM:
			g.dates[i], err = g.cal.LastBusinessDayOfMonth(d)
		default:
			g.dates[i], err = g.cal.Adjust(d, conv)
		}
		if err != nil {
			return fmt.Errorf("schedule.Build: adjusting %s: %w", d, err)
		}
	}
	return nil
}

// dropDegenerate removes a next-to-last date that adjustment pushed onto or
// past the last date, and likewise for the second date against the first.
func (g *generator) dropDegenerate() {
	if n := len(g.dates); n >= 2 && !g.dates[n-2].Before(g.dates[n-1]) {
		if m := len(g.reg); m >= 2 {
			g.reg[m-2] = g.dates[n-2] == g.dates[n-1]
		}
		g.dates[n-2] = g.dates[n-1]
		g.dates = g.dates[:n-1]
		g.reg = g.reg[:len(g.reg)-1]
	}
	if len(g.dates) >= 2 && !g.dates[1].After(g.dates[0]) {
		if len(g.reg) >= 2 {
			g.reg[1] = g.dates[1] == g.dates[0]
		}
		g.dates[1] = g.dates[0]
		g.dates = g.dates[1:]
		g.reg = g.reg[1:]
	}
}
