package calendar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meenmo/bondlib/date"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	NULL     CalendarID = "NULL"
	WEEKENDS CalendarID = "WEEKENDS"
	TARGET   CalendarID = "TARGET"
	USD      CalendarID = "USD"
	NYSE     CalendarID = "NYSE"
	USGOV    CalendarID = "USGOV"
	USLIBOR  CalendarID = "USLIBOR"
	GBP      CalendarID = "GBP"
	JPN      CalendarID = "JPN"
	CHF      CalendarID = "CHF"
	BRL      CalendarID = "BRL"
	BOVESPA  CalendarID = "BOVESPA"
	ITL      CalendarID = "ITL"
	MIL      CalendarID = "MIL"
)

// maxScanDays caps every day-by-day search for a business day.
const maxScanDays = 3650

var (
	// ErrNoBusinessDay is returned when no business day is found within maxScanDays.
	ErrNoBusinessDay = errors.New("no business day within scan bound")
	// ErrUnknownCalendar is returned by ForID for unregistered identifiers.
	ErrUnknownCalendar = errors.New("unknown calendar")
	// ErrUnknownConvention is returned for unrecognized business-day conventions.
	ErrUnknownConvention = errors.New("unknown business day convention")
	// ErrInvalidRange is returned when a date range is reversed.
	ErrInvalidRange = errors.New("invalid date range")
)

var markets = map[CalendarID]Market{
	NULL:     Null{},
	WEEKENDS: WeekendsOnly{},
	TARGET:   Target{},
	USD:      UnitedStatesSettlement{},
	NYSE:     UnitedStatesNYSE{},
	USGOV:    UnitedStatesGovernmentBond{},
	USLIBOR:  UnitedStatesLiborImpact{},
	GBP:      UnitedKingdomSettlement{},
	JPN:      Japan{},
	CHF:      Switzerland{},
	BRL:      BrazilSettlement{},
	BOVESPA:  BrazilExchange{},
	ITL:      ItalySettlement{},
	MIL:      ItalyExchange{},
}

// ForID returns the calendar registered under id (case-insensitive).
func ForID(id CalendarID) (Calendar, error) {
	m, ok := markets[CalendarID(strings.ToUpper(strings.TrimSpace(string(id))))]
	if !ok {
		return Calendar{}, fmt.Errorf("calendar.ForID: %q: %w", id, ErrUnknownCalendar)
	}
	return New(m), nil
}

// Calendar answers business-day questions for one market, optionally with
// extra holidays added or removed. The zero value behaves like the Null market.
//
// A Calendar is never mutated after construction and may be shared freely.
type Calendar struct {
	market  Market
	added   map[date.Date]struct{}
	removed map[date.Date]struct{}
}

// New wraps a market rule set.
func New(m Market) Calendar {
	return Calendar{market: m}
}

func (c Calendar) rules() Market {
	if c.market == nil {
		return Null{}
	}
	return c.market
}

// Name returns the market name.
func (c Calendar) Name() string { return c.rules().Name() }

// Market returns the underlying rule set.
func (c Calendar) Market() Market { return c.rules() }

// WithHolidays returns a copy of c with the given dates closed.
func (c Calendar) WithHolidays(days ...date.Date) Calendar {
	out := c.clone()
	for _, d := range days {
		delete(out.removed, d)
		if c.rules().IsBusinessDay(d) {
			out.added[d] = struct{}{}
		}
	}
	return out
}

// WithoutHolidays returns a copy of c with the given dates open. Weekends
// removed this way become business days too.
func (c Calendar) WithoutHolidays(days ...date.Date) Calendar {
	out := c.clone()
	for _, d := range days {
		delete(out.added, d)
		if !c.rules().IsBusinessDay(d) {
			out.removed[d] = struct{}{}
		}
	}
	return out
}

func (c Calendar) clone() Calendar {
	out := Calendar{
		market:  c.market,
		added:   make(map[date.Date]struct{}, len(c.added)),
		removed: make(map[date.Date]struct{}, len(c.removed)),
	}
	for d := range c.added {
		out.added[d] = struct{}{}
	}
	for d := range c.removed {
		out.removed[d] = struct{}{}
	}
	return out
}

// IsBusinessDay checks weekends and holiday sets.
func (c Calendar) IsBusinessDay(d date.Date) bool {
	if _, ok := c.added[d]; ok {
		return false
	}
	if _, ok := c.removed[d]; ok {
		return true
	}
	return c.rules().IsBusinessDay(d)
}

// IsHoliday is the negation of IsBusinessDay.
func (c Calendar) IsHoliday(d date.Date) bool { return !c.IsBusinessDay(d) }

// IsWeekend reports whether d falls on the market's weekend.
func (c Calendar) IsWeekend(d date.Date) bool { return c.rules().IsWeekend(d.Weekday()) }

// roll moves from d by step days until a business day is reached.
func (c Calendar) roll(d date.Date, step int) (date.Date, error) {
	start := d
	for i := 0; c.IsHoliday(d); i++ {
		if i >= maxScanDays {
			return date.Date{}, fmt.Errorf("calendar %s: from %s: %w", c.Name(), start, ErrNoBusinessDay)
		}
		d = d.AddDays(step)
	}
	return d, nil
}

// Adjust moves a non-business day onto a business day per conv. The empty
// convention is treated as Unadjusted.
func (c Calendar) Adjust(d date.Date, conv BusinessDayConvention) (date.Date, error) {
	switch conv {
	case Unadjusted, "":
		return d, nil
	case Following:
		return c.roll(d, 1)
	case ModifiedFollowing, HalfMonthModifiedFollowing:
		out, err := c.roll(d, 1)
		if err != nil {
			return date.Date{}, err
		}
		if out.Month() != d.Month() {
			return c.roll(d, -1)
		}
		if conv == HalfMonthModifiedFollowing && d.Day() <= 15 && out.Day() > 15 {
			return c.roll(d, -1)
		}
		return out, nil
	case Preceding:
		return c.roll(d, -1)
	case ModifiedPreceding:
		out, err := c.roll(d, -1)
		if err != nil {
			return date.Date{}, err
		}
		if out.Month() != d.Month() {
			return c.roll(d, 1)
		}
		return out, nil
	case Nearest:
		up, down := d, d
		for i := 0; c.IsHoliday(up) && c.IsHoliday(down); i++ {
			if i >= maxScanDays {
				return date.Date{}, fmt.Errorf("calendar %s: nearest to %s: %w", c.Name(), d, ErrNoBusinessDay)
			}
			up, down = up.AddDays(1), down.AddDays(-1)
		}
		if c.IsHoliday(up) {
			return down, nil
		}
		return up, nil
	}
	return date.Date{}, fmt.Errorf("calendar.Adjust: %q: %w", conv, ErrUnknownConvention)
}

// Advance moves n business days from d (n can be negative). With n == 0 the
// date is adjusted with Following.
func (c Calendar) Advance(d date.Date, n int) (date.Date, error) {
	if n == 0 {
		return c.Adjust(d, Following)
	}
	step := 1
	if n < 0 {
		step = -1
	}
	var err error
	for n != 0 {
		d, err = c.roll(d.AddDays(step), step)
		if err != nil {
			return date.Date{}, err
		}
		n -= step
	}
	return d, nil
}

// AdvancePeriod moves d by p. Day periods count business days; other units
// move on the calendar and then adjust with conv. With eom set and d the last
// business day of its month, month and year steps land on the last business
// day of the target month.
func (c Calendar) AdvancePeriod(d date.Date, p date.Period, conv BusinessDayConvention, eom bool) (date.Date, error) {
	switch {
	case p.Length == 0:
		return c.Adjust(d, conv)
	case p.Unit == date.Days:
		return c.Advance(d, p.Length)
	case p.Unit == date.Weeks:
		return c.Adjust(d.AddPeriod(p), conv)
	}
	target := d.AddPeriod(p)
	if eom && c.IsEndOfMonth(d) {
		return c.LastBusinessDayOfMonth(target)
	}
	return c.Adjust(target, conv)
}

// LastBusinessDayOfMonth returns the last business day of the month containing d.
func (c Calendar) LastBusinessDayOfMonth(d date.Date) (date.Date, error) {
	return c.Adjust(d.EndOfMonth(), Preceding)
}

// IsEndOfMonth checks if d is on or after the last business day of its month.
func (c Calendar) IsEndOfMonth(d date.Date) bool {
	next, err := c.Adjust(d.AddDays(1), Following)
	if err != nil {
		return false
	}
	return next.Month() != d.Month()
}

// BusinessDaysBetween counts business days between from and to. The result is
// negative when to is before from.
func (c Calendar) BusinessDaysBetween(from, to date.Date, includeFirst, includeLast bool) int {
	if from == to {
		if includeFirst && includeLast && c.IsBusinessDay(from) {
			return 1
		}
		return 0
	}
	lo, hi := from, to
	if to.Before(from) {
		lo, hi = to, from
	}
	n := 0
	for d := lo; !d.After(hi); d = d.AddDays(1) {
		if c.IsBusinessDay(d) {
			n++
		}
	}
	if !includeFirst && c.IsBusinessDay(from) {
		n--
	}
	if !includeLast && c.IsBusinessDay(to) {
		n--
	}
	if to.Before(from) {
		return -n
	}
	return n
}

// HolidayList returns the holidays in [from, to], optionally including weekends.
func (c Calendar) HolidayList(from, to date.Date, includeWeekends bool) ([]date.Date, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("calendar.HolidayList: %s after %s: %w", from, to, ErrInvalidRange)
	}
	var out []date.Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		if c.IsHoliday(d) && (includeWeekends || !c.IsWeekend(d)) {
			out = append(out, d)
		}
	}
	return out, nil
}

// BusinessDayList returns the business days in [from, to].
func (c Calendar) BusinessDayList(from, to date.Date) ([]date.Date, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("calendar.BusinessDayList: %s after %s: %w", from, to, ErrInvalidRange)
	}
	var out []date.Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		if c.IsBusinessDay(d) {
			out = append(out, d)
		}
	}
	return out, nil
}
