package date

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// TimeUnit is the unit of a Period.
type TimeUnit int

const (
	Days TimeUnit = iota
	Weeks
	Months
	Years
)

func (u TimeUnit) String() string {
	switch u {
	case Days:
		return "D"
	case Weeks:
		return "W"
	case Months:
		return "M"
	case Years:
		return "Y"
	default:
		return "TimeUnit(" + strconv.Itoa(int(u)) + ")"
	}
}

var (
	// ErrInvalidPeriod is returned when a tenor string cannot be parsed.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrIncomparablePeriods is returned when two periods have no exact ordering (1M vs 30D).
	ErrIncomparablePeriods = errors.New("incomparable periods")
)

// Period is a signed count of a time unit, e.g. 6M or -2D.
type Period struct {
	Length int
	Unit   TimeUnit
}

// NewPeriod is shorthand for Period{Length: n, Unit: u}.
func NewPeriod(n int, u TimeUnit) Period { return Period{Length: n, Unit: u} }

// String renders the period in tenor notation ("6M", "1Y").
func (p Period) String() string {
	return strconv.Itoa(p.Length) + p.Unit.String()
}

// IsZero reports whether the period has zero length.
func (p Period) IsZero() bool { return p.Length == 0 }

// Neg returns the period with its sign flipped.
func (p Period) Neg() Period { return Period{Length: -p.Length, Unit: p.Unit} }

// Mul scales the period length by n.
func (p Period) Mul(n int) Period { return Period{Length: p.Length * n, Unit: p.Unit} }

// Normalized rewrites the period in its largest exact unit: 12M -> 1Y, 14D -> 2W.
// Date arithmetic is unaffected; this only matters for comparisons and display.
func (p Period) Normalized() Period {
	switch p.Unit {
	case Days:
		if p.Length != 0 && p.Length%7 == 0 {
			return Period{Length: p.Length / 7, Unit: Weeks}
		}
	case Months:
		if p.Length != 0 && p.Length%12 == 0 {
			return Period{Length: p.Length / 12, Unit: Years}
		}
	}
	if p.Length == 0 {
		return Period{Unit: Days}
	}
	return p
}

// Equal reports whether p and q describe the same span once normalized.
func (p Period) Equal(q Period) bool {
	if p.Length == 0 && q.Length == 0 {
		return true
	}
	c, err := p.Compare(q)
	return err == nil && c == 0
}

// Compare orders two periods. Day/week periods cannot be ordered against
// month/year periods unless the answer is unambiguous.
func (p Period) Compare(q Period) (int, error) {
	if p.Length == 0 || q.Length == 0 {
		return sign(p.Length) - sign(q.Length), nil
	}
	pDays, pDaysOK := p.inDays()
	qDays, qDaysOK := q.inDays()
	if pDaysOK && qDaysOK {
		return cmpInt(pDays, qDays), nil
	}
	pMonths, pMonthsOK := p.inMonths()
	qMonths, qMonthsOK := q.inMonths()
	if pMonthsOK && qMonthsOK {
		return cmpInt(pMonths, qMonths), nil
	}

	// Mixed units: compare using the bounds a month can take (28..31 days).
	if pDaysOK {
		lo, hi := monthBounds(qMonths)
		if pDays < lo {
			return -1, nil
		}
		if pDays > hi {
			return 1, nil
		}
	} else {
		lo, hi := monthBounds(pMonths)
		if hi < qDays {
			return -1, nil
		}
		if lo > qDays {
			return 1, nil
		}
	}
	return 0, fmt.Errorf("Period.Compare: %s vs %s: %w", p, q, ErrIncomparablePeriods)
}

func (p Period) inDays() (int, bool) {
	switch p.Unit {
	case Days:
		return p.Length, true
	case Weeks:
		return 7 * p.Length, true
	}
	return 0, false
}

func (p Period) inMonths() (int, bool) {
	switch p.Unit {
	case Months:
		return p.Length, true
	case Years:
		return 12 * p.Length, true
	}
	return 0, false
}

// ParsePeriod reads tenor notation such as "3M", "10Y", "2W", "-1D".
func ParsePeriod(s string) (Period, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if len(raw) < 2 {
		return Period{}, fmt.Errorf("ParsePeriod: %q: %w", s, ErrInvalidPeriod)
	}
	n, err := strconv.Atoi(raw[:len(raw)-1])
	if err != nil {
		return Period{}, fmt.Errorf("ParsePeriod: %q: %w", s, ErrInvalidPeriod)
	}
	var u TimeUnit
	switch raw[len(raw)-1] {
	case 'D':
		u = Days
	case 'W':
		u = Weeks
	case 'M':
		u = Months
	case 'Y':
		u = Years
	default:
		return Period{}, fmt.Errorf("ParsePeriod: unsupported unit in %q: %w", s, ErrInvalidPeriod)
	}
	return Period{Length: n, Unit: u}, nil
}

// MustParsePeriod is like ParsePeriod but panics on bad input.
func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// AddPeriod returns d shifted by p.
//
// Day and week periods move by calendar days. Month periods keep the day of
// month, clamped to the target month's length (Jan 31 + 1M = Feb 28/29).
// Year periods keep month and day, except Feb 29 maps to Feb 28 in non-leap
// years.
func (d Date) AddPeriod(p Period) Date {
	switch p.Unit {
	case Days:
		return d.AddDays(p.Length)
	case Weeks:
		return d.AddDays(7 * p.Length)
	case Months:
		return d.addMonths(p.Length)
	case Years:
		y := d.c.Year + p.Length
		day := d.c.Day
		if d.c.Month == time.February && day == 29 && !IsLeap(y) {
			day = 28
		}
		return Date{c: civil.Date{Year: y, Month: d.c.Month, Day: day}}
	}
	return d
}

// AddPeriodEOM is AddPeriod with end-of-month snapping: when eom is set, the
// unit is months or years and d is the last day of its month, the result is
// the last day of the target month.
func (d Date) AddPeriodEOM(p Period, eom bool) Date {
	out := d.AddPeriod(p)
	if eom && (p.Unit == Months || p.Unit == Years) && d.IsEndOfMonth() {
		return out.EndOfMonth()
	}
	return out
}

func (d Date) addMonths(n int) Date {
	total := int(d.c.Month) - 1 + n
	y := d.c.Year + floorDiv(total, 12)
	m := time.Month(total - 12*floorDiv(total, 12) + 1)
	day := d.c.Day
	if last := DaysInMonth(y, m); day > last {
		day = last
	}
	return Date{c: civil.Date{Year: y, Month: m, Day: day}}
}

// monthBounds returns the shortest and longest span in days of n months.
func monthBounds(n int) (int, int) {
	a, b := n*28, n*31
	if a > b {
		a, b = b, a
	}
	return a, b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func cmpInt(a, b int) int { return sign(a - b) }
