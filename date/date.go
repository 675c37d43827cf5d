package date

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Layout is the ISO-8601 layout used to read and write dates.
const Layout = "2006-01-02"

// Supported year range.
const (
	MinYear = 1901
	MaxYear = 2199
)

// ErrInvalidDate is returned for impossible day/month/year triples and for
// years outside [MinYear, MaxYear].
var ErrInvalidDate = errors.New("invalid date")

// serialEpoch is day zero of the spreadsheet serial numbering.
var serialEpoch = civil.Date{Year: 1899, Month: time.December, Day: 30}

// Date is a Gregorian calendar day with no time-of-day or location.
//
// Dates are immutable values and compare with ==. The zero value is the null
// date and is reported by IsZero.
type Date struct {
	c civil.Date
}

// New returns the date for the given year, month and day.
func New(year int, month time.Month, day int) (Date, error) {
	c := civil.Date{Year: year, Month: month, Day: day}
	if !c.IsValid() {
		return Date{}, fmt.Errorf("date.New: %04d-%02d-%02d: %w", year, int(month), day, ErrInvalidDate)
	}
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("date.New: year %d outside [%d, %d]: %w", year, MinYear, MaxYear, ErrInvalidDate)
	}
	return Date{c: c}, nil
}

// MustNew is like New but panics on an invalid date. Intended for constants and tests.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (Date, error) {
	c, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("date.Parse: %q: %w", s, ErrInvalidDate)
	}
	return New(c.Year, c.Month, c.Day)
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) (Date, error) {
	c := civil.DateOf(t)
	return New(c.Year, c.Month, c.Day)
}

// FromSerial returns the date for a spreadsheet serial number (1 == 1899-12-31).
func FromSerial(serial int) (Date, error) {
	c := serialEpoch.AddDays(serial)
	return New(c.Year, c.Month, c.Day)
}

// Today returns the current date in UTC.
func Today() Date {
	return Date{c: civil.DateOf(time.Now().UTC())}
}

func (d Date) Year() int             { return d.c.Year }
func (d Date) Month() time.Month     { return d.c.Month }
func (d Date) Day() int              { return d.c.Day }
func (d Date) IsZero() bool          { return d.c == civil.Date{} }
func (d Date) Civil() civil.Date     { return d.c }
func (d Date) Time() time.Time       { return d.c.In(time.UTC) }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }
func (d Date) DayOfYear() int        { return d.Time().YearDay() }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return "null date"
	}
	return d.c.String()
}

// Serial returns the spreadsheet serial number of the date.
func (d Date) Serial() int { return d.c.DaysSince(serialEpoch) }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.c.Before(x.c) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.c.After(x.c) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// Compare returns -1, 0 or +1 when d is before, equal to or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.Before(x):
		return -1
	case d.After(x):
		return 1
	default:
		return 0
	}
}

// AddDays returns d shifted by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date { return Date{c: d.c.AddDays(n)} }

// Sub returns the number of calendar days from x to d.
func (d Date) Sub(x Date) int { return d.c.DaysSince(x.c) }

// DaysUntil returns the number of calendar days from d to x.
func (d Date) DaysUntil(x Date) int { return x.c.DaysSince(d.c) }

// IsEndOfMonth reports whether d is the last calendar day of its month.
func (d Date) IsEndOfMonth() bool { return d.c.Day == DaysInMonth(d.c.Year, d.c.Month) }

// EndOfMonth returns the last calendar day of d's month.
func (d Date) EndOfMonth() Date {
	return Date{c: civil.Date{Year: d.c.Year, Month: d.c.Month, Day: DaysInMonth(d.c.Year, d.c.Month)}}
}

// StartOfMonth returns the first calendar day of d's month.
func (d Date) StartOfMonth() Date {
	return Date{c: civil.Date{Year: d.c.Year, Month: d.c.Month, Day: 1}}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return d.c.MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NthWeekday returns the n-th (1-based) weekday wd of month m in year y,
// e.g. the third Monday of January.
func NthWeekday(n int, wd time.Weekday, m time.Month, y int) (Date, error) {
	if n < 1 || n > 5 {
		return Date{}, fmt.Errorf("date.NthWeekday: n=%d outside [1, 5]: %w", n, ErrInvalidDate)
	}
	first, err := New(y, m, 1)
	if err != nil {
		return Date{}, err
	}
	skip := (int(wd) - int(first.Weekday()) + 7) % 7
	day := 1 + skip + 7*(n-1)
	if day > DaysInMonth(y, m) {
		return Date{}, fmt.Errorf("date.NthWeekday: no %d. %s in %s %d: %w", n, wd, m, y, ErrInvalidDate)
	}
	return first.AddDays(day - 1), nil
}
