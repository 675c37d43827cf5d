package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// Market is the holiday rule set of one financial center.
//
// Implementations must be pure: the answer for a date never changes.
type Market interface {
	Name() string
	IsBusinessDay(d date.Date) bool
	IsWeekend(w time.Weekday) bool
}

func isWesternWeekend(w time.Weekday) bool {
	return w == time.Saturday || w == time.Sunday
}

// Null treats every day, weekends included, as a business day.
type Null struct{}

func (Null) Name() string                 { return "Null" }
func (Null) IsBusinessDay(date.Date) bool { return true }
func (Null) IsWeekend(time.Weekday) bool  { return false }

// WeekendsOnly closes on Saturdays and Sundays only.
type WeekendsOnly struct{}

func (WeekendsOnly) Name() string                  { return "Weekends only" }
func (WeekendsOnly) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }
func (WeekendsOnly) IsBusinessDay(d date.Date) bool {
	return !isWesternWeekend(d.Weekday())
}

// dayInfo collects the fields holiday rules are written against.
type dayInfo struct {
	d  int
	m  time.Month
	y  int
	w  time.Weekday
	dd int // day of year
	em int // Easter Monday, day of year
}

func infoOf(t date.Date) dayInfo {
	return dayInfo{
		d:  t.Day(),
		m:  t.Month(),
		y:  t.Year(),
		w:  t.Weekday(),
		dd: t.DayOfYear(),
		em: easterMonday(t.Year()),
	}
}

func (i dayInfo) isGoodFriday() bool   { return i.dd == i.em-3 }
func (i dayInfo) isEasterMonday() bool { return i.dd == i.em }

// observed reports whether i is the fixed holiday day/m, moved to Monday when it
// falls on a Sunday and to Friday when it falls on a Saturday.
func (i dayInfo) observed(day int, m time.Month) bool {
	if i.m != m {
		return false
	}
	return i.d == day || (i.d == day+1 && i.w == time.Monday) || (i.d == day-1 && i.w == time.Friday)
}

// easterMonday returns the day of year of Easter Monday in the Gregorian calendar.
func easterMonday(y int) int {
	a := y % 19
	b := y / 100
	c := y % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(y, time.Month(month), day+1, 0, 0, 0, 0, time.UTC).YearDay()
}
