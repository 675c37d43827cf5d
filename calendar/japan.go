package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// Japan is the Tokyo banking calendar. Holidays falling on a Sunday move to
// the following Monday.
type Japan struct{}

func (Japan) Name() string                  { return "Japan" }
func (Japan) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }

func (Japan) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	return !isWesternWeekend(i.w) && !i.isJapaneseHoliday()
}

// japaneseEquinoxes returns the March and September equinox days of y.
func japaneseEquinoxes(y int) (vernal, autumnal int) {
	n := y - 2000
	moving := float64(n) * 0.242194
	leaps := float64(n/4 + n/100 - n/400)
	return int(20.69115 + moving - leaps), int(23.09 + moving - leaps)
}

func (i dayInfo) isJapaneseHoliday() bool {
	monday := i.w == time.Monday
	// on reports the fixed day or its Monday substitute.
	on := func(day int) bool { return i.d == day || (i.d == day+1 && monday) }
	secondMonday := monday && i.d >= 8 && i.d <= 14
	thirdMonday := monday && i.d >= 15 && i.d <= 21
	ve, ae := japaneseEquinoxes(i.y)

	switch i.m {
	case time.January:
		// bank holidays, then Coming of Age Day
		return i.d <= 3 || (secondMonday && i.y >= 2000) || (on(15) && i.y < 2000)
	case time.February:
		return on(11) || (on(23) && i.y >= 2020) || (i.d == 24 && i.y == 1989)
	case time.March:
		return on(ve)
	case time.April:
		return on(29) || (i.d == 10 && i.y == 1959) || (i.d == 30 && i.y == 2019)
	case time.May:
		// Golden Week, with its substitute on the 6th
		return (i.d >= 3 && i.d <= 5) ||
			(i.d == 6 && (monday || i.w == time.Tuesday || i.w == time.Wednesday)) ||
			((i.d == 1 || i.d == 2) && i.y == 2019)
	case time.June:
		return i.d == 9 && i.y == 1993
	case time.July:
		switch i.y {
		// Marine Day and Sports Day, moved for the Olympics
		case 2020:
			return i.d == 23 || i.d == 24
		case 2021:
			return i.d == 22 || i.d == 23
		}
		return (thirdMonday && i.y >= 2003) || (on(20) && i.y >= 1996 && i.y < 2003)
	case time.August:
		switch i.y {
		case 2020:
			return i.d == 10
		case 2021:
			return i.d == 9
		}
		return on(11) && i.y >= 2016
	case time.September:
		if on(ae) {
			return true
		}
		if i.y < 2003 {
			return on(15)
		}
		// Respect for the Aged Day, and the Tuesday caught before the equinox
		return thirdMonday || (i.w == time.Tuesday && i.d+1 == ae && i.d >= 16 && i.d <= 22)
	case time.October:
		if i.y < 2000 {
			return on(10)
		}
		return (secondMonday && i.y != 2020 && i.y != 2021) || (i.d == 22 && i.y == 2019)
	case time.November:
		return on(3) || on(23) || (i.d == 12 && i.y == 1990)
	case time.December:
		return i.d == 31 || (on(23) && i.y >= 1989 && i.y < 2019)
	}
	return false
}
