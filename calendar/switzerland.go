package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// Switzerland is the Swiss banking calendar.
type Switzerland struct{}

func (Switzerland) Name() string                  { return "Switzerland" }
func (Switzerland) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }

func (Switzerland) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		((i.d == 1 || i.d == 2) && i.m == time.January) ||
		i.isGoodFriday() ||
		i.isEasterMonday() ||
		i.dd == i.em+38 || // Ascension
		i.dd == i.em+49 || // Whit Monday
		(i.d == 1 && i.m == time.May) ||
		(i.d == 1 && i.m == time.August) ||
		((i.d == 25 || i.d == 26) && i.m == time.December) {
		return false
	}
	return true
}
