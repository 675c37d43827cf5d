package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// ItalySettlement is the Italian banking calendar.
type ItalySettlement struct{}

// ItalyExchange is the Milan stock exchange calendar.
type ItalyExchange struct{}

func (ItalySettlement) Name() string                  { return "Italian settlement" }
func (ItalySettlement) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }
func (ItalyExchange) Name() string                    { return "Milan stock exchange" }
func (ItalyExchange) IsWeekend(w time.Weekday) bool   { return isWesternWeekend(w) }

func (ItalySettlement) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		((i.d == 1 || i.d == 6) && i.m == time.January) ||
		i.isEasterMonday() ||
		(i.d == 25 && i.m == time.April) ||
		(i.d == 1 && i.m == time.May) ||
		(i.d == 2 && i.m == time.June && i.y >= 2000) ||
		(i.d == 15 && i.m == time.August) ||
		(i.d == 1 && i.m == time.November) ||
		((i.d == 8 || i.d == 25 || i.d == 26) && i.m == time.December) ||
		(i.d == 31 && i.m == time.December && i.y == 1999) {
		return false
	}
	return true
}

func (ItalyExchange) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		(i.d == 1 && i.m == time.January) ||
		i.isGoodFriday() ||
		i.isEasterMonday() ||
		(i.d == 1 && i.m == time.May) ||
		(i.d == 15 && i.m == time.August) ||
		(i.m == time.December && (i.d == 24 || i.d == 25 || i.d == 26 || i.d == 31)) {
		return false
	}
	return true
}
