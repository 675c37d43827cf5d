package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// BrazilSettlement is the Brazilian banking calendar.
type BrazilSettlement struct{}

// BrazilExchange is the BOVESPA stock exchange calendar.
type BrazilExchange struct{}

func (BrazilSettlement) Name() string                  { return "Brazil" }
func (BrazilSettlement) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }
func (BrazilExchange) Name() string                    { return "BOVESPA" }
func (BrazilExchange) IsWeekend(w time.Weekday) bool   { return isWesternWeekend(w) }

func (BrazilSettlement) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	return !isWesternWeekend(i.w) && !i.isBrazilianHoliday()
}

func (BrazilExchange) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		i.isBrazilianHoliday() ||
		(i.d == 25 && i.m == time.January) || // São Paulo anniversary
		(i.d == 9 && i.m == time.July) ||
		(i.d == 20 && i.m == time.November && i.y >= 2007) ||
		(i.d == 24 && i.m == time.December) ||
		// last business day of the year
		(i.m == time.December && (i.d == 31 || (i.d >= 29 && i.w == time.Friday))) {
		return false
	}
	return true
}

// isBrazilianHoliday covers the national holidays shared by both calendars.
func (i dayInfo) isBrazilianHoliday() bool {
	return (i.d == 1 && i.m == time.January) ||
		(i.d == 21 && i.m == time.April) ||
		(i.d == 1 && i.m == time.May) ||
		(i.d == 7 && i.m == time.September) ||
		(i.d == 12 && i.m == time.October) ||
		((i.d == 2 || i.d == 15) && i.m == time.November) ||
		(i.d == 25 && i.m == time.December) ||
		i.isGoodFriday() ||
		i.dd == i.em-49 || i.dd == i.em-48 || // Carnival
		i.dd == i.em+59 // Corpus Christi
}
