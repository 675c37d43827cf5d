package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// Target is the TARGET2 calendar of the euro area payment system.
type Target struct{}

func (Target) Name() string                  { return "TARGET" }
func (Target) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }

func (Target) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		(i.d == 1 && i.m == time.January) ||
		(i.isGoodFriday() && i.y >= 2000) ||
		(i.isEasterMonday() && i.y >= 2000) ||
		(i.d == 1 && i.m == time.May && i.y >= 2000) ||
		(i.d == 25 && i.m == time.December) ||
		(i.d == 26 && i.m == time.December && i.y >= 2000) ||
		(i.d == 31 && i.m == time.December && (i.y == 1998 || i.y == 1999 || i.y == 2001)) {
		return false
	}
	return true
}
