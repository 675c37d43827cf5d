package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// UnitedKingdomSettlement is the UK bank holiday calendar.
type UnitedKingdomSettlement struct{}

func (UnitedKingdomSettlement) Name() string                  { return "UK settlement" }
func (UnitedKingdomSettlement) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }

func (UnitedKingdomSettlement) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	mondayOrTuesday := i.w == time.Monday || i.w == time.Tuesday
	if isWesternWeekend(i.w) ||
		((i.d == 1 || ((i.d == 2 || i.d == 3) && i.w == time.Monday)) && i.m == time.January) ||
		i.isGoodFriday() ||
		i.isEasterMonday() ||
		i.isUKBankHoliday() ||
		((i.d == 25 || (i.d == 27 && mondayOrTuesday)) && i.m == time.December) ||
		((i.d == 26 || (i.d == 28 && mondayOrTuesday)) && i.m == time.December) ||
		(i.d == 31 && i.m == time.December && i.y == 1999) {
		return false
	}
	return true
}

func (i dayInfo) isUKBankHoliday() bool {
	switch {
	// early May, moved to May 8th for V.E. day anniversaries
	case i.d <= 7 && i.w == time.Monday && i.m == time.May && i.y != 1995 && i.y != 2020:
		return true
	case i.d == 8 && i.m == time.May && (i.y == 1995 || i.y == 2020):
		return true
	// spring, moved for the jubilees
	case i.d >= 25 && i.w == time.Monday && i.m == time.May && i.y != 2002 && i.y != 2012 && i.y != 2022:
		return true
	case i.m == time.June && ((i.y == 2002 && (i.d == 3 || i.d == 4)) ||
		(i.y == 2012 && (i.d == 4 || i.d == 5)) ||
		(i.y == 2022 && (i.d == 2 || i.d == 3))):
		return true
	// summer
	case i.d >= 25 && i.w == time.Monday && i.m == time.August:
		return true
	// one-off: royal wedding, state funeral, coronation
	case i.d == 29 && i.m == time.April && i.y == 2011,
		i.d == 19 && i.m == time.September && i.y == 2022,
		i.d == 8 && i.m == time.May && i.y == 2023:
		return true
	}
	return false
}
