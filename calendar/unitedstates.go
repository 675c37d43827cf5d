package calendar

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// UnitedStatesSettlement is the generic US settlement calendar.
type UnitedStatesSettlement struct{}

// UnitedStatesNYSE is the New York Stock Exchange calendar.
type UnitedStatesNYSE struct{}

// UnitedStatesGovernmentBond is the SIFMA US government bond market calendar.
type UnitedStatesGovernmentBond struct{}

func (UnitedStatesSettlement) Name() string                      { return "US settlement" }
func (UnitedStatesSettlement) IsWeekend(w time.Weekday) bool     { return isWesternWeekend(w) }
func (UnitedStatesNYSE) Name() string                            { return "New York stock exchange" }
func (UnitedStatesNYSE) IsWeekend(w time.Weekday) bool           { return isWesternWeekend(w) }
func (UnitedStatesGovernmentBond) Name() string                  { return "US government bond market" }
func (UnitedStatesGovernmentBond) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }

func (UnitedStatesSettlement) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		i.isNewYear() ||
		(i.d == 31 && i.w == time.Friday && i.m == time.December) ||
		i.isMartinLutherKing(1983) ||
		i.isWashingtonBirthday() ||
		i.isMemorialDay() ||
		i.isJuneteenth() ||
		i.observed(4, time.July) ||
		i.isLaborDay() ||
		i.isColumbusDay() ||
		i.isVeteransDay() ||
		i.isThanksgiving() ||
		i.observed(25, time.December) {
		return false
	}
	return true
}

func (UnitedStatesNYSE) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		i.isNewYear() ||
		i.isMartinLutherKing(1998) ||
		i.isWashingtonBirthday() ||
		i.isGoodFriday() ||
		i.isMemorialDay() ||
		i.isJuneteenth() ||
		i.observed(4, time.July) ||
		i.isLaborDay() ||
		i.isThanksgiving() ||
		i.observed(25, time.December) {
		return false
	}
	// presidential election days
	if (i.y <= 1968 || (i.y <= 1980 && i.y%4 == 0)) && i.m == time.November && i.d <= 7 && i.w == time.Tuesday {
		return false
	}
	// special closings since 2000
	if (i.y == 2018 && i.m == time.December && i.d == 5) ||
		(i.y == 2012 && i.m == time.October && (i.d == 29 || i.d == 30)) ||
		(i.y == 2007 && i.m == time.January && i.d == 2) ||
		(i.y == 2004 && i.m == time.June && i.d == 11) ||
		(i.y == 2001 && i.m == time.September && i.d >= 11 && i.d <= 14) ||
		(i.y == 2025 && i.m == time.January && i.d == 9) {
		return false
	}
	return true
}

func (UnitedStatesGovernmentBond) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if isWesternWeekend(i.w) ||
		i.isNewYear() ||
		i.isMartinLutherKing(1983) ||
		i.isWashingtonBirthday() ||
		(i.isGoodFriday() && i.y != 2015) ||
		i.isMemorialDay() ||
		i.isJuneteenth() ||
		i.observed(4, time.July) ||
		i.isLaborDay() ||
		i.isColumbusDay() ||
		i.isVeteransDayNoSaturday() ||
		i.isThanksgiving() ||
		i.observed(25, time.December) {
		return false
	}
	if (i.y == 2018 && i.m == time.December && i.d == 5) ||
		(i.y == 2012 && i.m == time.October && i.d == 30) ||
		(i.y == 2004 && i.m == time.June && i.d == 11) {
		return false
	}
	return true
}

// UnitedStatesLiborImpact is the settlement calendar as it affects Libor
// fixings: since 2015 a Saturday or Sunday Independence Day is not observed.
type UnitedStatesLiborImpact struct{}

func (UnitedStatesLiborImpact) Name() string                  { return "US with Libor impact" }
func (UnitedStatesLiborImpact) IsWeekend(w time.Weekday) bool { return isWesternWeekend(w) }

func (UnitedStatesLiborImpact) IsBusinessDay(t date.Date) bool {
	i := infoOf(t)
	if i.m == time.July && i.y >= 2015 && ((i.d == 5 && i.w == time.Monday) || (i.d == 3 && i.w == time.Friday)) {
		return true
	}
	return UnitedStatesSettlement{}.IsBusinessDay(t)
}

// New Year's Day, moved to Monday when on Sunday. A Saturday New Year is not
// moved back into December except by the settlement calendar.
func (i dayInfo) isNewYear() bool {
	return (i.d == 1 || (i.d == 2 && i.w == time.Monday)) && i.m == time.January
}

// third Monday in January
func (i dayInfo) isMartinLutherKing(since int) bool {
	return i.d >= 15 && i.d <= 21 && i.w == time.Monday && i.m == time.January && i.y >= since
}

func (i dayInfo) isWashingtonBirthday() bool {
	if i.y >= 1971 {
		return i.d >= 15 && i.d <= 21 && i.w == time.Monday && i.m == time.February
	}
	return i.observed(22, time.February)
}

func (i dayInfo) isMemorialDay() bool {
	if i.y >= 1971 {
		return i.d >= 25 && i.w == time.Monday && i.m == time.May
	}
	return i.observed(30, time.May)
}

// observed by exchanges since 2022
func (i dayInfo) isJuneteenth() bool {
	return i.y >= 2022 && i.observed(19, time.June)
}

func (i dayInfo) isLaborDay() bool {
	return i.d <= 7 && i.w == time.Monday && i.m == time.September
}

func (i dayInfo) isColumbusDay() bool {
	return i.d >= 8 && i.d <= 14 && i.w == time.Monday && i.m == time.October && i.y >= 1971
}

func (i dayInfo) isVeteransDay() bool {
	if i.y <= 1970 || i.y >= 1978 {
		return i.observed(11, time.November)
	}
	return i.d >= 22 && i.d <= 28 && i.w == time.Monday && i.m == time.October
}

func (i dayInfo) isVeteransDayNoSaturday() bool {
	if i.y <= 1970 || i.y >= 1978 {
		return (i.d == 11 || (i.d == 12 && i.w == time.Monday)) && i.m == time.November
	}
	return i.d >= 22 && i.d <= 28 && i.w == time.Monday && i.m == time.October
}

// fourth Thursday in November
func (i dayInfo) isThanksgiving() bool {
	return i.d >= 22 && i.d <= 28 && i.w == time.Thursday && i.m == time.November
}
