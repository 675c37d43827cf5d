package daycount

import (
	"time"

	"github.com/meenmo/bondlib/date"
)

// thirty360 counts days on the 30-day-month grid after adjust has rewritten
// the day-of-month components.
func thirty360(d1, d2 date.Date, adjust func(dd1, dd2 *int, d1, d2 date.Date)) int {
	dd1, dd2 := d1.Day(), d2.Day()
	adjust(&dd1, &dd2, d1, d2)
	return 360*(d2.Year()-d1.Year()) + 30*(int(d2.Month())-int(d1.Month())) + (dd2 - dd1)
}

func bondBasis(dd1, dd2 *int, _, _ date.Date) {
	if *dd1 == 31 {
		*dd1 = 30
	}
	if *dd2 == 31 && *dd1 == 30 {
		*dd2 = 30
	}
}

func usRule(dd1, dd2 *int, d1, d2 date.Date) {
	if *dd2 == 31 && *dd1 >= 30 {
		*dd2 = 30
	}
	if *dd1 == 31 {
		*dd1 = 30
	}
	if isLastOfFebruary(d1) {
		if isLastOfFebruary(d2) {
			*dd2 = 30
		}
		*dd1 = 30
	}
}

func eurobond(dd1, dd2 *int, _, _ date.Date) {
	if *dd1 == 31 {
		*dd1 = 30
	}
	if *dd2 == 31 {
		*dd2 = 30
	}
}

func italian(dd1, dd2 *int, d1, d2 date.Date) {
	eurobond(dd1, dd2, d1, d2)
	if d1.Month() == time.February && *dd1 > 27 {
		*dd1 = 30
	}
	if d2.Month() == time.February && *dd2 > 27 {
		*dd2 = 30
	}
}

// isdaRule keeps a February month-end d2 as is when it is the termination date.
func isdaRule(termination date.Date) func(dd1, dd2 *int, d1, d2 date.Date) {
	return func(dd1, dd2 *int, d1, d2 date.Date) {
		eurobond(dd1, dd2, d1, d2)
		if isLastOfFebruary(d1) {
			*dd1 = 30
		}
		if isLastOfFebruary(d2) && d2 != termination {
			*dd2 = 30
		}
	}
}

func isLastOfFebruary(d date.Date) bool {
	return d.Month() == time.February && d.IsEndOfMonth()
}
