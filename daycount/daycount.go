package daycount

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/meenmo/bondlib/date"
)

// Convention names a day-count rule.
type Convention string

const (
	Actual360          Convention = "ACT/360"
	Actual365Fixed     Convention = "ACT/365F"
	Actual366          Convention = "ACT/366"
	Actual36525        Convention = "ACT/365.25"
	ActualActualISDA   Convention = "ACT/ACT ISDA"
	ActualActualISMA   Convention = "ACT/ACT ISMA"
	ActualActualAFB    Convention = "ACT/ACT AFB"
	Thirty360BondBasis Convention = "30/360"
	Thirty360US        Convention = "30U/360"
	Thirty360European  Convention = "30E/360"
	Thirty360Italian   Convention = "30/360 IT"
	Thirty360ISDA      Convention = "30E/360 ISDA"
	Thirty365          Convention = "30/365"
	One                Convention = "1/1"
)

var (
	// ErrMissingReferencePeriod is returned when a convention that needs the
	// surrounding coupon period is evaluated without one.
	ErrMissingReferencePeriod = errors.New("missing reference period")
	// ErrInvalidReferencePeriod is returned for reference periods that do not
	// bracket the accrual dates.
	ErrInvalidReferencePeriod = errors.New("invalid reference period")
	// ErrUnknownConvention is returned for unrecognized convention names.
	ErrUnknownConvention = errors.New("unknown day count convention")
)

var names = map[Convention]string{
	Actual360:          "Actual/360",
	Actual365Fixed:     "Actual/365 (Fixed)",
	Actual366:          "Actual/366",
	Actual36525:        "Actual/365.25",
	ActualActualISDA:   "Actual/Actual (ISDA)",
	ActualActualISMA:   "Actual/Actual (ISMA)",
	ActualActualAFB:    "Actual/Actual (AFB)",
	Thirty360BondBasis: "30/360 (Bond Basis)",
	Thirty360US:        "30/360 (US)",
	Thirty360European:  "30E/360 (Eurobond Basis)",
	Thirty360Italian:   "30/360 (Italian)",
	Thirty360ISDA:      "30E/360 (ISDA)",
	Thirty365:          "30/365",
	One:                "1/1",
}

var aliases = map[string]Convention{
	"ACT/360":              Actual360,
	"A360":                 Actual360,
	"ACTUAL/360":           Actual360,
	"ACT/365F":             Actual365Fixed,
	"ACT/365":              Actual365Fixed,
	"ACT/365 FIXED":        Actual365Fixed,
	"ACTUAL/365 (FIXED)":   Actual365Fixed,
	"A365F":                Actual365Fixed,
	"ACT/366":              Actual366,
	"ACT/365.25":           Actual36525,
	"ACT/ACT ISDA":         ActualActualISDA,
	"ACT/ACT":              ActualActualISDA,
	"ACTUAL/ACTUAL (ISDA)": ActualActualISDA,
	"ACT/ACT ISMA":         ActualActualISMA,
	"ACT/ACT ICMA":         ActualActualISMA,
	"ACTUAL/ACTUAL (ISMA)": ActualActualISMA,
	"ACT/ACT AFB":          ActualActualAFB,
	"30/360":               Thirty360BondBasis,
	"30/360 BOND BASIS":    Thirty360BondBasis,
	"30/360 ISMA":          Thirty360BondBasis,
	"30U/360":              Thirty360US,
	"30/360 US":            Thirty360US,
	"30E/360":              Thirty360European,
	"30/360 EUROBOND":      Thirty360European,
	"30/360 IT":            Thirty360Italian,
	"30E/360 ISDA":         Thirty360ISDA,
	"30/360 GERMAN":        Thirty360ISDA,
	"30/365":               Thirty365,
	"1/1":                  One,
	"ONE":                  One,
}

// Parse resolves a convention by its code, full name or a common alias;
// matching ignores case and repeated spaces.
func Parse(name string) (Convention, error) {
	key := strings.Join(strings.Fields(strings.ToUpper(name)), " ")
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	for c, full := range names {
		if strings.ToUpper(full) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("daycount.Parse: %q: %w", name, ErrUnknownConvention)
}

// DayCounter converts date spans to year fractions under one convention.
// TerminationDate is only read by Thirty360ISDA.
type DayCounter struct {
	Convention      Convention
	TerminationDate date.Date
}

// New returns a day counter for c.
func New(c Convention) DayCounter { return DayCounter{Convention: c} }

// NewThirty360ISDA returns the 30E/360 ISDA counter, which treats a
// February month-end equal to termination as the actual day.
func NewThirty360ISDA(termination date.Date) DayCounter {
	return DayCounter{Convention: Thirty360ISDA, TerminationDate: termination}
}

// Name returns the descriptive name of the convention.
func (dc DayCounter) Name() string {
	if n, ok := names[dc.Convention]; ok {
		return n
	}
	return string(dc.Convention)
}

func (dc DayCounter) String() string { return dc.Name() }

// RequiresReferencePeriod reports whether YearFractionRef needs the coupon period bounds.
func (dc DayCounter) RequiresReferencePeriod() bool { return dc.Convention == ActualActualISMA }

// DayCount returns the number of days between d1 and d2 as counted by the convention.
func (dc DayCounter) DayCount(d1, d2 date.Date) int {
	switch dc.Convention {
	case Thirty360BondBasis:
		return thirty360(d1, d2, bondBasis)
	case Thirty360US:
		return thirty360(d1, d2, usRule)
	case Thirty360European:
		return thirty360(d1, d2, eurobond)
	case Thirty360Italian:
		return thirty360(d1, d2, italian)
	case Thirty360ISDA:
		return thirty360(d1, d2, isdaRule(dc.TerminationDate))
	case Thirty365:
		return thirty360(d1, d2, func(dd1, dd2 *int, _, _ date.Date) {})
	case One:
		if d2.Before(d1) {
			return -1
		}
		return 1
	}
	return d1.DaysUntil(d2)
}

// YearFraction returns the year fraction between d1 and d2 for conventions
// that do not need a reference period.
func (dc DayCounter) YearFraction(d1, d2 date.Date) (float64, error) {
	return dc.YearFractionRef(d1, d2, date.Date{}, date.Date{})
}

// YearFractionRef returns the year fraction between d1 and d2 given the
// reference coupon period [refStart, refEnd]. The reference period is ignored
// by conventions that do not use it.
func (dc DayCounter) YearFractionRef(d1, d2, refStart, refEnd date.Date) (float64, error) {
	switch dc.Convention {
	case Actual360:
		return float64(d1.DaysUntil(d2)) / 360, nil
	case Actual365Fixed:
		return float64(d1.DaysUntil(d2)) / 365, nil
	case Actual366:
		return float64(d1.DaysUntil(d2)) / 366, nil
	case Actual36525:
		return float64(d1.DaysUntil(d2)) / 365.25, nil
	case ActualActualISDA:
		return actualActualISDA(d1, d2), nil
	case ActualActualAFB:
		return actualActualAFB(d1, d2), nil
	case ActualActualISMA:
		if refStart.IsZero() || refEnd.IsZero() {
			return 0, fmt.Errorf("YearFraction %s from %s to %s: %w", dc.Name(), d1, d2, ErrMissingReferencePeriod)
		}
		return actualActualISMA(d1, d2, refStart, refEnd)
	case Thirty360BondBasis, Thirty360US, Thirty360European, Thirty360Italian, Thirty360ISDA:
		return float64(dc.DayCount(d1, d2)) / 360, nil
	case Thirty365:
		return float64(dc.DayCount(d1, d2)) / 365, nil
	case One:
		return float64(dc.DayCount(d1, d2)), nil
	}
	return 0, fmt.Errorf("YearFraction: %q: %w", dc.Convention, ErrUnknownConvention)
}

func actualActualISDA(d1, d2 date.Date) float64 {
	if d1 == d2 {
		return 0
	}
	if d2.Before(d1) {
		return -actualActualISDA(d2, d1)
	}
	y1, y2 := d1.Year(), d2.Year()
	dib1, dib2 := daysInYear(y1), daysInYear(y2)
	sum := float64(y2 - y1 - 1)
	sum += (dib1 - float64(d1.DayOfYear()) + 1) / dib1
	sum += float64(d2.DayOfYear()-1) / dib2
	return sum
}

func actualActualAFB(d1, d2 date.Date) float64 {
	if d1 == d2 {
		return 0
	}
	if d2.Before(d1) {
		return -actualActualAFB(d2, d1)
	}
	newD2, temp := d2, d2
	sum := 0.0
	for temp.After(d1) {
		temp = newD2.AddPeriod(date.NewPeriod(-1, date.Years))
		if temp.Day() == 28 && temp.Month() == time.February && date.IsLeap(temp.Year()) {
			temp = temp.AddDays(1)
		}
		if !temp.Before(d1) {
			sum++
			newD2 = temp
		}
	}
	den := 365.0
	if date.IsLeap(newD2.Year()) {
		feb29 := date.MustNew(newD2.Year(), time.February, 29)
		if newD2.After(feb29) && !d1.After(feb29) {
			den++
		}
	} else if date.IsLeap(d1.Year()) {
		feb29 := date.MustNew(d1.Year(), time.February, 29)
		if newD2.After(feb29) && !d1.After(feb29) {
			den++
		}
	}
	return sum + float64(d1.DaysUntil(newD2))/den
}

// actualActualISMA is the "old" ISMA rule: the fraction of a (possibly
// notional) coupon period, each period worth months/12 of a year.
func actualActualISMA(d1, d2, refStart, refEnd date.Date) (float64, error) {
	if d1 == d2 {
		return 0, nil
	}
	if d2.Before(d1) {
		yf, err := actualActualISMA(d2, d1, refStart, refEnd)
		return -yf, err
	}
	if !refEnd.After(refStart) || !refEnd.After(d1) {
		return 0, fmt.Errorf("ISMA [%s, %s] with reference [%s, %s]: %w", d1, d2, refStart, refEnd, ErrInvalidReferencePeriod)
	}

	months := int(math.Round(12 * float64(refStart.DaysUntil(refEnd)) / 365))
	if months == 0 {
		refStart = d1
		refEnd = d1.AddPeriod(date.NewPeriod(1, date.Years))
		months = 12
	}
	period := float64(months) / 12

	if !d2.After(refEnd) {
		if !d1.Before(refStart) {
			return period * float64(d1.DaysUntil(d2)) / float64(refStart.DaysUntil(refEnd)), nil
		}
		// long first coupon: split at refStart, the part before it measured
		// against the previous notional period
		previous := refStart.AddPeriod(date.NewPeriod(-months, date.Months))
		if !d2.After(refStart) {
			return actualActualISMA(d1, d2, previous, refStart)
		}
		head, err := actualActualISMA(d1, refStart, previous, refStart)
		if err != nil {
			return 0, err
		}
		tail, err := actualActualISMA(refStart, d2, refStart, refEnd)
		if err != nil {
			return 0, err
		}
		return head + tail, nil
	}

	if refStart.After(d1) {
		return 0, fmt.Errorf("ISMA [%s, %s] straddles reference [%s, %s]: %w", d1, d2, refStart, refEnd, ErrInvalidReferencePeriod)
	}
	sum, err := actualActualISMA(d1, refEnd, refStart, refEnd)
	if err != nil {
		return 0, err
	}
	// whole notional periods after refEnd, then the remainder
	var start, end date.Date
	for i := 0; ; i++ {
		start = refEnd.AddPeriod(date.NewPeriod(months*i, date.Months))
		end = refEnd.AddPeriod(date.NewPeriod(months*(i+1), date.Months))
		if d2.Before(end) {
			break
		}
		sum += period
	}
	rest, err := actualActualISMA(start, d2, start, end)
	if err != nil {
		return 0, err
	}
	return sum + rest, nil
}

func daysInYear(y int) float64 {
	if date.IsLeap(y) {
		return 366
	}
	return 365
}
