package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
)

var (
	// ErrInvalidSchedule is returned for malformed date ranges, tenors and stub dates.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrBuilderSealed is returned by Build once the builder was modified after a build.
	ErrBuilderSealed = errors.New("schedule builder sealed")
)

// DateGenerationRule selects the anchor from which period boundaries are rolled.
type DateGenerationRule string

const (
	// Backward rolls from the termination date; any stub is at the start.
	Backward DateGenerationRule = "BACKWARD"
	// Forward rolls from the effective date; any stub is at the end.
	Forward DateGenerationRule = "FORWARD"
	// Zero produces the effective and termination dates only.
	Zero DateGenerationRule = "ZERO"
)

// ParseRule reads a generation rule name, case-insensitive.
func ParseRule(s string) (DateGenerationRule, error) {
	switch r := DateGenerationRule(strings.ToUpper(strings.TrimSpace(s))); r {
	case Backward, Forward, Zero:
		return r, nil
	}
	return "", fmt.Errorf("schedule.ParseRule: %q: %w", s, ErrInvalidSchedule)
}

// SchedulePeriod is one accrual period of a schedule.
type SchedulePeriod struct {
	StartDate date.Date
	EndDate   date.Date
	Regular   bool
}

// Schedule is an immutable, strictly increasing list of period boundaries.
type Schedule struct {
	dates           []date.Date
	regular         []bool // regular[i] describes the period ending at dates[i+1]
	cal             calendar.Calendar
	convention      calendar.BusinessDayConvention
	terminationConv calendar.BusinessDayConvention
	tenor           date.Period
	rule            DateGenerationRule
	endOfMonth      bool
	firstDate       date.Date
	nextToLastDate  date.Date
}

// FromDates wraps an explicit list of boundaries. Every period is marked
// regular. The dates must be strictly increasing and at least two.
func FromDates(dates []date.Date, cal calendar.Calendar, conv calendar.BusinessDayConvention) (*Schedule, error) {
	if len(dates) < 2 {
		return nil, fmt.Errorf("schedule.FromDates: need at least two dates, got %d: %w", len(dates), ErrInvalidSchedule)
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("schedule.FromDates: %s not after %s: %w", dates[i], dates[i-1], ErrInvalidSchedule)
		}
	}
	regular := make([]bool, len(dates)-1)
	for i := range regular {
		regular[i] = true
	}
	return &Schedule{
		dates:           append([]date.Date(nil), dates...),
		regular:         regular,
		cal:             cal,
		convention:      conv,
		terminationConv: conv,
		rule:            Zero,
	}, nil
}

// Dates returns a copy of the schedule dates.
func (s *Schedule) Dates() []date.Date { return append([]date.Date(nil), s.dates...) }

// Len returns the number of dates.
func (s *Schedule) Len() int { return len(s.dates) }

// At returns the i-th date.
func (s *Schedule) At(i int) date.Date { return s.dates[i] }

func (s *Schedule) StartDate() date.Date                                  { return s.dates[0] }
func (s *Schedule) EndDate() date.Date                                    { return s.dates[len(s.dates)-1] }
func (s *Schedule) Tenor() date.Period                                    { return s.tenor }
func (s *Schedule) Calendar() calendar.Calendar                           { return s.cal }
func (s *Schedule) Convention() calendar.BusinessDayConvention            { return s.convention }
func (s *Schedule) TerminationConvention() calendar.BusinessDayConvention { return s.terminationConv }
func (s *Schedule) Rule() DateGenerationRule                              { return s.rule }
func (s *Schedule) EndOfMonth() bool                                      { return s.endOfMonth }

// IsRegular reports whether period i, ending at At(i), is a full tenor.
// Valid indices are 1..Len()-1.
func (s *Schedule) IsRegular(i int) (bool, error) {
	if i < 1 || i > len(s.regular) {
		return false, fmt.Errorf("schedule.IsRegular: index %d outside [1, %d]: %w", i, len(s.regular), ErrInvalidSchedule)
	}
	return s.regular[i-1], nil
}

// Periods returns consecutive (start, end) pairs with their regularity.
func (s *Schedule) Periods() []SchedulePeriod {
	out := make([]SchedulePeriod, 0, len(s.dates)-1)
	for i := 1; i < len(s.dates); i++ {
		out = append(out, SchedulePeriod{StartDate: s.dates[i-1], EndDate: s.dates[i], Regular: s.regular[i-1]})
	}
	return out
}

// NextDate returns the first date on or after ref, or the zero date.
func (s *Schedule) NextDate(ref date.Date) date.Date {
	i := s.lowerBound(ref)
	if i == len(s.dates) {
		return date.Date{}
	}
	return s.dates[i]
}

// PreviousDate returns the last date strictly before ref, or the zero date.
func (s *Schedule) PreviousDate(ref date.Date) date.Date {
	i := s.lowerBound(ref)
	if i == 0 {
		return date.Date{}
	}
	return s.dates[i-1]
}

func (s *Schedule) lowerBound(ref date.Date) int {
	return sort.Search(len(s.dates), func(i int) bool { return !s.dates[i].Before(ref) })
}

// After returns a copy of s without the dates strictly before d. When d is
// not itself a schedule date it becomes the new, irregular, first date.
func (s *Schedule) After(d date.Date) (*Schedule, error) {
	if !d.Before(s.EndDate()) {
		return nil, fmt.Errorf("Schedule.After: %s not before last date %s: %w", d, s.EndDate(), ErrInvalidSchedule)
	}
	out := s.clone()
	if !d.After(out.dates[0]) {
		return out, nil
	}
	for out.dates[0].Before(d) {
		out.dates = out.dates[1:]
		out.regular = out.regular[1:]
	}
	if out.dates[0] != d {
		out.dates = append([]date.Date{d}, out.dates...)
		out.regular = append([]bool{false}, out.regular...)
	}
	if !out.nextToLastDate.After(d) {
		out.nextToLastDate = date.Date{}
	}
	if !out.firstDate.After(d) {
		out.firstDate = date.Date{}
	}
	return out, nil
}

// Until returns a copy of s without the dates strictly after d. When d is
// not itself a schedule date it becomes the new, irregular, last date.
func (s *Schedule) Until(d date.Date) (*Schedule, error) {
	if !d.After(s.StartDate()) {
		return nil, fmt.Errorf("Schedule.Until: %s not after first date %s: %w", d, s.StartDate(), ErrInvalidSchedule)
	}
	out := s.clone()
	if !d.Before(out.EndDate()) {
		return out, nil
	}
	for out.EndDate().After(d) {
		out.dates = out.dates[:len(out.dates)-1]
		out.regular = out.regular[:len(out.regular)-1]
	}
	if out.EndDate() != d {
		out.dates = append(out.dates, d)
		out.regular = append(out.regular, false)
		out.terminationConv = calendar.Unadjusted
	}
	if !out.nextToLastDate.IsZero() && !out.nextToLastDate.Before(d) {
		out.nextToLastDate = date.Date{}
	}
	if !out.firstDate.IsZero() && !out.firstDate.Before(d) {
		out.firstDate = date.Date{}
	}
	return out, nil
}

func (s *Schedule) clone() *Schedule {
	out := *s
	out.dates = append([]date.Date(nil), s.dates...)
	out.regular = append([]bool(nil), s.regular...)
	return &out
}
