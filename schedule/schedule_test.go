package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/pricing"
	"github.com/meenmo/bondlib/schedule"
)

func d(y int, m time.Month, day int) date.Date { return date.MustNew(y, m, day) }

var (
	weekends   = calendar.New(calendar.WeekendsOnly{})
	ctx        = pricing.NewContext(d(2022, time.June, 6))
	semiannual = date.Semiannual.Period()
)

func mustBuild(t *testing.T, b *schedule.Builder) *schedule.Schedule {
	t.Helper()
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func regularity(t *testing.T, s *schedule.Schedule) []bool {
	t.Helper()
	out := make([]bool, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		r, err := s.IsRegular(i)
		if err != nil {
			t.Fatalf("IsRegular(%d): %v", i, err)
		}
		out = append(out, r)
	}
	return out
}

func TestSemiannualTwoYears(t *testing.T) {
	t.Parallel()

	for _, rule := range []schedule.DateGenerationRule{schedule.Backward, schedule.Forward} {
		s := mustBuild(t, schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), semiannual, weekends).WithRule(rule))
		want := []date.Date{
			d(2021, time.June, 15),
			d(2021, time.December, 15),
			d(2022, time.June, 15),
			d(2022, time.December, 15),
			d(2023, time.June, 15),
		}
		if diff := cmp.Diff(want, s.Dates()); diff != "" {
			t.Fatalf("%s dates mismatch (-want +got):\n%s", rule, diff)
		}
		if got := len(s.Dates()[1:]); got != 4 {
			t.Fatalf("%s: expected 4 dates after effective, got %d", rule, got)
		}
		if s.EndDate() != d(2023, time.June, 15) {
			t.Fatalf("%s: last date mismatch: got %s", rule, s.EndDate())
		}
		if diff := cmp.Diff([]bool{true, true, true, true}, regularity(t, s)); diff != "" {
			t.Fatalf("%s regularity mismatch (-want +got):\n%s", rule, diff)
		}
	}
}

func TestForwardShortBackStub(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, schedule.NewBuilder(ctx, d(2022, time.January, 10), d(2023, time.March, 10), semiannual, weekends).Forwards())
	want := []date.Date{
		d(2022, time.January, 10),
		d(2022, time.July, 11),
		d(2023, time.January, 10),
		d(2023, time.March, 10),
	}
	if diff := cmp.Diff(want, s.Dates()); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, false}, regularity(t, s)); diff != "" {
		t.Fatalf("regularity mismatch (-want +got):\n%s", diff)
	}
}

func TestBackwardShortFrontStub(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, schedule.NewBuilder(ctx, d(2022, time.March, 10), d(2023, time.July, 10), semiannual, weekends))
	want := []date.Date{
		d(2022, time.March, 10),
		d(2022, time.July, 11),
		d(2023, time.January, 10),
		d(2023, time.July, 10),
	}
	if diff := cmp.Diff(want, s.Dates()); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, true}, regularity(t, s)); diff != "" {
		t.Fatalf("regularity mismatch (-want +got):\n%s", diff)
	}
	periods := s.Periods()
	if len(periods) != 3 || periods[0].Regular || periods[0].EndDate != d(2022, time.July, 11) {
		t.Fatalf("Periods mismatch: got %+v", periods)
	}
}

func TestEndOfMonthRolling(t *testing.T) {
	t.Parallel()

	quarterly := date.Quarterly.Period()
	build := func(eom bool) []date.Date {
		b := schedule.NewBuilder(ctx, d(2022, time.February, 28), d(2023, time.February, 28), quarterly, weekends).
			WithConvention(calendar.ModifiedFollowing).
			WithEndOfMonth(eom)
		return mustBuild(t, b).Dates()
	}

	wantEOM := []date.Date{
		d(2022, time.February, 28),
		d(2022, time.May, 31),
		d(2022, time.August, 31),
		d(2022, time.November, 30),
		d(2023, time.February, 28),
	}
	if diff := cmp.Diff(wantEOM, build(true)); diff != "" {
		t.Fatalf("eom dates mismatch (-want +got):\n%s", diff)
	}
	wantPlain := []date.Date{
		d(2022, time.February, 28),
		d(2022, time.May, 30),
		d(2022, time.August, 29),
		d(2022, time.November, 28),
		d(2023, time.February, 28),
	}
	if diff := cmp.Diff(wantPlain, build(false)); diff != "" {
		t.Fatalf("plain dates mismatch (-want +got):\n%s", diff)
	}
}

func TestFirstDateStub(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, schedule.NewBuilder(ctx, d(2022, time.January, 10), d(2023, time.March, 15), semiannual, weekends).
		Forwards().
		WithFirstDate(d(2022, time.March, 15)))
	want := []date.Date{
		d(2022, time.January, 10),
		d(2022, time.March, 15),
		d(2022, time.September, 15),
		d(2023, time.March, 15),
	}
	if diff := cmp.Diff(want, s.Dates()); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, true}, regularity(t, s)); diff != "" {
		t.Fatalf("regularity mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroRule(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, schedule.NewBuilder(ctx, d(2022, time.June, 7), d(2022, time.July, 5), date.Period{}, weekends).WithRule(schedule.Zero))
	if s.Rule() != schedule.Zero || s.Len() != 2 {
		t.Fatalf("zero-tenor schedule mismatch: rule %s, %d dates", s.Rule(), s.Len())
	}
}

func TestBoundaryConventions(t *testing.T) {
	t.Parallel()

	saturday := d(2022, time.January, 15)
	exact := mustBuild(t, schedule.NewBuilder(ctx, saturday, d(2022, time.July, 15), semiannual, weekends))
	if exact.StartDate() != saturday {
		t.Fatalf("unadjusted effective date mismatch: got %s", exact.StartDate())
	}
	adjusted := mustBuild(t, schedule.NewBuilder(ctx, saturday, d(2022, time.July, 15), semiannual, weekends).
		WithEffectiveConvention(calendar.Following))
	if adjusted.StartDate() != d(2022, time.January, 17) {
		t.Fatalf("adjusted effective date mismatch: got %s", adjusted.StartDate())
	}

	sunday := d(2023, time.July, 16)
	term := mustBuild(t, schedule.NewBuilder(ctx, d(2022, time.July, 15), sunday, semiannual, weekends).
		WithTerminationConvention(calendar.ModifiedFollowing))
	if term.EndDate() != d(2023, time.July, 17) {
		t.Fatalf("adjusted termination date mismatch: got %s", term.EndDate())
	}
}

func TestPlaceholderEffectiveDate(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, schedule.NewBuilder(ctx, date.Date{}, d(2025, time.June, 15), semiannual, weekends))
	if s.StartDate() != d(2021, time.June, 15) {
		t.Fatalf("placeholder effective date mismatch: got %s", s.StartDate())
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]*schedule.Builder{
		"reversed":      schedule.NewBuilder(ctx, d(2023, time.June, 15), d(2021, time.June, 15), semiannual, weekends),
		"equal":         schedule.NewBuilder(ctx, d(2023, time.June, 15), d(2023, time.June, 15), semiannual, weekends),
		"negative":      schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), date.NewPeriod(-6, date.Months), weekends),
		"null end":      schedule.NewBuilder(ctx, d(2021, time.June, 15), date.Date{}, semiannual, weekends),
		"first outside": schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), semiannual, weekends).WithFirstDate(d(2024, time.January, 1)),
		"zero + stub":   schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), semiannual, weekends).WithRule(schedule.Zero).WithNextToLastDate(d(2023, time.January, 1)),
		"zero tenor":    schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), date.NewPeriod(0, date.Months), weekends),
		"zero forward":  schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), date.Period{}, weekends).WithRule(schedule.Forward),
	}
	for name, b := range cases {
		if _, err := b.Build(); !errors.Is(err, schedule.ErrInvalidSchedule) {
			t.Fatalf("%s: expected ErrInvalidSchedule, got %v", name, err)
		}
	}
}

func TestBuilderSealedAfterBuild(t *testing.T) {
	t.Parallel()

	b := schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), semiannual, weekends)
	first := mustBuild(t, b)
	b.WithEndOfMonth(true)
	if _, err := b.Build(); !errors.Is(err, schedule.ErrBuilderSealed) {
		t.Fatalf("expected ErrBuilderSealed, got %v", err)
	}
	if first.EndOfMonth() {
		t.Fatalf("built schedule changed after sealing")
	}
}

func TestLookupAndTruncation(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, schedule.NewBuilder(ctx, d(2021, time.June, 15), d(2023, time.June, 15), semiannual, weekends))
	if got := s.NextDate(d(2022, time.June, 7)); got != d(2022, time.June, 15) {
		t.Fatalf("NextDate mismatch: got %s", got)
	}
	if got := s.PreviousDate(d(2022, time.June, 7)); got != d(2021, time.December, 15) {
		t.Fatalf("PreviousDate mismatch: got %s", got)
	}
	if got := s.NextDate(d(2024, time.January, 1)); !got.IsZero() {
		t.Fatalf("NextDate past end should be zero, got %s", got)
	}

	after, err := s.After(d(2022, time.June, 7))
	if err != nil {
		t.Fatalf("After: %v", err)
	}
	wantAfter := []date.Date{d(2022, time.June, 7), d(2022, time.June, 15), d(2022, time.December, 15), d(2023, time.June, 15)}
	if diff := cmp.Diff(wantAfter, after.Dates()); diff != "" {
		t.Fatalf("After mismatch (-want +got):\n%s", diff)
	}
	if r, _ := after.IsRegular(1); r {
		t.Fatalf("truncated first period should be irregular")
	}

	until, err := s.Until(d(2022, time.December, 15))
	if err != nil {
		t.Fatalf("Until: %v", err)
	}
	if until.Len() != 4 || until.EndDate() != d(2022, time.December, 15) {
		t.Fatalf("Until mismatch: got %v", until.Dates())
	}
	if _, err := s.After(d(2023, time.June, 15)); !errors.Is(err, schedule.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("truncation mutated the source schedule")
	}
}

func TestFromDates(t *testing.T) {
	t.Parallel()

	if _, err := schedule.FromDates([]date.Date{d(2022, time.June, 7)}, weekends, calendar.Unadjusted); !errors.Is(err, schedule.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
	s, err := schedule.FromDates([]date.Date{d(2022, time.June, 7), d(2022, time.July, 5)}, weekends, calendar.Unadjusted)
	if err != nil || s.Len() != 2 {
		t.Fatalf("FromDates: %v", err)
	}
}
