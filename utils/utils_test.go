package utils_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/utils"
)

func d(y int, m time.Month, day int) date.Date { return date.MustNew(y, m, day) }

func TestSortDates(t *testing.T) {
	t.Parallel()

	got := []date.Date{d(2023, time.June, 15), d(2021, time.June, 15), d(2022, time.January, 3)}
	utils.SortDates(got)
	want := []date.Date{d(2021, time.June, 15), d(2022, time.January, 3), d(2023, time.June, 15)}
	if diff := cmp.Diff(want, got, cmp.Comparer(date.Date.Equal)); diff != "" {
		t.Fatalf("SortDates (-want +got):\n%s", diff)
	}
}

func TestAdjacentDates(t *testing.T) {
	t.Parallel()

	dates := []date.Date{d(2021, time.June, 15), d(2021, time.December, 15), d(2022, time.June, 15)}
	cases := []struct {
		target     date.Date
		prev, next date.Date
	}{
		{d(2021, time.January, 1), dates[0], dates[1]},
		{d(2021, time.June, 15), dates[0], dates[1]},
		{d(2021, time.September, 1), dates[0], dates[1]},
		{d(2021, time.December, 15), dates[0], dates[1]},
		{d(2022, time.March, 1), dates[1], dates[2]},
		{d(2023, time.March, 1), dates[1], dates[2]},
	}
	for _, tc := range cases {
		prev, next, err := utils.AdjacentDates(tc.target, dates)
		if err != nil {
			t.Fatalf("AdjacentDates(%s): %v", tc.target, err)
		}
		if prev != tc.prev || next != tc.next {
			t.Fatalf("AdjacentDates(%s): got %s..%s, want %s..%s", tc.target, prev, next, tc.prev, tc.next)
		}
	}

	if _, _, err := utils.AdjacentDates(dates[0], dates[:1]); !errors.Is(err, utils.ErrTooFewDates) {
		t.Fatalf("expected ErrTooFewDates, got %v", err)
	}
}

func TestRounding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		r    utils.Rounding
		in   float64
		want float64
	}{
		{utils.Rounding{Type: utils.Up, Digit: 1}, 11.2, 12},
		{utils.Rounding{Type: utils.Down, Digit: 1}, 11.2, 11},
		{utils.Rounding{Type: utils.Closest, Digit: 1}, 11.2, 12},
		{utils.Rounding{Type: utils.Ceiling, Digit: 1}, 11.2, 11},
		{utils.Rounding{Type: utils.Floor, Digit: 1}, 11.2, 12},

		{utils.Rounding{Type: utils.Closest, Precision: 2}, 1.235, 1.24},
		{utils.Rounding{Type: utils.Closest, Precision: 2}, -1.235, -1.24},
		{utils.Rounding{Type: utils.Closest, Precision: 2}, 1.234, 1.23},
		{utils.Rounding{Type: utils.Closest, Precision: 2}, 1.005, 1.01},
		{utils.Rounding{Type: utils.Up, Precision: 2}, 1.231, 1.24},
		{utils.Rounding{Type: utils.Up, Precision: 2}, -1.231, -1.24},
		{utils.Rounding{Type: utils.Down, Precision: 2}, 1.239, 1.23},
		{utils.Rounding{Type: utils.Down, Precision: 2}, -1.239, -1.23},
		{utils.Rounding{Type: utils.Floor, Precision: 2}, 1.235, 1.24},
		{utils.Rounding{Type: utils.Floor, Precision: 2}, -1.235, -1.23},
		{utils.Rounding{Type: utils.Ceiling, Precision: 2}, 1.235, 1.23},
		{utils.Rounding{Type: utils.Ceiling, Precision: 2}, -1.235, -1.24},
		{utils.Rounding{Type: utils.NoRounding, Precision: 2}, 1.23456, 1.23456},
		{utils.Rounding{}, 1.23456, 1.23456},
		{utils.Rounding{Type: utils.Closest, Precision: -2}, 1251, 1300},
	}
	for _, tc := range cases {
		if got := tc.r.Round(tc.in); got != tc.want {
			t.Fatalf("%s/%d/%d Round(%g): got %g, want %g", tc.r.Type, tc.r.Precision, tc.r.Digit, tc.in, got, tc.want)
		}
	}

	if got := utils.RoundTo(99.9338111, 4); got != 99.9338 {
		t.Fatalf("RoundTo: got %g", got)
	}
}
