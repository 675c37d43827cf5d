package utils

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/meenmo/bondlib/date"
)

// ErrTooFewDates is returned by AdjacentDates for slices shorter than two.
var ErrTooFewDates = errors.New("need at least 2 dates")

// SortDates sorts dates in ascending order.
func SortDates(dates []date.Date) {
	slices.SortFunc(dates, date.Date.Compare)
}

// AdjacentDates returns the two dates from a sorted date slice that bracket target.
//
// It assumes dates is sorted in ascending order. If target is outside the
// provided range, it returns the nearest boundary pair.
func AdjacentDates(target date.Date, dates []date.Date) (date.Date, date.Date, error) {
	if len(dates) < 2 {
		return date.Date{}, date.Date{}, fmt.Errorf("AdjacentDates: got %d: %w", len(dates), ErrTooFewDates)
	}

	// First index with dates[i] >= target.
	i := sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})

	if i <= 0 {
		return dates[0], dates[1], nil
	}
	if i >= len(dates) {
		return dates[len(dates)-2], dates[len(dates)-1], nil
	}
	return dates[i-1], dates[i], nil
}
