package date_test

import (
	"errors"
	"testing"
	"time"

	"github.com/meenmo/bondlib/date"
)

func TestNewRejectsInvalidDates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		y int
		m time.Month
		d int
	}{
		{2023, time.February, 29},
		{2022, time.April, 31},
		{1900, time.January, 1},
		{2200, time.January, 1},
		{2022, time.Month(13), 1},
	}
	for _, c := range cases {
		if _, err := date.New(c.y, c.m, c.d); !errors.Is(err, date.ErrInvalidDate) {
			t.Fatalf("New(%d,%d,%d): expected ErrInvalidDate, got %v", c.y, c.m, c.d, err)
		}
	}
	if _, err := date.New(2024, time.February, 29); err != nil {
		t.Fatalf("New leap day: %v", err)
	}
}

func TestParseAndString(t *testing.T) {
	t.Parallel()

	d, err := date.Parse("2022-07-05")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d != date.MustNew(2022, time.July, 5) {
		t.Fatalf("Parse mismatch: got %s", d)
	}
	if d.String() != "2022-07-05" {
		t.Fatalf("String mismatch: got %s", d.String())
	}
	if _, err := date.Parse("2022-13-01"); !errors.Is(err, date.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDayArithmetic(t *testing.T) {
	t.Parallel()

	settle := date.MustNew(2022, time.June, 7)
	mat := date.MustNew(2022, time.July, 5)
	if got := settle.DaysUntil(mat); got != 28 {
		t.Fatalf("DaysUntil mismatch: got %d", got)
	}
	if got := mat.Sub(settle); got != 28 {
		t.Fatalf("Sub mismatch: got %d", got)
	}
	if got := settle.AddDays(28); got != mat {
		t.Fatalf("AddDays mismatch: got %s", got)
	}
	if !settle.Before(mat) || !mat.After(settle) || settle.Compare(mat) != -1 {
		t.Fatalf("ordering mismatch")
	}
	if settle.Weekday() != time.Tuesday {
		t.Fatalf("Weekday mismatch: got %s", settle.Weekday())
	}
	if got := date.MustNew(2022, time.December, 31).DayOfYear(); got != 365 {
		t.Fatalf("DayOfYear mismatch: got %d", got)
	}
	if got := date.MustNew(2000, time.January, 1).Serial(); got != 36526 {
		t.Fatalf("Serial mismatch: got %d", got)
	}
	back, err := date.FromSerial(36526)
	if err != nil || back != date.MustNew(2000, time.January, 1) {
		t.Fatalf("FromSerial mismatch: got %s, %v", back, err)
	}
}

func TestAddPeriodClampsMonthEnd(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start date.Date
		p     string
		eom   bool
		want  date.Date
	}{
		{date.MustNew(2023, time.January, 31), "1M", false, date.MustNew(2023, time.February, 28)},
		{date.MustNew(2024, time.January, 31), "1M", false, date.MustNew(2024, time.February, 29)},
		{date.MustNew(2024, time.February, 29), "1Y", false, date.MustNew(2025, time.February, 28)},
		{date.MustNew(2023, time.February, 28), "1M", false, date.MustNew(2023, time.March, 28)},
		{date.MustNew(2023, time.February, 28), "1M", true, date.MustNew(2023, time.March, 31)},
		{date.MustNew(2023, time.April, 30), "-6M", true, date.MustNew(2022, time.October, 31)},
		{date.MustNew(2023, time.March, 15), "2W", true, date.MustNew(2023, time.March, 29)},
		{date.MustNew(2023, time.January, 15), "-15M", false, date.MustNew(2021, time.October, 15)},
	}
	for _, c := range cases {
		got := c.start.AddPeriodEOM(date.MustParsePeriod(c.p), c.eom)
		if got != c.want {
			t.Fatalf("%s + %s (eom=%v) mismatch: got %s want %s", c.start, c.p, c.eom, got, c.want)
		}
	}
}

func TestNthWeekday(t *testing.T) {
	t.Parallel()

	got, err := date.NthWeekday(3, time.Monday, time.January, 2022)
	if err != nil {
		t.Fatalf("NthWeekday: %v", err)
	}
	if got != date.MustNew(2022, time.January, 17) {
		t.Fatalf("NthWeekday mismatch: got %s", got)
	}
	if _, err := date.NthWeekday(5, time.Monday, time.February, 2022); !errors.Is(err, date.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestTextMarshaling(t *testing.T) {
	t.Parallel()

	var d date.Date
	if err := d.UnmarshalText([]byte("2021-07-05")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	b, err := d.MarshalText()
	if err != nil || string(b) != "2021-07-05" {
		t.Fatalf("MarshalText mismatch: got %s, %v", b, err)
	}
}
