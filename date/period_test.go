package date_test

import (
	"errors"
	"testing"

	"github.com/meenmo/bondlib/date"
)

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	cases := map[string]date.Period{
		"3M":  {Length: 3, Unit: date.Months},
		"10y": {Length: 10, Unit: date.Years},
		"2W":  {Length: 2, Unit: date.Weeks},
		"-1D": {Length: -1, Unit: date.Days},
	}
	for in, want := range cases {
		got, err := date.ParsePeriod(in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePeriod(%q) mismatch: got %s", in, got)
		}
	}
	for _, bad := range []string{"", "M", "3Q", "xM"} {
		if _, err := date.ParsePeriod(bad); !errors.Is(err, date.ErrInvalidPeriod) {
			t.Fatalf("ParsePeriod(%q): expected ErrInvalidPeriod, got %v", bad, err)
		}
	}
}

func TestPeriodNormalizeAndCompare(t *testing.T) {
	t.Parallel()

	if got := date.NewPeriod(12, date.Months).Normalized(); got != date.NewPeriod(1, date.Years) {
		t.Fatalf("Normalized mismatch: got %s", got)
	}
	if got := date.NewPeriod(14, date.Days).Normalized(); got != date.NewPeriod(2, date.Weeks) {
		t.Fatalf("Normalized mismatch: got %s", got)
	}
	if !date.NewPeriod(12, date.Months).Equal(date.NewPeriod(1, date.Years)) {
		t.Fatalf("12M should equal 1Y")
	}
	if c, err := date.NewPeriod(6, date.Months).Compare(date.NewPeriod(1, date.Years)); err != nil || c != -1 {
		t.Fatalf("6M vs 1Y: got %d, %v", c, err)
	}
	if c, err := date.NewPeriod(40, date.Days).Compare(date.NewPeriod(1, date.Months)); err != nil || c != 1 {
		t.Fatalf("40D vs 1M: got %d, %v", c, err)
	}
	if _, err := date.NewPeriod(30, date.Days).Compare(date.NewPeriod(1, date.Months)); !errors.Is(err, date.ErrIncomparablePeriods) {
		t.Fatalf("30D vs 1M: expected ErrIncomparablePeriods, got %v", err)
	}
}

func TestFrequencyPeriodRoundTrip(t *testing.T) {
	t.Parallel()

	freqs := []date.Frequency{
		date.Annual, date.Semiannual, date.EveryFourthMonth, date.Quarterly,
		date.Bimonthly, date.Monthly, date.EveryFourthWeek, date.Biweekly,
		date.Weekly, date.Daily,
	}
	for _, f := range freqs {
		got, err := f.Period().Frequency()
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if got != f {
			t.Fatalf("%s round trip mismatch: got %s", f, got)
		}
	}
	if p := date.Semiannual.Period(); p != date.NewPeriod(6, date.Months) {
		t.Fatalf("Semiannual period mismatch: got %s", p)
	}
	if _, err := date.NewPeriod(5, date.Months).Frequency(); !errors.Is(err, date.ErrInvalidFrequency) {
		t.Fatalf("5M: expected ErrInvalidFrequency, got %v", err)
	}
}

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	cases := map[string]date.Frequency{
		"SEMIANNUAL":  date.Semiannual,
		"semi-annual": date.Semiannual,
		"Quarterly":   date.Quarterly,
		"6M":          date.Semiannual,
		"12":          date.Monthly,
		"1Y":          date.Annual,
	}
	for in, want := range cases {
		got, err := date.ParseFrequency(in)
		if err != nil || got != want {
			t.Fatalf("ParseFrequency(%q) mismatch: got %s, %v", in, got, err)
		}
	}
	if _, err := date.ParseFrequency("fortnightly-ish"); !errors.Is(err, date.ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}
