package date

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Frequency is the number of events per year.
type Frequency int

const (
	NoFrequency      Frequency = -1
	Once             Frequency = 0
	Annual           Frequency = 1
	Semiannual       Frequency = 2
	EveryFourthMonth Frequency = 3
	Quarterly        Frequency = 4
	Bimonthly        Frequency = 6
	Monthly          Frequency = 12
	EveryFourthWeek  Frequency = 13
	Biweekly         Frequency = 26
	Weekly           Frequency = 52
	Daily            Frequency = 365
)

// ErrInvalidFrequency is returned for unknown frequency names and for
// periods that do not map onto a frequency.
var ErrInvalidFrequency = errors.New("invalid frequency")

var frequencyNames = map[Frequency]string{
	NoFrequency:      "NO_FREQUENCY",
	Once:             "ONCE",
	Annual:           "ANNUAL",
	Semiannual:       "SEMIANNUAL",
	EveryFourthMonth: "EVERY_FOURTH_MONTH",
	Quarterly:        "QUARTERLY",
	Bimonthly:        "BIMONTHLY",
	Monthly:          "MONTHLY",
	EveryFourthWeek:  "EVERY_FOURTH_WEEK",
	Biweekly:         "BIWEEKLY",
	Weekly:           "WEEKLY",
	Daily:            "DAILY",
}

func (f Frequency) String() string {
	if s, ok := frequencyNames[f]; ok {
		return s
	}
	return "Frequency(" + strconv.Itoa(int(f)) + ")"
}

// PerYear returns the number of events per year as a float, 0 for Once and NoFrequency.
func (f Frequency) PerYear() float64 {
	if f <= 0 {
		return 0
	}
	return float64(f)
}

// Period returns the tenor between two events: Semiannual -> 6M, Weekly -> 1W.
// Once maps to the zero period; NoFrequency maps to 0D as well.
func (f Frequency) Period() Period {
	switch f {
	case NoFrequency, Once:
		return Period{Unit: Days}
	case Annual:
		return Period{Length: 1, Unit: Years}
	case Semiannual, EveryFourthMonth, Quarterly, Bimonthly, Monthly:
		return Period{Length: 12 / int(f), Unit: Months}
	case EveryFourthWeek, Biweekly, Weekly:
		return Period{Length: 52 / int(f), Unit: Weeks}
	case Daily:
		return Period{Length: 1, Unit: Days}
	}
	return Period{Unit: Days}
}

// Frequency returns the frequency whose period is p, e.g. 3M -> Quarterly.
func (p Period) Frequency() (Frequency, error) {
	n := p.Length
	if n < 0 {
		n = -n
	}
	if n == 0 {
		if p.Unit == Years {
			return NoFrequency, nil
		}
		return Once, nil
	}
	switch p.Unit {
	case Years:
		if n == 1 {
			return Annual, nil
		}
	case Months:
		if 12%n == 0 {
			return Frequency(12 / n), nil
		}
	case Weeks:
		switch n {
		case 1:
			return Weekly, nil
		case 2:
			return Biweekly, nil
		case 4:
			return EveryFourthWeek, nil
		}
	case Days:
		if n == 1 {
			return Daily, nil
		}
	}
	return NoFrequency, fmt.Errorf("Period.Frequency: %s has no matching frequency: %w", p, ErrInvalidFrequency)
}

// ParseFrequency accepts frequency names ("SEMIANNUAL", "semi-annual"), their
// tenor ("6M") or the events-per-year count ("2").
func ParseFrequency(s string) (Frequency, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "SEMI_ANNUAL":
		key = "SEMIANNUAL"
	case "BI_MONTHLY":
		key = "BIMONTHLY"
	case "BI_WEEKLY":
		key = "BIWEEKLY"
	}
	for f, name := range frequencyNames {
		if name == key {
			return f, nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil {
		if _, ok := frequencyNames[Frequency(n)]; ok {
			return Frequency(n), nil
		}
	}
	if p, err := ParsePeriod(key); err == nil {
		if f, err := p.Frequency(); err == nil {
			return f, nil
		}
	}
	return NoFrequency, fmt.Errorf("ParseFrequency: %q: %w", s, ErrInvalidFrequency)
}
