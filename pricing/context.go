// Package pricing carries the evaluation date every computation is anchored to.
package pricing

import (
	"fmt"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
)

// Context holds the evaluation date used for pricing.
type Context struct {
	EvalDate date.Date
}

// NewContext returns a context evaluated on d.
func NewContext(d date.Date) Context {
	return Context{EvalDate: d}
}

// Today returns a context evaluated on the current UTC date.
func Today() Context {
	return Context{EvalDate: date.Today()}
}

// SettlementDate advances the evaluation date by days business days on cal.
// With zero days the evaluation date is rolled forward to a business day.
func (c Context) SettlementDate(cal calendar.Calendar, days int) (date.Date, error) {
	if c.EvalDate.IsZero() {
		return date.Date{}, fmt.Errorf("pricing.SettlementDate: missing evaluation date: %w", date.ErrInvalidDate)
	}
	if days < 0 {
		return date.Date{}, fmt.Errorf("pricing.SettlementDate: negative settlement days %d", days)
	}
	return cal.Advance(c.EvalDate, days)
}
