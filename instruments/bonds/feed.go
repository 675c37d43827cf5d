package bonds

import (
	"fmt"
	"slices"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
)

// FeedBond is a bond whose flows come straight from a cashflow feed. The
// flows carry no accrual periods, so yields are stepped between payment
// dates and AccruedAmount is always zero.
type FeedBond struct {
	settlementDays int
	cal            calendar.Calendar
	face           float64
	flows          []bond.CashFlow
}

// NewFeedBond converts feed into a bond priced in currency code. The feed
// may arrive unordered; dates must be distinct.
func NewFeedBond(feed []CashflowCents, code string, settlementDays int, cal calendar.Calendar, face float64) (*FeedBond, error) {
	if len(feed) == 0 {
		return nil, fmt.Errorf("NewFeedBond: empty feed: %w", bond.ErrInvalidBond)
	}
	if settlementDays < 0 || !(face > 0) {
		return nil, fmt.Errorf("NewFeedBond: settlement days %d, face %v: %w", settlementDays, face, bond.ErrInvalidBond)
	}
	flows, err := ToCashflows(feed, code)
	if err != nil {
		return nil, fmt.Errorf("NewFeedBond: %w", err)
	}
	slices.SortFunc(flows, func(a, b bond.CashFlow) int { return a.Date.Compare(b.Date) })
	for i := 1; i < len(flows); i++ {
		if flows[i].Date == flows[i-1].Date {
			return nil, fmt.Errorf("NewFeedBond: duplicate payment on %s: %w", flows[i].Date, bond.ErrInvalidBond)
		}
	}
	return &FeedBond{settlementDays: settlementDays, cal: cal, face: face, flows: flows}, nil
}

func (f *FeedBond) CashFlows() []bond.CashFlow  { return append([]bond.CashFlow(nil), f.flows...) }
func (f *FeedBond) MaturityDate() date.Date     { return f.flows[len(f.flows)-1].Date }
func (f *FeedBond) SettlementDays() int         { return f.settlementDays }
func (f *FeedBond) Calendar() calendar.Calendar { return f.cal }
func (f *FeedBond) FaceAmount() float64         { return f.face }
