// Package bond models zero-coupon and fixed-rate bonds and converts between
// their prices and yields.
package bond

import (
	"errors"
	"fmt"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/pricing"
)

var (
	// ErrAlreadyMatured is returned when settlement is on or after maturity.
	ErrAlreadyMatured = errors.New("bond already matured")
	// ErrInvalidBond is returned for inconsistent construction inputs.
	ErrInvalidBond = errors.New("invalid bond")
)

// Bond is the read-only view shared by every bond type.
type Bond interface {
	CashFlows() []CashFlow
	MaturityDate() date.Date
	SettlementDays() int
	Calendar() calendar.Calendar
	FaceAmount() float64
}

// SettlementDate returns the evaluation date of ctx advanced by the bond's
// settlement days on its calendar.
func SettlementDate(b Bond, ctx pricing.Context) (date.Date, error) {
	return ctx.SettlementDate(b.Calendar(), b.SettlementDays())
}

// IsTradable reports whether b still has flows to pay after settlement.
func IsTradable(b Bond, settlement date.Date) bool {
	if !settlement.Before(b.MaturityDate()) {
		return false
	}
	return !NextCashFlowDate(b, settlement).IsZero()
}

// NextCashFlowDate returns the first payment date strictly after ref, or the zero date.
func NextCashFlowDate(b Bond, ref date.Date) date.Date {
	for _, cf := range b.CashFlows() {
		if cf.Date.After(ref) {
			return cf.Date
		}
	}
	return date.Date{}
}

// PreviousCashFlowDate returns the last payment date on or before ref, or the zero date.
func PreviousCashFlowDate(b Bond, ref date.Date) date.Date {
	var prev date.Date
	for _, cf := range b.CashFlows() {
		if cf.Date.After(ref) {
			break
		}
		prev = cf.Date
	}
	return prev
}

func checkSettlement(op string, b Bond, settlement date.Date) error {
	if settlement.IsZero() {
		return fmt.Errorf("%s: settlement date is required: %w", op, date.ErrInvalidDate)
	}
	if !IsTradable(b, settlement) {
		return fmt.Errorf("%s: settlement %s, maturity %s: %w", op, settlement, b.MaturityDate(), ErrAlreadyMatured)
	}
	return nil
}
