package bond

import (
	"fmt"
	"math"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/rates"
)

// ZeroCouponBond pays its face amount once, at maturity.
type ZeroCouponBond struct {
	settlementDays int
	cal            calendar.Calendar
	face           float64
	maturity       date.Date
	issue          date.Date
	flows          []CashFlow
}

// NewZeroCouponBond builds a bond redeeming face on maturity adjusted by
// paymentConv. issueDate may be zero.
func NewZeroCouponBond(settlementDays int, cal calendar.Calendar, face float64, maturity date.Date,
	paymentConv calendar.BusinessDayConvention, issueDate date.Date) (*ZeroCouponBond, error) {
	if err := checkCommon("NewZeroCouponBond", settlementDays, face); err != nil {
		return nil, err
	}
	if maturity.IsZero() {
		return nil, fmt.Errorf("NewZeroCouponBond: maturity is required: %w", ErrInvalidBond)
	}
	if !issueDate.IsZero() && !issueDate.Before(maturity) {
		return nil, fmt.Errorf("NewZeroCouponBond: issue %s not before maturity %s: %w", issueDate, maturity, ErrInvalidBond)
	}
	pay, err := cal.Adjust(maturity, paymentConv)
	if err != nil {
		return nil, fmt.Errorf("NewZeroCouponBond: %w", err)
	}
	return &ZeroCouponBond{
		settlementDays: settlementDays,
		cal:            cal,
		face:           face,
		maturity:       maturity,
		issue:          issueDate,
		flows:          []CashFlow{{Date: pay, Principal: face}},
	}, nil
}

func (z *ZeroCouponBond) CashFlows() []CashFlow       { return append([]CashFlow(nil), z.flows...) }
func (z *ZeroCouponBond) MaturityDate() date.Date     { return z.maturity }
func (z *ZeroCouponBond) IssueDate() date.Date        { return z.issue }
func (z *ZeroCouponBond) SettlementDays() int         { return z.settlementDays }
func (z *ZeroCouponBond) Calendar() calendar.Calendar { return z.cal }
func (z *ZeroCouponBond) FaceAmount() float64         { return z.face }

// PriceFromDiscountYield prices the bond off a money-market discount yield:
// face × (1 − dy × days/360), days counted to the redemption payment date.
func (z *ZeroCouponBond) PriceFromDiscountYield(dy float64, settlement date.Date) (float64, error) {
	if err := checkSettlement("PriceFromDiscountYield", z, settlement); err != nil {
		return 0, err
	}
	if math.IsNaN(dy) || math.IsInf(dy, 0) {
		return 0, fmt.Errorf("PriceFromDiscountYield: discount yield %v: %w", dy, rates.ErrNumeric)
	}
	days := settlement.DaysUntil(z.flows[0].Date)
	price := z.face * (1 - dy*float64(days)/360)
	if price <= 0 {
		return 0, fmt.Errorf("PriceFromDiscountYield: discount yield %v over %d days gives price %v: %w", dy, days, price, rates.ErrNumeric)
	}
	return price, nil
}

func checkCommon(op string, settlementDays int, face float64) error {
	if settlementDays < 0 {
		return fmt.Errorf("%s: negative settlement days %d: %w", op, settlementDays, ErrInvalidBond)
	}
	if !(face > 0) || math.IsInf(face, 0) {
		return fmt.Errorf("%s: face amount %v must be positive: %w", op, face, ErrInvalidBond)
	}
	return nil
}
