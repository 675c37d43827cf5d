package pricing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/pricing"
)

func TestSettlementDate(t *testing.T) {
	t.Parallel()

	cal, err := calendar.ForID(calendar.USGOV)
	if err != nil {
		t.Fatalf("ForID: %v", err)
	}
	ctx := pricing.NewContext(date.MustNew(2022, time.June, 6))
	got, err := ctx.SettlementDate(cal, 1)
	if err != nil {
		t.Fatalf("SettlementDate: %v", err)
	}
	if got != date.MustNew(2022, time.June, 7) {
		t.Fatalf("SettlementDate mismatch: got %s", got)
	}

	friday := pricing.NewContext(date.MustNew(2022, time.July, 1))
	got, err = friday.SettlementDate(cal, 1)
	if err != nil || got != date.MustNew(2022, time.July, 5) {
		t.Fatalf("SettlementDate over Independence Day mismatch: got %s, %v", got, err)
	}

	weekend := pricing.NewContext(date.MustNew(2022, time.June, 4))
	got, err = weekend.SettlementDate(cal, 0)
	if err != nil || got != date.MustNew(2022, time.June, 6) {
		t.Fatalf("SettlementDate T+0 mismatch: got %s, %v", got, err)
	}
}

func TestSettlementDateRequiresEvalDate(t *testing.T) {
	t.Parallel()

	var ctx pricing.Context
	if _, err := ctx.SettlementDate(calendar.Calendar{}, 1); !errors.Is(err, date.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
