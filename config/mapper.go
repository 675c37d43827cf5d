package config

import (
	"fmt"
	"strings"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/date"
	"github.com/meenmo/bondlib/daycount"
	"github.com/meenmo/bondlib/rates"
	"github.com/meenmo/bondlib/schedule"
)

// Resolved is a Conventions document mapped onto typed values.
type Resolved struct {
	CalendarID            calendar.CalendarID
	Calendar              calendar.Calendar
	SettlementDays        int
	DayCounter            daycount.DayCounter
	Compounding           rates.Compounding
	Frequency             date.Frequency
	BusinessDayConvention calendar.BusinessDayConvention
	DateGeneration        schedule.DateGenerationRule
	EndOfMonth            bool
	Solver                SolverConfig
}

// Resolve maps names onto typed conventions. Omitted optional keys take
// defaults: settlement days 0, business-day convention Unadjusted,
// generation Backward and the DefaultConfig solver.
func (c Conventions) Resolve() (Resolved, error) {
	out := Resolved{
		BusinessDayConvention: calendar.Unadjusted,
		DateGeneration:        schedule.Backward,
		EndOfMonth:            c.EndOfMonth,
		Solver:                DefaultConfig().Solver,
	}

	if strings.TrimSpace(c.Calendar) == "" {
		return Resolved{}, invalidField("calendar", "calendar is required")
	}
	cal, err := calendar.ForID(calendar.CalendarID(c.Calendar))
	if err != nil {
		return Resolved{}, invalidField("calendar", fmt.Sprintf("unknown calendar %q", c.Calendar))
	}
	out.CalendarID = calendar.CalendarID(strings.ToUpper(strings.TrimSpace(c.Calendar)))
	out.Calendar = cal

	if c.SettlementDays != nil {
		if *c.SettlementDays < 0 {
			return Resolved{}, invalidField("settlement_days", fmt.Sprintf("must be non-negative, got %d", *c.SettlementDays))
		}
		out.SettlementDays = *c.SettlementDays
	}

	if strings.TrimSpace(c.DayCounter) == "" {
		return Resolved{}, invalidField("day_counter", "day counter is required")
	}
	conv, err := daycount.Parse(c.DayCounter)
	if err != nil {
		return Resolved{}, invalidField("day_counter", fmt.Sprintf("unknown convention %q", c.DayCounter))
	}
	out.DayCounter = daycount.New(conv)

	if strings.TrimSpace(c.Compounding) == "" {
		return Resolved{}, invalidField("compounding", "compounding is required")
	}
	if out.Compounding, err = rates.ParseCompounding(c.Compounding); err != nil {
		return Resolved{}, invalidField("compounding", fmt.Sprintf("unknown compounding %q", c.Compounding))
	}

	out.Frequency = date.NoFrequency
	if strings.TrimSpace(c.Frequency) != "" {
		if out.Frequency, err = date.ParseFrequency(c.Frequency); err != nil {
			return Resolved{}, invalidField("frequency", fmt.Sprintf("unknown frequency %q", c.Frequency))
		}
	}
	if out.Compounding != rates.Simple && out.Compounding != rates.Continuous && out.Frequency.PerYear() == 0 {
		return Resolved{}, invalidField("frequency", fmt.Sprintf("%s compounding needs a frequency", out.Compounding))
	}

	if strings.TrimSpace(c.BusinessDayConvention) != "" {
		if out.BusinessDayConvention, err = calendar.ParseBusinessDayConvention(c.BusinessDayConvention); err != nil {
			return Resolved{}, invalidField("business_day_convention", fmt.Sprintf("unknown convention %q", c.BusinessDayConvention))
		}
	}

	if strings.TrimSpace(c.DateGeneration) != "" {
		if out.DateGeneration, err = schedule.ParseRule(c.DateGeneration); err != nil {
			return Resolved{}, invalidField("date_generation", fmt.Sprintf("unknown rule %q", c.DateGeneration))
		}
	}

	if c.Solver != nil {
		if out.Solver, err = mapSolver(out.Solver, *c.Solver); err != nil {
			return Resolved{}, err
		}
	}
	return out, nil
}

func mapSolver(def SolverConfig, y YAMLSolver) (SolverConfig, error) {
	out := def
	if y.Accuracy != nil {
		out.Accuracy = *y.Accuracy
	}
	if y.XAccuracy != nil {
		out.XAccuracy = *y.XAccuracy
	}
	if y.MaxEvaluations != nil {
		out.MaxEvaluations = *y.MaxEvaluations
	}
	if y.Step != nil {
		out.Step = *y.Step
	}
	if y.LowerBound != nil {
		out.LowerBound = *y.LowerBound
	}
	if y.UpperBound != nil {
		out.UpperBound = *y.UpperBound
	}

	switch {
	case !(out.Accuracy > 0):
		return SolverConfig{}, invalidField("solver.accuracy", fmt.Sprintf("must be positive, got %g", out.Accuracy))
	case !(out.XAccuracy > 0):
		return SolverConfig{}, invalidField("solver.x_accuracy", fmt.Sprintf("must be positive, got %g", out.XAccuracy))
	case out.MaxEvaluations < 3:
		return SolverConfig{}, invalidField("solver.max_evaluations", fmt.Sprintf("must be at least 3, got %d", out.MaxEvaluations))
	case !(out.Step > 0):
		return SolverConfig{}, invalidField("solver.step", fmt.Sprintf("must be positive, got %g", out.Step))
	case !(out.LowerBound < out.UpperBound):
		return SolverConfig{}, invalidField("solver.upper_bound", fmt.Sprintf("must exceed lower_bound %g, got %g", out.LowerBound, out.UpperBound))
	}
	return out, nil
}

func invalidField(field, msg string) error {
	return fmt.Errorf("%s: %s: %w", field, msg, ErrInvalidConfig)
}
