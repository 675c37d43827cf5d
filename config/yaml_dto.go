package config

// Conventions is the YAML description of how a market quotes its bonds.
//
//	calendar: USGOV
//	settlement_days: 1
//	day_counter: ACT/ACT ISMA
//	compounding: SIMPLE_THEN_COMPOUNDED
//	frequency: SEMIANNUAL
//	business_day_convention: UNADJUSTED
//	date_generation: BACKWARD
//	end_of_month: false
type Conventions struct {
	Calendar              string      `yaml:"calendar"`
	SettlementDays        *int        `yaml:"settlement_days"`
	DayCounter            string      `yaml:"day_counter"`
	Compounding           string      `yaml:"compounding"`
	Frequency             string      `yaml:"frequency"`
	BusinessDayConvention string      `yaml:"business_day_convention"`
	DateGeneration        string      `yaml:"date_generation"`
	EndOfMonth            bool        `yaml:"end_of_month"`
	Solver                *YAMLSolver `yaml:"solver"`
}

// YAMLSolver overrides individual solver defaults; absent keys keep them.
type YAMLSolver struct {
	Accuracy       *float64 `yaml:"accuracy"`
	XAccuracy      *float64 `yaml:"x_accuracy"`
	MaxEvaluations *int     `yaml:"max_evaluations"`
	Step           *float64 `yaml:"step"`
	LowerBound     *float64 `yaml:"lower_bound"`
	UpperBound     *float64 `yaml:"upper_bound"`
}
