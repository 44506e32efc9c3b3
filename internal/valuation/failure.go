package valuation

import "fmt"

// Code is the stable identifier of a violated business rule.
type Code string

const (
	CodeForecastPeriodOutOfRange         Code = "FORECAST_PERIOD_OUT_OF_RANGE"
	CodeNegativeCashFlowValue            Code = "NEGATIVE_CASH_FLOW_VALUE"
	CodeInvalidDiscountRate              Code = "INVALID_DISCOUNT_RATE"
	CodeInvalidTerminalGrowthRate        Code = "INVALID_TERMINAL_GROWTH_RATE"
	CodeDiscountRateNotGreaterThanGrowth Code = "DISCOUNT_RATE_NOT_GREATER_THAN_GROWTH"
)

// Codes lists every failure identifier in check order.
var Codes = []Code{
	CodeForecastPeriodOutOfRange,
	CodeNegativeCashFlowValue,
	CodeInvalidDiscountRate,
	CodeInvalidTerminalGrowthRate,
	CodeDiscountRateNotGreaterThanGrowth,
}

const (
	FieldForecastCashFlows  = "forecast_cash_flows"
	FieldStartingCashFlow   = "starting_cash_flow"
	FieldYears              = "years"
	FieldDiscountRate       = "discount_rate"
	FieldTerminalGrowthRate = "terminal_growth_rate"
)

// Failure is the single rule violation reported for an input. Only the
// context fields relevant to Code are set.
type Failure struct {
	Code    Code
	Message string
	Field   string

	Count              *int
	Index              *int
	Value              *float64
	DiscountRate       *float64
	TerminalGrowthRate *float64
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Details returns the carried context keyed by wire field name.
func (f *Failure) Details() map[string]any {
	d := make(map[string]any, 4)
	if f.Field != "" {
		d["field"] = f.Field
	}
	if f.Count != nil {
		d["count"] = *f.Count
	}
	if f.Index != nil {
		d["index"] = *f.Index
	}
	if f.Value != nil {
		d["value"] = *f.Value
	}
	if f.DiscountRate != nil {
		d["discount_rate"] = *f.DiscountRate
	}
	if f.TerminalGrowthRate != nil {
		d["terminal_growth_rate"] = *f.TerminalGrowthRate
	}
	return d
}
