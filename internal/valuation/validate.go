package valuation

import "fmt"

// check returns nil when its rule holds.
type check func(in *Input) *Failure

// checks run in this order and stop at the first failure.
var checks = []check{
	checkForecastLength,
	checkCashFlows,
	checkDiscountRate,
	checkTerminalGrowthRate,
	checkRateOrdering,
}

// Validate enforces the business rules on an already type-checked input.
// It returns nil or a *Failure describing the first violated rule.
func Validate(in *Input) error {
	for _, c := range checks {
		if f := c(in); f != nil {
			return f
		}
	}
	return nil
}

func checkForecastLength(in *Input) *Failure {
	n := in.ForecastLength()
	if n >= MinForecastYears && n <= MaxForecastYears {
		return nil
	}
	field := FieldForecastCashFlows
	if !in.explicit() {
		field = FieldYears
	}
	return &Failure{
		Code:    CodeForecastPeriodOutOfRange,
		Message: fmt.Sprintf("forecast period must be between %d and %d years, got %d", MinForecastYears, MaxForecastYears, n),
		Field:   field,
		Count:   &n,
	}
}

func checkCashFlows(in *Input) *Failure {
	if !in.explicit() && in.Growth.StartingCashFlow < 0 {
		v := in.Growth.StartingCashFlow
		return &Failure{
			Code:    CodeNegativeCashFlowValue,
			Message: fmt.Sprintf("starting cash flow must be non-negative, got %g", v),
			Field:   FieldStartingCashFlow,
			Value:   &v,
		}
	}

	for i, cf := range in.Forecast() {
		if cf < 0 {
			idx, v := i, cf
			return &Failure{
				Code:    CodeNegativeCashFlowValue,
				Message: fmt.Sprintf("cash flow at index %d must be non-negative, got %g", i, cf),
				Field:   FieldForecastCashFlows,
				Index:   &idx,
				Value:   &v,
			}
		}
	}
	return nil
}

func checkDiscountRate(in *Input) *Failure {
	if in.DiscountRate > 0 {
		return nil
	}
	v := in.DiscountRate
	return &Failure{
		Code:    CodeInvalidDiscountRate,
		Message: fmt.Sprintf("discount rate must be greater than 0, got %g", v),
		Field:   FieldDiscountRate,
		Value:   &v,
	}
}

func checkTerminalGrowthRate(in *Input) *Failure {
	if in.TerminalGrowthRate == nil || *in.TerminalGrowthRate >= 0 {
		return nil
	}
	v := *in.TerminalGrowthRate
	return &Failure{
		Code:    CodeInvalidTerminalGrowthRate,
		Message: fmt.Sprintf("terminal growth rate must be non-negative, got %g", v),
		Field:   FieldTerminalGrowthRate,
		Value:   &v,
	}
}

// No tolerance: equal rates are rejected.
func checkRateOrdering(in *Input) *Failure {
	if !in.DerivesTerminalValue() || in.DiscountRate > *in.TerminalGrowthRate {
		return nil
	}
	r, g := in.DiscountRate, *in.TerminalGrowthRate
	return &Failure{
		Code:               CodeDiscountRateNotGreaterThanGrowth,
		Message:            fmt.Sprintf("discount rate %g must be strictly greater than terminal growth rate %g", r, g),
		Field:              FieldTerminalGrowthRate,
		DiscountRate:       &r,
		TerminalGrowthRate: &g,
	}
}
