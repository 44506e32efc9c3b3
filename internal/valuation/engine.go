package valuation

import "math"

// Result holds the valuation at full double precision. Use Rounded for the
// externally visible view; the values here are never overwritten.
type Result struct {
	ForecastCashFlows       []float64
	DiscountedCashFlows     []float64
	TerminalValue           float64
	DiscountedTerminalValue float64
	EnterpriseValue         float64
	EquityValue             float64

	// TerminalValueDerived is true when TerminalValue came from the Gordon
	// Growth Model rather than the input.
	TerminalValueDerived bool
}

// Compute values a validated input. It is total over inputs for which
// Validate returns nil and has no side effects.
func Compute(in *Input) *Result {
	forecast := in.Forecast()
	n := len(forecast)
	base := 1 + in.DiscountRate

	discounted := make([]float64, n)
	var pvSum float64
	for i, cf := range forecast {
		discounted[i] = cf / math.Pow(base, float64(i+1))
		pvSum += discounted[i]
	}

	tv, derived := terminalValue(in, forecast)
	pvTV := tv / math.Pow(base, float64(n))

	ev := pvSum + pvTV
	return &Result{
		ForecastCashFlows:       forecast,
		DiscountedCashFlows:     discounted,
		TerminalValue:           tv,
		DiscountedTerminalValue: pvTV,
		EnterpriseValue:         ev,
		EquityValue:             ev - in.NetDebt,
		TerminalValueDerived:    derived,
	}
}

func terminalValue(in *Input, forecast []float64) (float64, bool) {
	if in.TerminalValue != nil {
		return *in.TerminalValue, false
	}
	if in.TerminalGrowthRate == nil || len(forecast) == 0 {
		return 0, false
	}
	return GordonGrowth(forecast[len(forecast)-1], in.DiscountRate, *in.TerminalGrowthRate), true
}

// GordonGrowth returns lastCashFlow*(1+g)/(r-g). Callers guarantee r > g.
func GordonGrowth(lastCashFlow, r, g float64) float64 {
	return lastCashFlow * (1 + g) / (r - g)
}

// Finite reports whether every monetary field is a finite number. Inputs that
// pass Validate can still overflow float64 range.
func (r *Result) Finite() bool {
	for _, vs := range [][]float64{r.ForecastCashFlows, r.DiscountedCashFlows} {
		for _, v := range vs {
			if !finite(v) {
				return false
			}
		}
	}
	return finite(r.TerminalValue) && finite(r.DiscountedTerminalValue) &&
		finite(r.EnterpriseValue) && finite(r.EquityValue)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Rounded returns an independent copy with every monetary field rounded
// half-up to two decimals.
func (r *Result) Rounded() Result {
	return Result{
		ForecastCashFlows:       roundAll(r.ForecastCashFlows),
		DiscountedCashFlows:     roundAll(r.DiscountedCashFlows),
		TerminalValue:           RoundCurrency(r.TerminalValue),
		DiscountedTerminalValue: RoundCurrency(r.DiscountedTerminalValue),
		EnterpriseValue:         RoundCurrency(r.EnterpriseValue),
		EquityValue:             RoundCurrency(r.EquityValue),
		TerminalValueDerived:    r.TerminalValueDerived,
	}
}
