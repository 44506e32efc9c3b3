package valuation

import "math"

const (
	MinForecastYears = 1
	MaxForecastYears = 30
)

// Growth describes a forecast derived by compounding a starting cash flow.
// StartingCashFlow is the last historical year; year t of the forecast is
// StartingCashFlow * (1+GrowthRate)^t for t = 1..Years.
type Growth struct {
	StartingCashFlow float64
	GrowthRate       float64
	Years            int
}

// Input is a request to value. All rates are ratios (0.08 = 8%).
//
// ForecastCashFlows takes precedence over Growth whenever it is non-nil, so an
// empty explicit forecast is still an explicit forecast of length zero.
// A nil TerminalValue means "derive it"; a non-nil one, including 0, is used
// verbatim.
type Input struct {
	ForecastCashFlows  []float64
	Growth             *Growth
	DiscountRate       float64
	TerminalGrowthRate *float64
	NetDebt            float64
	TerminalValue      *float64
}

func (in *Input) explicit() bool {
	return in.ForecastCashFlows != nil || in.Growth == nil
}

// ForecastLength is the number of forecast years the input asks for.
func (in *Input) ForecastLength() int {
	if in.explicit() {
		return len(in.ForecastCashFlows)
	}
	return in.Growth.Years
}

// Forecast materializes the forecast series. Explicit flows are copied as-is.
func (in *Input) Forecast() []float64 {
	if in.explicit() {
		out := make([]float64, len(in.ForecastCashFlows))
		copy(out, in.ForecastCashFlows)
		return out
	}

	n := in.Growth.Years
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	factor := 1 + in.Growth.GrowthRate
	for t := 1; t <= n; t++ {
		out[t-1] = in.Growth.StartingCashFlow * math.Pow(factor, float64(t))
	}
	return out
}

// DerivesTerminalValue reports whether the Gordon Growth terminal value will
// be computed: no explicit terminal value and a terminal growth rate given.
func (in *Input) DerivesTerminalValue() bool {
	return in.TerminalValue == nil && in.TerminalGrowthRate != nil
}
