package model

// ValuationRequest is the wire form of a DCF request. A forecast is given
// either as explicit forecast_cash_flows or as the growth triple
// starting_cash_flow, growth_rate, years.
type ValuationRequest struct {
	ForecastCashFlows []float64 `json:"forecast_cash_flows" validate:"required_without=StartingCashFlow"`

	StartingCashFlow *float64 `json:"starting_cash_flow" validate:"required_without=ForecastCashFlows,excluded_with=ForecastCashFlows"`
	GrowthRate       *float64 `json:"growth_rate" validate:"required_with=StartingCashFlow,excluded_with=ForecastCashFlows"`
	Years            *int     `json:"years" validate:"required_with=StartingCashFlow,excluded_with=ForecastCashFlows"`

	DiscountRate       *float64 `json:"discount_rate" validate:"required"`
	TerminalGrowthRate *float64 `json:"terminal_growth_rate"`
	NetDebt            *float64 `json:"net_debt"`
	TerminalValue      *float64 `json:"terminal_value"`

	// RateFormat says how rates are expressed: "ratio" (0.08) or "percent" (8.0).
	RateFormat string `json:"rate_format" validate:"omitempty,oneof=ratio percent"`
}

const (
	RateFormatRatio   = "ratio"
	RateFormatPercent = "percent"
)
