package model

type ValuationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	Result              ValuationResult     `json:"result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

// ValuationResult carries monetary values rounded to two decimals. Rates are
// ratios as used in the calculation.
type ValuationResult struct {
	ForecastCashFlows       []float64 `json:"forecast_cash_flows"`
	DiscountedCashFlows     []float64 `json:"discounted_cash_flows"`
	TerminalValue           float64   `json:"terminal_value"`
	TerminalValueDerived    bool      `json:"terminal_value_derived"`
	DiscountedTerminalValue float64   `json:"discounted_terminal_value"`
	EnterpriseValue         float64   `json:"enterprise_value"`
	EquityValue             float64   `json:"equity_value"`
	NetDebt                 float64   `json:"net_debt"`
	DiscountRate            float64   `json:"discount_rate"`
	TerminalGrowthRate      *float64  `json:"terminal_growth_rate"`
}

type ErrorResponse struct {
	Status    int            `json:"status"`
	ErrorCode string         `json:"error_code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

const OutcomeSuccess = "SUCCESS"
