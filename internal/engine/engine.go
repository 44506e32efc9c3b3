package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"dcf-engine/internal/model"
	"dcf-engine/internal/valuation"
)

// ErrNonFiniteResult is returned when an input that passes validation
// overflows float64 range, e.g. cash flows near 1e308.
var ErrNonFiniteResult = errors.New("valuation result is not a finite number")

// Options carries boundary defaults that are not part of the request.
type Options struct {
	// DefaultRateFormat applies when the request leaves rate_format empty.
	DefaultRateFormat string
}

// ToInput converts a shape-checked wire request into a valuation input,
// turning percent rates into ratios.
func ToInput(req *model.ValuationRequest, opts Options) *valuation.Input {
	format := req.RateFormat
	if format == "" {
		format = opts.DefaultRateFormat
	}
	scale := 1.0
	if format == model.RateFormatPercent {
		scale = 100
	}
	rate := func(v float64) float64 { return v / scale }

	in := &valuation.Input{
		DiscountRate: rate(deref(req.DiscountRate)),
		NetDebt:      deref(req.NetDebt),
	}

	if req.ForecastCashFlows != nil {
		in.ForecastCashFlows = append([]float64{}, req.ForecastCashFlows...)
	} else if req.StartingCashFlow != nil {
		years := 0
		if req.Years != nil {
			years = *req.Years
		}
		in.Growth = &valuation.Growth{
			StartingCashFlow: *req.StartingCashFlow,
			GrowthRate:       rate(deref(req.GrowthRate)),
			Years:            years,
		}
	}

	if req.TerminalGrowthRate != nil {
		g := rate(*req.TerminalGrowthRate)
		in.TerminalGrowthRate = &g
	}
	if req.TerminalValue != nil {
		tv := *req.TerminalValue
		in.TerminalValue = &tv
	}
	return in
}

// Process validates and values a request. A business-rule violation is
// returned as a *valuation.Failure and an overflow as ErrNonFiniteResult; no
// response is built in either case.
func Process(req *model.ValuationRequest, opts Options) (*model.ValuationResponse, error) {
	start := time.Now()

	in := ToInput(req, opts)
	if err := valuation.Validate(in); err != nil {
		return nil, err
	}

	res := valuation.Compute(in)
	if !res.Finite() {
		return nil, ErrNonFiniteResult
	}
	rounded := res.Rounded()

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.ValuationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     model.OutcomeSuccess,
		},
		Result: model.ValuationResult{
			ForecastCashFlows:       rounded.ForecastCashFlows,
			DiscountedCashFlows:     rounded.DiscountedCashFlows,
			TerminalValue:           rounded.TerminalValue,
			TerminalValueDerived:    rounded.TerminalValueDerived,
			DiscountedTerminalValue: rounded.DiscountedTerminalValue,
			EnterpriseValue:         rounded.EnterpriseValue,
			EquityValue:             rounded.EquityValue,
			NetDebt:                 in.NetDebt,
			DiscountRate:            in.DiscountRate,
			TerminalGrowthRate:      in.TerminalGrowthRate,
		},
	}, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
