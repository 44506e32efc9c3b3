package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA() *Input {
	return &Input{
		ForecastCashFlows:  []float64{1000, 1100, 1200, 1300, 1400},
		DiscountRate:       0.10,
		TerminalGrowthRate: f64(0.03),
		NetDebt:            2000000,
	}
}

func TestComputeScenarioA(t *testing.T) {
	in := scenarioA()
	require.NoError(t, Validate(in))

	res := Compute(in)

	rate, g := in.DiscountRate, *in.TerminalGrowthRate
	var sum float64
	for i, cf := range in.ForecastCashFlows {
		want := cf / math.Pow(1+rate, float64(i+1))
		assert.Equal(t, want, res.DiscountedCashFlows[i])
		sum += want
	}

	last := in.ForecastCashFlows[4]
	tv := last * (1 + g) / (rate - g)
	assert.Equal(t, tv, res.TerminalValue)
	assert.True(t, res.TerminalValueDerived)
	assert.Equal(t, tv/math.Pow(1+rate, 5), res.DiscountedTerminalValue)
	assert.Equal(t, sum+res.DiscountedTerminalValue, res.EnterpriseValue)
	assert.Equal(t, res.EnterpriseValue-2000000, res.EquityValue)

	r := res.Rounded()
	assert.Equal(t, []float64{909.09, 909.09, 901.58, 887.92, 869.29}, r.DiscountedCashFlows)
	assert.Equal(t, 20600.0, r.TerminalValue)
	assert.Equal(t, 12790.98, r.DiscountedTerminalValue)
	assert.Equal(t, 17267.95, r.EnterpriseValue)
	assert.Equal(t, -1982732.05, r.EquityValue)
}

func TestComputeExplicitZeroTerminalValue(t *testing.T) {
	in := &Input{
		ForecastCashFlows:  []float64{1000, 1100, 1200},
		DiscountRate:       0.10,
		TerminalGrowthRate: f64(0.03),
		TerminalValue:      f64(0),
	}
	require.NoError(t, Validate(in))

	res := Compute(in)
	assert.Equal(t, 0.0, res.TerminalValue)
	assert.Equal(t, 0.0, res.DiscountedTerminalValue)
	assert.False(t, res.TerminalValueDerived)

	var sum float64
	for _, v := range res.DiscountedCashFlows {
		sum += v
	}
	assert.Equal(t, sum, res.EnterpriseValue)
}

func TestComputeExplicitTerminalValueUsedVerbatim(t *testing.T) {
	in := &Input{
		ForecastCashFlows:  []float64{100, 100},
		DiscountRate:       0.05,
		TerminalGrowthRate: f64(0.5),
		TerminalValue:      f64(-250),
	}
	require.NoError(t, Validate(in))

	res := Compute(in)
	tv := *in.TerminalValue
	assert.Equal(t, -250.0, res.TerminalValue)
	assert.Equal(t, tv/math.Pow(1+in.DiscountRate, 2), res.DiscountedTerminalValue)
}

func TestComputeWithoutTerminalGrowth(t *testing.T) {
	in := &Input{ForecastCashFlows: []float64{1000, 1100, 1200}, DiscountRate: 0.10}
	require.NoError(t, Validate(in))

	res := Compute(in)
	assert.Equal(t, 0.0, res.TerminalValue)
	assert.Equal(t, 0.0, res.DiscountedTerminalValue)
	assert.Equal(t, 2719.76, res.Rounded().EnterpriseValue)
}

func TestComputeNetCash(t *testing.T) {
	in := &Input{ForecastCashFlows: []float64{1000, 1100, 1200}, DiscountRate: 0.10, NetDebt: -500000}
	require.NoError(t, Validate(in))

	res := Compute(in)
	assert.Equal(t, res.EnterpriseValue+500000, res.EquityValue)
	assert.Equal(t, 502719.76, res.Rounded().EquityValue)
}

func TestComputeGrowthForecast(t *testing.T) {
	in := &Input{
		Growth:             &Growth{StartingCashFlow: 100, GrowthRate: 0.05, Years: 3},
		DiscountRate:       0.08,
		TerminalGrowthRate: f64(0.02),
	}
	require.NoError(t, Validate(in))

	res := Compute(in)
	require.Len(t, res.ForecastCashFlows, 3)
	g := in.Growth
	for i, cf := range res.ForecastCashFlows {
		assert.Equal(t, g.StartingCashFlow*math.Pow(1+g.GrowthRate, float64(i+1)), cf)
	}

	r := res.Rounded()
	assert.Equal(t, []float64{105, 110.25, 115.76}, r.ForecastCashFlows)
	assert.Equal(t, []float64{97.22, 94.52, 91.9}, r.DiscountedCashFlows)
	assert.Equal(t, 1967.96, r.TerminalValue)
	assert.Equal(t, 1562.23, r.DiscountedTerminalValue)
	assert.Equal(t, 1845.87, r.EnterpriseValue)
}

func TestComputeExplicitForecastWinsOverGrowth(t *testing.T) {
	in := &Input{
		ForecastCashFlows: []float64{10},
		Growth:            &Growth{StartingCashFlow: 100, GrowthRate: 0.05, Years: 3},
		DiscountRate:      0.1,
	}
	assert.Equal(t, 1, in.ForecastLength())
	assert.Equal(t, []float64{10}, Compute(in).ForecastCashFlows)
}

func TestComputeIsIdempotent(t *testing.T) {
	in := scenarioA()
	first := Compute(in)
	second := Compute(in)
	assert.Equal(t, first, second)
	assert.Equal(t, []float64{1000, 1100, 1200, 1300, 1400}, in.ForecastCashFlows)
}

func TestComputeIdentities(t *testing.T) {
	inputs := []*Input{
		scenarioA(),
		{ForecastCashFlows: flows(30, 1234.5678), DiscountRate: 0.0731, TerminalGrowthRate: f64(0.021), NetDebt: 98765.4321},
		{Growth: &Growth{StartingCashFlow: 72.764, GrowthRate: 0.12, Years: 10}, DiscountRate: 0.08, TerminalGrowthRate: f64(0.03), NetDebt: -54.3},
		{ForecastCashFlows: []float64{0.005, 0.015, 1e6}, DiscountRate: 2, TerminalValue: f64(12.5)},
	}

	for _, in := range inputs {
		require.NoError(t, Validate(in))
		res := Compute(in)

		assert.Equal(t, res.EnterpriseValue-in.NetDebt, res.EquityValue)

		var sum float64
		for _, v := range res.DiscountedCashFlows {
			sum += v
		}
		assert.InDelta(t, sum+res.DiscountedTerminalValue, res.EnterpriseValue, 1e-9*math.Max(1, math.Abs(res.EnterpriseValue)))

		r := res.Rounded()
		require.Len(t, r.DiscountedCashFlows, len(res.DiscountedCashFlows))
		for i := range r.DiscountedCashFlows {
			assert.InDelta(t, res.DiscountedCashFlows[i], r.DiscountedCashFlows[i], 0.005)
		}
		assert.InDelta(t, res.TerminalValue, r.TerminalValue, 0.005)
		assert.InDelta(t, res.DiscountedTerminalValue, r.DiscountedTerminalValue, 0.005)
		assert.InDelta(t, res.EnterpriseValue, r.EnterpriseValue, 0.005)
		assert.InDelta(t, res.EquityValue, r.EquityValue, 0.005)
	}
}

func TestResultFinite(t *testing.T) {
	assert.True(t, Compute(scenarioA()).Finite())

	huge := &Input{ForecastCashFlows: []float64{1e308, 1e308}, DiscountRate: 1e-9, TerminalGrowthRate: f64(0)}
	require.NoError(t, Validate(huge))
	assert.False(t, Compute(huge).Finite())
}

func TestRoundedDoesNotTouchFullPrecision(t *testing.T) {
	res := Compute(scenarioA())
	before := res.DiscountedCashFlows[0]

	r := res.Rounded()
	r.DiscountedCashFlows[0] = 0

	assert.Equal(t, before, res.DiscountedCashFlows[0])
	assert.NotEqual(t, RoundCurrency(before), before)
}
