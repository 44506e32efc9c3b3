package valuation

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of decimals kept in output monetary values.
const CurrencyPlaces = 2

// exactDigits covers the longest fractional expansion of a float64 (1074 digits).
const exactDigits = 1100

// RoundCurrency rounds v to CurrencyPlaces decimals, halves away from zero.
// Rounding works on the exact binary value of v, so 2.675 (stored as
// 2.67499999...) rounds to 2.67. Non-finite values are returned unchanged.
func RoundCurrency(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact := decimal.RequireFromString(new(big.Float).SetFloat64(v).Text('f', exactDigits))
	return exact.Round(CurrencyPlaces).InexactFloat64()
}

func roundAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = RoundCurrency(v)
	}
	return out
}
