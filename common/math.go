package common

import (
	"math"

	"github.com/shopspring/decimal"
)

// DecimalArithmeticMean returns the arithmetic mean of the provided values
func DecimalArithmeticMean(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, ErrNoData
	}
	sum := decimal.Zero
	for i := range values {
		sum = sum.Add(values[i])
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))), nil
}

// DecimalPopulationStandardDeviation returns the population standard
// deviation of the provided values
func DecimalPopulationStandardDeviation(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, ErrNoData
	}
	mean, err := DecimalArithmeticMean(values)
	if err != nil {
		return decimal.Zero, err
	}
	variance := decimal.Zero
	for i := range values {
		d := values[i].Sub(mean)
		variance = variance.Add(d.Mul(d))
	}
	variance = variance.Div(decimal.NewFromInt(int64(len(values))))
	v, _ := variance.Float64()
	return decimal.NewFromFloat(math.Sqrt(v)), nil
}
