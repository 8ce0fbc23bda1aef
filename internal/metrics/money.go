package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// dollarValue multiplies a quantity by a unit cost without accumulating
// float drift; all financial-impact sums in the kernel go through decimal.
func dollarValue(quantity int, unitCost float64) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(unitCost))
}

// roundedInt rounds a decimal sum to the nearest whole dollar.
func roundedInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}

// roundPct rounds a percentage to the nearest integer.
func roundPct(v float64) int {
	return int(math.Round(v))
}

// roundTo1 rounds to one decimal place.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// nullableInt maps zero to nil so the UI can distinguish "no data" from 0.
func nullableInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

// intPtr returns a pointer to n regardless of value.
func intPtr(n int) *int {
	return &n
}

// floatPtr returns a pointer to v regardless of value.
func floatPtr(v float64) *float64 {
	return &v
}
