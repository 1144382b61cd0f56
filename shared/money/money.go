// Package money holds the monetary conventions of the service: amounts are
// decimal.Decimal values stored as NUMERIC(12,2) and rounded half away from
// zero to two places after every computation.
package money

import (
	"github.com/shopspring/decimal"
)

const (
	Scale = 2
)

var (
	Zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Scale)
}

func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}

	return Round(total)
}

// Percent returns part/whole*100 rounded to two places, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}

	return Round(part.Div(whole).Mul(hundred))
}

// Prorate scales amount by numerator/denominator, or returns zero when denominator is not positive.
func Prorate(amount decimal.Decimal, numerator, denominator int) decimal.Decimal {
	if denominator <= 0 || numerator <= 0 {
		return decimal.Zero
	}

	if numerator >= denominator {
		return Round(amount)
	}

	return Round(amount.Mul(decimal.NewFromInt(int64(numerator))).Div(decimal.NewFromInt(int64(denominator))))
}

func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}

	return amount
}

func FromInt(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

func Ptr(amount decimal.Decimal) *decimal.Decimal {
	return &amount
}
