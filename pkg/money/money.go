// Package money provides exact currency arithmetic on top of shopspring/decimal.
//
// Amounts are rounded half away from zero to two fractional digits (kopecks).
// For the non-negative amounts the calculators produce this is round-half-up.
package money

import (
	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(constants.MonthsPerYear)
	hundred       = decimal.NewFromInt(constants.PercentageMultiplier)
)

// Tolerance is the largest difference (one kopeck) two amounts may show
// after independent rounding.
var Tolerance = decimal.RequireFromString(constants.CurrencyTolerance)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.DecimalPlaces)
}

// FromInt converts whole rubles into a decimal amount.
func FromInt(rubles int) decimal.Decimal {
	return decimal.NewFromInt(int64(rubles))
}

// Percent converts an integer percentage into a dimensionless rate (30 -> 0.3).
func Percent(pct int) decimal.Decimal {
	return decimal.NewFromInt(int64(pct)).Div(hundred)
}

// ToPercent converts a rate back into percent points (0.151 -> 15.1).
func ToPercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// Annualize multiplies a monthly amount by twelve. The result is exact.
func Annualize(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(monthsPerYear)
}

// MonthlyShare divides an annual amount by twelve and rounds the quotient.
func MonthlyShare(annual decimal.Decimal) decimal.Decimal {
	return Round(annual.Div(monthsPerYear))
}

// WholeRubles drops the fractional part of an amount.
func WholeRubles(val decimal.Decimal) decimal.Decimal {
	return val.Truncate(0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tol decimal.Decimal) bool {
	return val1.Sub(val2).Abs().LessThanOrEqual(tol)
}

// Kopecks returns n minor units as a decimal amount.
func Kopecks(n int64) decimal.Decimal {
	return decimal.New(n, -constants.DecimalPlaces)
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total, rounded
// to two decimals. A zero total yields zero.
func CalculatePercentage(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return Round(value.Div(total).Mul(hundred))
}
