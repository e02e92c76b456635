package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Common decimal constants used across the planning math
var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// RoundCents rounds a money amount to cent precision (half away from zero)
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MonthlyRateFromPercent converts an annual percentage rate (e.g. 6.0) to a monthly fraction (0.005)
func MonthlyRateFromPercent(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(twelve)
}

// MonthlyRateFromFraction converts an annual fractional rate (e.g. 0.07) to a monthly fraction
func MonthlyRateFromFraction(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Percent returns part/whole*100, or zero when whole is not positive
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// MinDecimal returns the smaller of a and b
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxDecimal returns the larger of a and b
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// NonNegative clamps d at zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	return MaxDecimal(d, decimal.Zero)
}

// FromFloat converts an intermediate float result back to decimal, rejecting NaN and Inf.
func FromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &InvalidInputError{Field: field, Value: f, Reason: "calculation produced a non-finite value"}
	}
	return decimal.NewFromFloat(f), nil
}

// GrowthFactor returns (1+m)^n for a monthly rate m and n months
func GrowthFactor(monthlyRate decimal.Decimal, months int) float64 {
	m := monthlyRate.InexactFloat64()
	return math.Pow(1+m, float64(months))
}

// FutureValue projects a present balance plus a level monthly contribution forward n months.
func FutureValue(present, contribution, monthlyRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return present, nil
	}
	if monthlyRate.IsZero() {
		return present.Add(contribution.Mul(decimal.NewFromInt(int64(months)))), nil
	}
	m := monthlyRate.InexactFloat64()
	growth := GrowthFactor(monthlyRate, months)
	fv := present.InexactFloat64()*growth + contribution.InexactFloat64()*(growth-1)/m
	return FromFloat("future_value", fv)
}

// RequiredContribution solves
//
//	present*(1+m)^n + c*((1+m)^n - 1)/m = target
//
// for the level monthly contribution c. With a zero rate it degrades to
// (target-present)/n. The result is floored at zero: a balance that already
// grows past the target needs no contribution.
func RequiredContribution(present, target, monthlyRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, &InvalidInputError{Field: "months", Value: months, Reason: "horizon must be at least one month"}
	}
	if monthlyRate.IsZero() {
		c := target.Sub(present).Div(decimal.NewFromInt(int64(months)))
		return NonNegative(c), nil
	}

	m := monthlyRate.InexactFloat64()
	growth := GrowthFactor(monthlyRate, months)
	gap := target.InexactFloat64() - present.InexactFloat64()*growth
	c, err := FromFloat("required_contribution", gap*m/(growth-1))
	if err != nil {
		return decimal.Zero, err
	}
	return NonNegative(c), nil
}

// MonthStart truncates t to the first day of its month (UTC)
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the first day of the month n months after asOf
func AddMonths(asOf time.Time, n int) time.Time {
	return MonthStart(asOf).AddDate(0, n, 0)
}
