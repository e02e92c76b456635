package calculation

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// expectedReturn is the dream's return assumption when present, else the default
func (e *Engine) expectedReturn(profile domain.FinancialProfile) decimal.Decimal {
	if profile.Dream != nil {
		return profile.Dream.ExpectedReturn(e.Assumptions.DefaultExpectedReturn)
	}
	return e.Assumptions.DefaultExpectedReturn
}

// MinimumFoundation is the greater of the income floor and the contribution
// that grows current investments to the retirement target by retirement age.
func (e *Engine) MinimumFoundation(profile domain.FinancialProfile) (decimal.Decimal, error) {
	floor := profile.User.GrossMonthlyIncome().Mul(e.Assumptions.FoundationIncomeFloor)

	target := e.Assumptions.RetirementTargetNetWorth
	if profile.RetirementTargetNetWorth.IsPositive() {
		target = profile.RetirementTargetNetWorth
	}
	retirementAge := e.Assumptions.DefaultRetirementAge
	if profile.RetirementAge > 0 {
		retirementAge = profile.RetirementAge
	}
	years := retirementAge - profile.User.Age
	if years < 1 {
		years = 1
	}

	rate := domain.MonthlyRateFromFraction(e.expectedReturn(profile))
	contribution, err := domain.RequiredContribution(profile.Assets.Investments(), target, rate, years*12)
	if err != nil {
		return decimal.Zero, fmt.Errorf("foundation target contribution: %w", err)
	}
	return domain.RoundCents(domain.MaxDecimal(floor, contribution)), nil
}

// SizeFoundation returns the Foundation amount (the minimum clamped to the
// foundation cap share of available) and the unclamped minimum.
func (e *Engine) SizeFoundation(available decimal.Decimal, profile domain.FinancialProfile) (foundation, minimum decimal.Decimal, err error) {
	minimum, err = e.MinimumFoundation(profile)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	limit := available.Mul(e.Assumptions.FoundationCap)
	return domain.MinDecimal(minimum, limit), minimum, nil
}

// DreamSizing is the Dream sizer's output
type DreamSizing struct {
	Amount   decimal.Decimal
	Required decimal.Decimal
	Warnings []domain.Warning
}

// SizeDream funds the North Star from what remains after Foundation. Without a
// valid goal horizon it takes the fallback share of the remainder and flags it.
func (e *Engine) SizeDream(remainder decimal.Decimal, profile domain.FinancialProfile) (DreamSizing, error) {
	remainder = domain.NonNegative(remainder)
	dream := profile.Dream
	if dream == nil || dream.YearsToGoal() <= 0 {
		reason := "no North Star dream is set"
		if dream != nil {
			reason = "the North Star target age is not after the current age"
		}
		return DreamSizing{
			Amount: remainder.Mul(e.Assumptions.DreamFallbackShare),
			Warnings: []domain.Warning{{
				Code:     domain.WarnNoNorthStar,
				Message:  fmt.Sprintf("%s; dream funding uses %s%% of the remainder", reason, e.Assumptions.DreamFallbackShare.Mul(decimal.NewFromInt(100)).String()),
				Severity: domain.SeverityInfo,
			}},
		}, nil
	}

	required, err := dream.MonthlySavingsNeeded(profile.NetWorth(), e.Assumptions)
	if err != nil {
		return DreamSizing{}, fmt.Errorf("dream savings: %w", err)
	}
	required = domain.RoundCents(required)
	return DreamSizing{Amount: domain.MinDecimal(required, remainder), Required: required}, nil
}

// EmergencyFundTarget is monthly expenses times the strategy's emergency months.
func EmergencyFundTarget(profile domain.FinancialProfile, cfg domain.StrategyConfig) decimal.Decimal {
	return profile.MonthlyExpenses().Mul(decimal.NewFromInt(int64(cfg.EmergencyFundMonths)))
}

// SizeLife reserves money for the emergency fund or flexible spending. An
// emergency gap is closed over the build window, bounded between 10% and 50%
// of the remainder. Otherwise 10-20% of the remainder, scaled by strategy.
func (e *Engine) SizeLife(remainder decimal.Decimal, profile domain.FinancialProfile, cfg domain.StrategyConfig) (life, emergencyTarget decimal.Decimal) {
	remainder = domain.NonNegative(remainder)
	emergencyTarget = EmergencyFundTarget(profile, cfg)
	gap := emergencyTarget.Sub(profile.Assets.Liquid())

	tenth := remainder.Mul(decimal.NewFromFloat(0.10))
	if gap.IsPositive() {
		perMonth := gap.Div(decimal.NewFromInt(int64(e.Assumptions.EmergencyBuildMonths)))
		half := remainder.Mul(decimal.NewFromFloat(0.5))
		return domain.MaxDecimal(domain.MinDecimal(perMonth, half), tenth), emergencyTarget
	}

	fifth := remainder.Mul(decimal.NewFromFloat(0.20))
	scaled := domain.MaxDecimal(tenth.Mul(cfg.LifeMultiplier), tenth)
	return domain.MinDecimal(scaled, fifth), emergencyTarget
}
