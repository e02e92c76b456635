package calculation

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation codes attached to a health score
const (
	RecommendEmergencyFund = "build_emergency_fund"
	RecommendReduceDebt    = "reduce_debt"
	RecommendSaveMore      = "increase_savings"
	RecommendGrowNetWorth  = "grow_net_worth"
)

var (
	componentMax = decimal.NewFromInt(25)

	emergencyPointsPerMonth = decimal.NewFromFloat(4.17)
	dtiPenaltyPerPoint      = decimal.NewFromFloat(0.625)
	savingsPointsPerPoint   = decimal.NewFromFloat(1.25)
	netWorthPointsPerYear   = decimal.NewFromFloat(2.5)
)

type gradeBand struct {
	min   int64
	grade string
}

var gradeBands = []gradeBand{
	{90, "A+"}, {85, "A"}, {80, "A-"},
	{75, "B+"}, {70, "B"}, {65, "B-"},
	{60, "C+"}, {55, "C"}, {50, "C-"},
	{45, "D+"}, {40, "D"},
}

func clampComponent(v decimal.Decimal) decimal.Decimal {
	return domain.MinDecimal(domain.NonNegative(v), componentMax)
}

// Grade maps a 0-100 score to a letter grade
func Grade(score decimal.Decimal) string {
	for _, b := range gradeBands {
		if score.GreaterThanOrEqual(decimal.NewFromInt(b.min)) {
			return b.grade
		}
	}
	return "F"
}

// HealthScore rates a profile out of 100 from four equally weighted parts:
// emergency fund coverage, debt-to-income, savings rate and net worth
// relative to annual income.
func (e *Engine) HealthScore(profile domain.FinancialProfile) (domain.HealthScore, error) {
	if err := profile.Validate(); err != nil {
		return domain.HealthScore{}, fmt.Errorf("health score: %w", err)
	}

	months := profile.EmergencyFundMonths()
	dti := profile.DebtToIncomeRatio()
	savings := profile.SavingsRate()

	netWorthRatio := decimal.Zero
	if annual := profile.User.AnnualIncome(); annual.IsPositive() {
		netWorthRatio = profile.NetWorth().Div(annual)
	}

	c := domain.HealthComponents{
		EmergencyFund: clampComponent(months.Mul(emergencyPointsPerMonth)).Round(2),
		DebtToIncome:  clampComponent(componentMax.Sub(dti.Mul(dtiPenaltyPerPoint))).Round(2),
		SavingsRate:   clampComponent(savings.Mul(savingsPointsPerPoint)).Round(2),
		NetWorth:      clampComponent(netWorthRatio.Mul(netWorthPointsPerYear)).Round(2),
	}
	score := c.EmergencyFund.Add(c.DebtToIncome).Add(c.SavingsRate).Add(c.NetWorth).Round(1)

	result := domain.HealthScore{
		Score:           score,
		Grade:           Grade(score),
		Components:      c,
		Recommendations: []domain.Warning{},
	}

	fifteen := decimal.NewFromInt(15)
	if c.EmergencyFund.LessThan(fifteen) {
		result.Recommendations = append(result.Recommendations, domain.Warning{
			Code:     RecommendEmergencyFund,
			Message:  fmt.Sprintf("emergency fund covers %s months; aim for 3 to 6", months.StringFixed(1)),
			Severity: domain.SeverityHigh,
		})
	}
	if c.DebtToIncome.LessThan(fifteen) {
		result.Recommendations = append(result.Recommendations, domain.Warning{
			Code:     RecommendReduceDebt,
			Message:  fmt.Sprintf("debt payments take %s%% of gross income", dti.StringFixed(1)),
			Severity: domain.SeverityWarning,
		})
	}
	if c.SavingsRate.LessThan(fifteen) {
		result.Recommendations = append(result.Recommendations, domain.Warning{
			Code:     RecommendSaveMore,
			Message:  fmt.Sprintf("savings rate is %s%% of net income; 12%% or more scores well", savings.StringFixed(1)),
			Severity: domain.SeverityWarning,
		})
	}
	if c.NetWorth.LessThan(decimal.NewFromInt(10)) {
		result.Recommendations = append(result.Recommendations, domain.Warning{
			Code:     RecommendGrowNetWorth,
			Message:  fmt.Sprintf("net worth is %sx annual income", netWorthRatio.StringFixed(2)),
			Severity: domain.SeverityInfo,
		})
	}

	e.log().Debugf("health score %s (%s)", score.String(), result.Grade)
	return result, nil
}
