package compare

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its calculated metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`

	Allocation domain.AllocationResult `json:"allocation"`

	// Key Metrics
	DisposableIncome decimal.Decimal `json:"disposableIncome"`
	HealthScore      decimal.Decimal `json:"healthScore"`
	HealthGrade      string          `json:"healthGrade"`
	DebtFree         bool            `json:"debtFree"` // false when minimums never retire the debts
	DebtFreeMonths   int             `json:"debtFreeMonths"`
	DebtFreeDate     string          `json:"debtFreeDate,omitempty"`
	DebtInterest     decimal.Decimal `json:"debtInterest"`

	// Comparison to Base
	FoundationDiff     decimal.Decimal `json:"foundationDiff"`
	DreamDiff          decimal.Decimal `json:"dreamDiff"`
	LifeDiff           decimal.Decimal `json:"lifeDiff"`
	DisposableDiff     decimal.Decimal `json:"disposableDiff"`
	DisposablePctDiff  decimal.Decimal `json:"disposablePctDiff"`
	HealthScoreDiff    decimal.Decimal `json:"healthScoreDiff"`
	DebtFreeMonthsDiff int             `json:"debtFreeMonthsDiff"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string              `json:"baseScenarioName"`
	Strategy           domain.StrategyName `json:"strategy"`
	BaseResult         *ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult  `json:"alternativeResults"`
	Recommendations    []string            `json:"recommendations"`
	ConfigPath         string              `json:"configPath"`
}

// MetricsCalculator extracts key metrics from a profile
type MetricsCalculator struct {
	Engine *calculation.Engine
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator(engine *calculation.Engine) *MetricsCalculator {
	return &MetricsCalculator{Engine: engine}
}

// CalculateMetrics allocates the given amount under strategy and scores the
// profile. A nil available amount means the profile's own disposable income.
func (mc *MetricsCalculator) CalculateMetrics(name string, profile domain.FinancialProfile, available *decimal.Decimal, strategy domain.StrategyName) (ComparisonResult, error) {
	result := ComparisonResult{
		ScenarioName:     name,
		DisposableIncome: domain.RoundCents(profile.DisposableIncome()),
	}

	amount := domain.NonNegative(result.DisposableIncome)
	if available != nil {
		amount = *available
	}
	allocation, err := mc.Engine.Allocate(amount, profile, strategy)
	if err != nil {
		return result, fmt.Errorf("allocation: %w", err)
	}
	result.Allocation = allocation

	health, err := mc.Engine.HealthScore(profile)
	if err != nil {
		return result, fmt.Errorf("health score: %w", err)
	}
	result.HealthScore = health.Score
	result.HealthGrade = health.Grade

	timeline, err := mc.Engine.PayoffTimeline(profile.Debts, sequencing.Avalanche, decimal.Zero)
	var nonConverging *domain.NonConvergingPayoffError
	switch {
	case err == nil:
		result.DebtFree = true
		result.DebtFreeMonths = timeline.TotalMonths
		result.DebtFreeDate = timeline.PayoffDate
		result.DebtInterest = timeline.TotalInterest
	case errors.As(err, &nonConverging):
		result.DebtFree = false
	default:
		return result, fmt.Errorf("debt payoff: %w", err)
	}

	return result, nil
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.FoundationDiff = scenario.Allocation.Foundation.Sub(base.Allocation.Foundation)
	scenario.DreamDiff = scenario.Allocation.Dream.Sub(base.Allocation.Dream)
	scenario.LifeDiff = scenario.Allocation.Life.Sub(base.Allocation.Life)
	scenario.DisposableDiff = scenario.DisposableIncome.Sub(base.DisposableIncome)

	if !base.DisposableIncome.IsZero() {
		scenario.DisposablePctDiff = scenario.DisposableDiff.
			Div(base.DisposableIncome.Abs()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.HealthScoreDiff = scenario.HealthScore.Sub(base.HealthScore)
	if scenario.DebtFree && base.DebtFree {
		scenario.DebtFreeMonthsDiff = scenario.DebtFreeMonths - base.DebtFreeMonths
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best dream funding
	bestDream := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Allocation.Dream.GreaterThan(bestDream.Allocation.Dream) {
			bestDream = alt
		}
	}

	if bestDream != base {
		diff := bestDream.Allocation.Dream.Sub(base.Allocation.Dream)
		recommendations = append(recommendations,
			"Best Dream Funding: "+bestDream.ScenarioName+" puts $"+diff.StringFixed(2)+
				" more per month toward the dream")
	}

	// Find best health score
	bestHealth := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.HealthScore.GreaterThan(bestHealth.HealthScore) {
			bestHealth = alt
		}
	}

	if bestHealth != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Financial Health: %s raises the score from %s to %s (%s)",
				bestHealth.ScenarioName, base.HealthScore.StringFixed(1),
				bestHealth.HealthScore.StringFixed(1), bestHealth.HealthGrade))
	}

	// Find earliest debt freedom
	earliest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.DebtFree {
			continue
		}
		if !earliest.DebtFree || alt.DebtFreeMonths < earliest.DebtFreeMonths {
			earliest = alt
		}
	}

	if earliest != base && base.DebtFree {
		recommendations = append(recommendations,
			fmt.Sprintf("Earliest Debt Freedom: %s is debt-free %d months sooner",
				earliest.ScenarioName, base.DebtFreeMonths-earliest.DebtFreeMonths))
	} else if earliest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Earliest Debt Freedom: %s retires every debt in %d months",
				earliest.ScenarioName, earliest.DebtFreeMonths))
	}

	// Warn about scenarios that leave nothing to allocate
	for _, alt := range compSet.AlternativeResults {
		if alt.Allocation.NoFunds && !base.Allocation.NoFunds {
			recommendations = append(recommendations,
				"Caution: "+alt.ScenarioName+" leaves no money to allocate")
		}
	}

	return recommendations
}
