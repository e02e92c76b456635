package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"github.com/rgehrsitz/dreamplan/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_Templates(t *testing.T) {
	ce := newTestEngine()
	compSet, err := ce.Compare(context.Background(), testProfile(), CompareOptions{
		Templates: []string{"raise_5pct", "debt_free", "pay_cut_10pct"},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseScenarioName, compSet.BaseScenarioName)
	assert.Equal(t, domain.StrategyBalanced, compSet.Strategy)
	require.NotNil(t, compSet.BaseResult)
	assert.True(t, compSet.BaseResult.DisposableIncome.Equal(dec("2950")))
	assert.True(t, compSet.BaseResult.DebtFree)
	assert.Positive(t, compSet.BaseResult.DebtFreeMonths)

	require.Len(t, compSet.AlternativeResults, 3)
	raise, payoff, cut := compSet.AlternativeResults[0], compSet.AlternativeResults[1], compSet.AlternativeResults[2]

	assert.Equal(t, "current_raise_5pct", raise.ScenarioName)
	assert.Equal(t, "Income rises 5%", raise.Description)
	assert.True(t, raise.DisposableDiff.Equal(dec("375")), "7500 * 5%% more net income, got %s", raise.DisposableDiff)
	assert.True(t, raise.DisposablePctDiff.Equal(dec("12.71")), "got %s", raise.DisposablePctDiff)
	assert.True(t, raise.Allocation.Total.Equal(dec("3325")))

	assert.True(t, payoff.DisposableDiff.Equal(dec("450")))
	assert.Zero(t, payoff.DebtFreeMonths)
	assert.Equal(t, -compSet.BaseResult.DebtFreeMonths, payoff.DebtFreeMonthsDiff)

	assert.True(t, cut.DisposableDiff.Equal(dec("-750")))
	assert.True(t, cut.Allocation.Total.Equal(dec("2200")))

	best := compSet.AlternativeResults[0]
	for _, alt := range compSet.AlternativeResults[1:] {
		if alt.Allocation.Dream.GreaterThan(best.Allocation.Dream) {
			best = alt
		}
	}
	if best.DreamDiff.IsPositive() {
		assert.Contains(t, compSet.Recommendations, "Best Dream Funding: "+best.ScenarioName+" puts $"+best.DreamDiff.StringFixed(2)+" more per month toward the dream")
	}
	assert.Contains(t, compSet.Recommendations[len(compSet.Recommendations)-1], "current_debt_free")
}

func TestCompare_FixedAvailable(t *testing.T) {
	available := dec("2000")
	compSet, err := newTestEngine().Compare(context.Background(), testProfile(), CompareOptions{
		BaseScenarioName: "today",
		Templates:        []string{"trim_spending_20pct"},
		Strategy:         domain.StrategyAggressive,
		Available:        &available,
	})
	require.NoError(t, err)

	assert.Equal(t, "today", compSet.BaseScenarioName)
	assert.Equal(t, domain.StrategyAggressive, compSet.BaseResult.Allocation.Strategy)
	assert.True(t, compSet.BaseResult.Allocation.Total.Equal(available))
	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "today_trim_spending_20pct", alt.ScenarioName)
	assert.True(t, alt.Allocation.Total.Equal(available))
	assert.True(t, alt.DisposableDiff.Equal(dec("200")))
}

func TestCompare_UnknownTemplate(t *testing.T) {
	profile := testProfile()
	profile.Fixed.Childcare = dec("0")

	_, err := newTestEngine().Compare(context.Background(), profile, CompareOptions{Templates: []string{"no_childcare"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template no_childcare not found")
}

func TestCompare_InvalidProfile(t *testing.T) {
	profile := testProfile()
	profile.User.Age = 150

	_, err := newTestEngine().Compare(context.Background(), profile, CompareOptions{})
	assert.ErrorContains(t, err, "failed to calculate base scenario")
}

func TestCompare_TemplateFailure(t *testing.T) {
	profile := testProfile()
	profile.User.Age = 118

	registry := transform.NewTemplateRegistry()
	registry.Register(transform.Template{
		Name:       "age_ten",
		Transforms: []transform.ProfileTransform{&transform.AgeProfile{Years: 10}},
	})
	ce := newTestEngine()
	ce.TemplateRegistry = registry

	_, err := ce.Compare(context.Background(), profile, CompareOptions{Templates: []string{"age_ten"}})
	assert.ErrorContains(t, err, "failed to apply template age_ten")
}

func TestCompareTransforms(t *testing.T) {
	ce := newTestEngine()
	compSet, err := ce.CompareTransforms(context.Background(), testProfile(), "raise",
		[]transform.ProfileTransform{&transform.AdjustIncome{Percent: dec("10")}}, CompareOptions{})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "current_raise", compSet.AlternativeResults[0].ScenarioName)
	assert.True(t, compSet.AlternativeResults[0].DisposableDiff.Equal(dec("750")))
	assert.Nil(t, ce.TemplateRegistry, "the engine's registry is left untouched")

	_, err = ce.CompareTransforms(context.Background(), testProfile(), "", nil, CompareOptions{})
	assert.Error(t, err)
}

func TestCompareAllocations(t *testing.T) {
	ce := newTestEngine()
	cmp, err := ce.CompareAllocations(context.Background(), dec("2500"), testProfile())
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyBalanced, cmp.BaseStrategy)
	require.Len(t, cmp.Strategies, 3)
	assert.Equal(t, domain.StrategyConservative, cmp.Strategies[0].Result.Strategy)
	assert.Equal(t, domain.StrategyBalanced, cmp.Strategies[1].Result.Strategy)
	assert.Equal(t, domain.StrategyAggressive, cmp.Strategies[2].Result.Strategy)

	balanced := cmp.Strategies[1]
	assert.True(t, balanced.FoundationDiff.IsZero())
	assert.True(t, balanced.DreamDiff.IsZero())
	assert.True(t, balanced.LifeDiff.IsZero())

	for _, s := range cmp.Strategies {
		r := s.Result
		assert.True(t, r.Foundation.Add(r.Dream).Add(r.Life).Equal(r.Total))
		assert.True(t, s.FoundationDiff.Add(s.DreamDiff).Add(s.LifeDiff).IsZero(), "moving money between buckets keeps the total")
	}

	require.NotEmpty(t, cmp.Recommendations)
	assert.Contains(t, cmp.Recommendations[0], "funds the dream fastest")
}

func TestCompareAllocations_NoFunds(t *testing.T) {
	cmp, err := newTestEngine().CompareAllocations(context.Background(), dec("0"), testProfile())
	require.NoError(t, err)
	assert.Empty(t, cmp.Recommendations)
	for _, s := range cmp.Strategies {
		assert.True(t, s.Result.NoFunds)
	}
}

func TestCompareDebts(t *testing.T) {
	ce := newTestEngine()
	cmp, err := ce.CompareDebts(context.Background(), debtSet(), dec("200"))
	require.NoError(t, err)

	sequential, err := ce.Engine.CompareDebtStrategies(debtSet(), dec("200"))
	require.NoError(t, err)
	assert.Equal(t, sequential, cmp, "concurrent and sequential comparisons agree")
	assert.Equal(t, sequencing.Avalanche, cmp.Recommended)
}

func TestCompareDebts_Errors(t *testing.T) {
	ce := newTestEngine()

	short := debtSet()
	short[0].MonthlyPayment = dec("10")
	_, err := ce.CompareDebts(context.Background(), short, dec("0"))
	var insufficient *domain.InsufficientPaymentError
	assert.True(t, errors.As(err, &insufficient))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ce.CompareDebts(ctx, debtSet(), dec("0"))
	assert.True(t, errors.Is(err, context.Canceled))
}
