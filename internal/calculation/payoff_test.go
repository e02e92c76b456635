package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payoffMonths(t *testing.T, timeline domain.PayoffTimeline) map[string]int {
	t.Helper()
	out := map[string]int{}
	for _, d := range timeline.Debts {
		out[d.DebtID] = d.PayoffMonth
	}
	return out
}

func TestPayoffTimeline(t *testing.T) {
	tests := []struct {
		name       string
		strategy   string
		extra      string
		months     int
		interest   string
		order      []string
		payoffDate string
		byDebt     map[string]int
	}{
		{
			name: "avalanche with extra", strategy: sequencing.Avalanche, extra: "200",
			months: 50, interest: "5837.71", order: []string{"card", "personal", "car", "student"},
			payoffDate: "2030-12",
			byDebt:     map[string]int{"card": 17, "personal": 21, "car": 30, "student": 50},
		},
		{
			name: "snowball with extra", strategy: sequencing.Snowball, extra: "200",
			months: 50, interest: "6034.96", order: []string{"personal", "card", "car", "student"},
			payoffDate: "2030-12",
			byDebt:     map[string]int{"personal": 11, "card": 21, "car": 30, "student": 50},
		},
		{
			name: "avalanche rollover only", strategy: sequencing.Avalanche, extra: "0",
			months: 65, interest: "8449.59", order: []string{"personal", "card", "car", "student"},
			payoffDate: "2032-03",
		},
		{
			name: "snowball rollover only", strategy: sequencing.Snowball, extra: "0",
			months: 65, interest: "8449.59", order: []string{"personal", "card", "car", "student"},
			payoffDate: "2032-03",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()
			timeline, err := engine.PayoffTimeline(debtSet(), tt.strategy, dec(tt.extra))
			require.NoError(t, err)

			assert.Equal(t, tt.strategy, timeline.Strategy)
			assert.Equal(t, tt.months, timeline.TotalMonths)
			assertDecimal(t, tt.interest, timeline.TotalInterest)
			assert.Equal(t, tt.order, timeline.PayoffOrder)
			assert.Equal(t, tt.payoffDate, timeline.PayoffDate)
			assert.Empty(t, timeline.Warnings)
			if tt.byDebt != nil {
				assert.Equal(t, tt.byDebt, payoffMonths(t, timeline))
			}

			perDebt := decimal.Zero
			for _, d := range timeline.Debts {
				perDebt = perDebt.Add(d.InterestPaid)
			}
			assert.True(t, perDebt.Equal(timeline.TotalInterest))
			assertDecimal(t, timeline.TotalInterest.Add(dec("45000")).String(), timeline.TotalPaid, "paid = principal + interest")
		})
	}
}

func TestPayoffTimeline_AvalancheNeverCostsMore(t *testing.T) {
	engine := newTestEngine()
	for _, extra := range []string{"0", "50", "200", "750", "2000"} {
		t.Run(extra, func(t *testing.T) {
			avalanche, err := engine.PayoffTimeline(debtSet(), sequencing.Avalanche, dec(extra))
			require.NoError(t, err)
			snowball, err := engine.PayoffTimeline(debtSet(), sequencing.Snowball, dec(extra))
			require.NoError(t, err)
			assert.True(t, avalanche.TotalInterest.LessThanOrEqual(snowball.TotalInterest),
				"avalanche %s > snowball %s", avalanche.TotalInterest, snowball.TotalInterest)
		})
	}
}

func TestPayoffTimeline_UnknownStrategy(t *testing.T) {
	engine := newTestEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	timeline, err := engine.PayoffTimeline(debtSet(), "debt_hurricane", dec("200"))
	require.NoError(t, err)
	assert.Equal(t, sequencing.Avalanche, timeline.Strategy)
	assert.True(t, domain.HasWarning(timeline.Warnings, domain.WarnUnknownOrdering))
	assertDecimal(t, "5837.71", timeline.TotalInterest)
	assert.Equal(t, 1, logger.count("WARN: "))

	timeline, err = engine.PayoffTimeline(debtSet(), "", dec("200"))
	require.NoError(t, err)
	assert.Empty(t, timeline.Warnings, "an empty name silently means avalanche")
}

func TestPayoffTimeline_Errors(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.PayoffTimeline(debtSet(), sequencing.Avalanche, dec("-1"))
	var invalid *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalid))

	dup := debtSet()
	dup[1].ID = "card"
	_, err = engine.PayoffTimeline(dup, sequencing.Avalanche, decimal.Zero)
	assert.True(t, errors.As(err, &invalid))

	short := debtSet()
	short[2].MonthlyPayment = dec("50")
	_, err = engine.PayoffTimeline(short, sequencing.Avalanche, decimal.Zero)
	var insufficient *domain.InsufficientPaymentError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "student", insufficient.DebtID)

	engine.Assumptions.MaxPayoffMonths = 24
	_, err = engine.PayoffTimeline(debtSet(), sequencing.Avalanche, decimal.Zero)
	var nonConverging *domain.NonConvergingPayoffError
	require.True(t, errors.As(err, &nonConverging))
	assert.Equal(t, 24, nonConverging.Months)
}

func TestPayoffTimeline_Empty(t *testing.T) {
	timeline, err := newTestEngine().PayoffTimeline(nil, sequencing.Snowball, dec("100"))
	require.NoError(t, err)
	assert.Zero(t, timeline.TotalMonths)
	assert.True(t, timeline.TotalInterest.IsZero())
	assert.Empty(t, timeline.PayoffOrder)
}

func TestPayoffTimeline_DoesNotMutateInput(t *testing.T) {
	debts := debtSet()
	_, err := newTestEngine().PayoffTimeline(debts, sequencing.Snowball, dec("200"))
	require.NoError(t, err)
	assert.Equal(t, debtSet(), debts)
}

func TestSimulatePayoff_Custom(t *testing.T) {
	engine := newTestEngine()
	ordering, ok := sequencing.CreateOrdering(sequencing.Custom, []string{"student"})
	require.True(t, ok)

	timeline, err := engine.SimulatePayoff(debtSet(), ordering, dec("500"))
	require.NoError(t, err)
	assert.Equal(t, sequencing.Custom, timeline.Strategy)
	months := payoffMonths(t, timeline)
	assert.Less(t, months["student"], months["car"], "extra goes to the student loan first")
}

func TestMinimumPaymentTimeline(t *testing.T) {
	timeline, err := newTestEngine().MinimumPaymentTimeline(debtSet())
	require.NoError(t, err)

	assert.Equal(t, MinimumOnly, timeline.Strategy)
	assert.Equal(t, 112, timeline.TotalMonths)
	assertDecimal(t, "10260.27", timeline.TotalInterest)
	assert.Equal(t, map[string]int{"personal": 36, "car": 45, "card": 47, "student": 112}, payoffMonths(t, timeline))
	assert.True(t, timeline.ExtraMonthly.IsZero())
}

func TestCompareDebtStrategies(t *testing.T) {
	cmp, err := newTestEngine().CompareDebtStrategies(debtSet(), dec("200"))
	require.NoError(t, err)

	require.Len(t, cmp.Strategies, 2)
	assert.Equal(t, sequencing.Avalanche, cmp.Strategies[0].Strategy)
	assert.Equal(t, sequencing.Snowball, cmp.Strategies[1].Strategy)
	assert.Equal(t, sequencing.Avalanche, cmp.Recommended)

	assertDecimal(t, "4422.56", cmp.InterestSaved(cmp.Strategies[0]))
	assert.Equal(t, 62, cmp.MonthsSaved(cmp.Strategies[0]))

	saved, err := newTestEngine().InterestSaved(debtSet(), sequencing.Snowball, dec("200"))
	require.NoError(t, err)
	assertDecimal(t, "4225.31", saved)
}

func TestCompareDebtStrategies_PropagatesErrors(t *testing.T) {
	short := debtSet()
	short[0].MonthlyPayment = dec("10")
	_, err := newTestEngine().CompareDebtStrategies(short, decimal.Zero, sequencing.CashFlow)
	var insufficient *domain.InsufficientPaymentError
	assert.True(t, errors.As(err, &insufficient))
}
