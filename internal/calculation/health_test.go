package calculation

import (
	"testing"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendationCodes(score domain.HealthScore) []string {
	codes := make([]string, 0, len(score.Recommendations))
	for _, r := range score.Recommendations {
		codes = append(codes, r.Code)
	}
	return codes
}

func TestHealthScore(t *testing.T) {
	score, err := newTestEngine().HealthScore(allocationProfile())
	require.NoError(t, err)

	// 2.38 months of expenses, no debt, 46% savings rate, net worth half of income
	assertDecimal(t, "9.93", score.Components.EmergencyFund)
	assertDecimal(t, "25", score.Components.DebtToIncome)
	assertDecimal(t, "25", score.Components.SavingsRate)
	assertDecimal(t, "1.25", score.Components.NetWorth)
	assertDecimal(t, "61.2", score.Score)
	assert.Equal(t, "C+", score.Grade)
	assert.Equal(t, []string{RecommendEmergencyFund, RecommendGrowNetWorth}, recommendationCodes(score))
}

func TestHealthScore_Strong(t *testing.T) {
	profile := allocationProfile()
	profile.Assets.Savings = dec("30000")
	profile.Assets.Brokerage = dec("1200000")

	score, err := newTestEngine().HealthScore(profile)
	require.NoError(t, err)
	assertDecimal(t, "100", score.Score)
	assert.Equal(t, "A+", score.Grade)
	assert.Empty(t, score.Recommendations)
}

func TestHealthScore_Stretched(t *testing.T) {
	profile := allocationProfile()
	profile.Assets = domain.CurrentAssets{Checking: dec("500")}
	profile.Debts = []domain.Debt{
		{ID: "card", Balance: dec("20000"), MonthlyPayment: dec("3000"), InterestRate: dec("22")},
		{ID: "car", Balance: dec("30000"), MonthlyPayment: dec("1000"), InterestRate: dec("7")},
	}

	score, err := newTestEngine().HealthScore(profile)
	require.NoError(t, err)

	// DTI 40% wipes out the debt component; disposable income is negative
	assert.True(t, score.Components.DebtToIncome.IsZero())
	assert.True(t, score.Components.SavingsRate.IsZero())
	assert.True(t, score.Components.NetWorth.IsZero(), "negative net worth scores zero")
	assert.Equal(t, "F", score.Grade)
	assert.Equal(t, []string{RecommendEmergencyFund, RecommendReduceDebt, RecommendSaveMore, RecommendGrowNetWorth}, recommendationCodes(score))
}

func TestHealthScore_InvalidProfile(t *testing.T) {
	profile := allocationProfile()
	profile.User.Age = 150
	_, err := newTestEngine().HealthScore(profile)
	assert.Error(t, err)
}

func TestGrade(t *testing.T) {
	tests := map[string]string{
		"100": "A+", "90": "A+", "89.9": "A", "85": "A", "80": "A-",
		"75": "B+", "70": "B", "65": "B-", "60": "C+", "55": "C",
		"50": "C-", "45": "D+", "40": "D", "39.9": "F", "0": "F",
	}
	for score, want := range tests {
		t.Run(score, func(t *testing.T) {
			assert.Equal(t, want, Grade(dec(score)))
		})
	}
}
