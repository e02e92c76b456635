package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingMonths(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		payment string
		rate    string
		want    int
	}{
		{"mortgage-sized loan", "70000", "800", "6", 116},
		{"credit card", "5000", "200", "18", 32},
		{"zero rate", "1200", "100", "0", 12},
		{"zero rate partial month", "1250", "100", "0", 13},
		{"payment covers most of balance", "1000", "1000", "12", 2},
		{"payment covers balance and interest", "1000", "1010", "12", 1},
		{"thirty year term", "100000", "599.56", "6", 360},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RemainingMonths(dec(tt.balance), dec(tt.payment), dec(tt.rate))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemainingMonths_InsufficientPayment(t *testing.T) {
	for _, payment := range []string{"40", "100"} {
		t.Run(payment, func(t *testing.T) {
			months, err := RemainingMonths(dec("10000"), dec(payment), dec("12"))
			require.Error(t, err)
			assert.Zero(t, months)

			var insufficient *domain.InsufficientPaymentError
			require.True(t, errors.As(err, &insufficient))
			assertDecimal(t, "100", insufficient.MonthlyInterest)
			assertDecimal(t, "100.01", insufficient.MinimumPayment())
		})
	}
}

func TestRemainingMonths_InvalidInput(t *testing.T) {
	tests := []struct {
		name                   string
		balance, payment, rate string
	}{
		{"zero balance", "0", "100", "5"},
		{"negative payment", "1000", "-1", "5"},
		{"negative rate", "1000", "100", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RemainingMonths(dec(tt.balance), dec(tt.payment), dec(tt.rate))
			var invalid *domain.InvalidInputError
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestTotalInterest(t *testing.T) {
	assertDecimal(t, "22800", TotalInterest(dec("70000"), dec("800"), 116))
	assertDecimal(t, "0", TotalInterest(dec("1200"), dec("100"), 12))
	assertDecimal(t, "0", TotalInterest(dec("1200"), dec("100"), 3), "floored at zero")
}

// The closed form must agree with an independent month-by-month walk.
func TestAmortization_MatchesSimulation(t *testing.T) {
	cases := []struct{ balance, payment, rate string }{
		{"70000", "800", "6"},
		{"5000", "200", "18"},
		{"25000", "280", "5"},
		{"1200", "100", "0"},
		{"3000", "100", "11"},
	}
	for _, c := range cases {
		t.Run(c.balance+"@"+c.rate, func(t *testing.T) {
			balance, payment, rate := dec(c.balance), dec(c.payment), dec(c.rate)
			months, err := RemainingMonths(balance, payment, rate)
			require.NoError(t, err)

			schedule, err := SimulateAmortization(balance, payment, rate, 600)
			require.NoError(t, err)
			assert.InDelta(t, months, schedule.Months, 1)

			// TotalInterest assumes a full final payment, so it may exceed the
			// simulated interest by at most one payment.
			over := TotalInterest(balance, payment, months).Sub(schedule.TotalInterest)
			assert.False(t, over.IsNegative(), "closed form below simulation by %s", over)
			assert.True(t, over.LessThanOrEqual(payment), "closed form above simulation by %s", over)

			exact, err := AmortizedInterest(balance, payment, rate)
			require.NoError(t, err)
			assertDecimalNear(t, schedule.TotalInterest.String(), exact, "1.00")
		})
	}
}

func TestSimulateAmortization(t *testing.T) {
	schedule, err := SimulateAmortization(dec("70000"), dec("800"), dec("6"), 600)
	require.NoError(t, err)

	assert.Equal(t, 116, schedule.Months)
	assertDecimal(t, "22288.69", schedule.TotalInterest)
	assertDecimal(t, "92288.69", schedule.TotalPaid)
	require.Len(t, schedule.Rows, 116)

	first := schedule.Rows[0]
	assertDecimal(t, "350", first.Interest)
	assertDecimal(t, "450", first.Principal)
	assertDecimal(t, "69550", first.Balance)

	last := schedule.Rows[115]
	assert.True(t, last.Balance.IsZero())
	assert.True(t, last.Payment.LessThan(dec("800")))
}

func TestSimulateAmortization_Cap(t *testing.T) {
	_, err := SimulateAmortization(dec("70000"), dec("800"), dec("6"), 100)
	var nonConverging *domain.NonConvergingPayoffError
	require.True(t, errors.As(err, &nonConverging))
	assert.Equal(t, 100, nonConverging.Months)
	assert.True(t, nonConverging.Remaining.IsPositive())

	_, err = SimulateAmortization(dec("10000"), dec("40"), dec("12"), 600)
	var insufficient *domain.InsufficientPaymentError
	assert.True(t, errors.As(err, &insufficient))
}

func TestStandardPayment(t *testing.T) {
	p, err := StandardPayment(dec("100000"), dec("6"), 360)
	require.NoError(t, err)
	assertDecimal(t, "599.56", p)

	p, err = StandardPayment(dec("10000"), dec("6"), 120)
	require.NoError(t, err)
	assertDecimal(t, "111.03", p)

	p, err = StandardPayment(dec("1000"), dec("0"), 3)
	require.NoError(t, err)
	assertDecimal(t, "333.34", p)

	_, err = StandardPayment(dec("1000"), dec("5"), 0)
	assert.Error(t, err)
}

func TestPayoffDate(t *testing.T) {
	assert.Equal(t, "2036-06", PayoffDate(testNow, 116).Format("2006-01"))
	assert.Equal(t, "2026-10", PayoffDate(testNow, 0).Format("2006-01"))
}

func TestDebtTimeline(t *testing.T) {
	engine := newTestEngine()
	timeline, err := engine.DebtTimeline(domain.Debt{
		ID: "home", Name: "Home", Balance: dec("70000"), MonthlyPayment: dec("800"), InterestRate: dec("6"),
	})
	require.NoError(t, err)

	assert.Equal(t, "home", timeline.DebtID)
	assert.Equal(t, 116, timeline.RemainingMonths)
	assert.Equal(t, "2036-06", timeline.PayoffDate)
	assertDecimal(t, "22800", timeline.TotalInterest)
	assertDecimalNear(t, "22288.69", timeline.AmortizedInterest, "1.00")
	assert.True(t, timeline.StandardPayment.GreaterThan(dec("777")) && timeline.StandardPayment.LessThan(dec("778")),
		"standard 10-year payment %s", timeline.StandardPayment)

	_, err = engine.DebtTimeline(domain.Debt{ID: "bad", Balance: dec("10000"), MonthlyPayment: dec("40"), InterestRate: dec("12")})
	var insufficient *domain.InsufficientPaymentError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "bad", insufficient.DebtID)
}
