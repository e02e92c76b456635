package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	e := NewEngine()
	e.Now = func() time.Time { return testNow }
	return e
}

// allocationProfile: 30 years old, $10k/month gross, $60k net worth with
// $10k liquid, $4,200/month of expenses and a $6k/month dream at 65.
func allocationProfile() domain.FinancialProfile {
	return domain.FinancialProfile{
		User: domain.UserProfile{
			Name:   "Jordan",
			Age:    30,
			Income: domain.Income{GrossAnnual: dec("120000")},
		},
		Dream: &domain.NorthStarDream{
			Title:                 "Coastal retirement",
			TargetAge:             65,
			CurrentAge:            30,
			MonthlyLivingExpenses: dec("6000"),
		},
		Fixed:    domain.FixedExpenses{Housing: dec("2500"), Utilities: dec("300")},
		Variable: domain.VariableExpenses{Food: dec("900"), Entertainment: dec("500")},
		Assets:   domain.CurrentAssets{Savings: dec("10000"), Retirement401k: dec("50000")},
	}
}

func debtSet() []domain.Debt {
	return []domain.Debt{
		{ID: "card", Name: "Credit card", Type: domain.DebtCreditCard, Balance: dec("5000"), MonthlyPayment: dec("150"), InterestRate: dec("18")},
		{ID: "car", Name: "Car loan", Type: domain.DebtAutoLoan, Balance: dec("12000"), MonthlyPayment: dec("300"), InterestRate: dec("6")},
		{ID: "student", Name: "Student loan", Type: domain.DebtStudentLoan, Balance: dec("25000"), MonthlyPayment: dec("280"), InterestRate: dec("5")},
		{ID: "personal", Name: "Personal loan", Type: domain.DebtPersonalLoan, Balance: dec("3000"), MonthlyPayment: dec("100"), InterestRate: dec("11")},
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %s", want, got.String(), fmt.Sprint(msgAndArgs...))
}

func assertDecimalNear(t *testing.T, want string, got decimal.Decimal, tolerance string, msgAndArgs ...any) {
	t.Helper()
	diff := got.Sub(dec(want)).Abs()
	assert.True(t, diff.LessThanOrEqual(dec(tolerance)), "want %s±%s, got %s %s", want, tolerance, got.String(), fmt.Sprint(msgAndArgs...))
}

// recordingLogger captures log lines
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.messages = append(l.messages, "DEBUG: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.messages = append(l.messages, "INFO: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.messages = append(l.messages, "WARN: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.messages = append(l.messages, "ERROR: "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) count(prefix string) int {
	n := 0
	for _, m := range l.messages {
		if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
