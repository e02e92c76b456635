package compare

import (
	"time"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestEngine() *CompareEngine {
	engine := calculation.NewEngine()
	engine.Now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }
	return NewCompareEngine(engine)
}

// testProfile has $2,950/month disposable: 7500 net - 3100 fixed - 1000 variable - 450 debt payments.
func testProfile() domain.FinancialProfile {
	return domain.FinancialProfile{
		User: domain.UserProfile{
			Name: "Sam",
			Age:  32,
			Income: domain.Income{
				GrossAnnual: dec("120000"),
				NetMonthly:  dec("7500"),
			},
		},
		Dream: &domain.NorthStarDream{
			Title:                 "Cabin",
			TargetAge:             55,
			CurrentAge:            32,
			MonthlyLivingExpenses: dec("5000"),
		},
		Fixed:    domain.FixedExpenses{Housing: dec("2200"), Childcare: dec("900")},
		Variable: domain.VariableExpenses{Food: dec("700"), Entertainment: dec("300")},
		Assets:   domain.CurrentAssets{Savings: dec("15000"), Retirement401k: dec("40000")},
		Debts: []domain.Debt{
			{ID: "card", Name: "Card", Type: domain.DebtCreditCard, Balance: dec("5000"), MonthlyPayment: dec("150"), InterestRate: dec("18")},
			{ID: "car", Name: "Car", Type: domain.DebtAutoLoan, Balance: dec("12000"), MonthlyPayment: dec("300"), InterestRate: dec("6")},
		},
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
