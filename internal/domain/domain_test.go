package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUserProfile_IncomeAccessors(t *testing.T) {
	tests := []struct {
		name      string
		income    Income
		wantGross string
		wantNet   string
	}{
		{"annual only uses default tax", Income{GrossAnnual: dec("120000")}, "10000", "7800"},
		{"zero tax rate uses the default", Income{GrossMonthly: dec("5000"), TaxRate: dec("0")}, "5000", "3900"},
		{"explicit tax rate", Income{GrossAnnual: dec("120000"), TaxRate: dec("0.25")}, "10000", "7500"},
		{"monthly wins over annual", Income{GrossAnnual: dec("120000"), GrossMonthly: dec("11000"), NetMonthly: dec("8000")}, "11000", "8000"},
		{"net annual", Income{GrossAnnual: dec("120000"), NetAnnual: dec("96000")}, "10000", "8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := UserProfile{Age: 30, Income: tt.income}
			assert.True(t, u.GrossMonthlyIncome().Equal(dec(tt.wantGross)), "gross: %s", u.GrossMonthlyIncome())
			assert.True(t, u.NetMonthlyIncome().Equal(dec(tt.wantNet)), "net: %s", u.NetMonthlyIncome())
		})
	}
}

func TestUserProfile_CostOfLivingMultiplier(t *testing.T) {
	assert.True(t, UserProfile{}.CostOfLivingMultiplier().Equal(decimal.NewFromInt(1)))
	u := UserProfile{Location: Location{CostOfLivingIndex: dec("125")}}
	assert.Equal(t, "1.25", u.CostOfLivingMultiplier().String())
}

func TestExpenseTotalsAreDerived(t *testing.T) {
	fixed := FixedExpenses{Housing: dec("2000"), Utilities: dec("200"), Childcare: dec("800")}
	assert.Equal(t, "3000", fixed.Total().String())

	fixed.Housing = dec("2500")
	assert.Equal(t, "3500", fixed.Total().String(), "total must follow the categories")

	variable := VariableExpenses{Food: dec("600"), Travel: dec("150")}
	assert.Equal(t, "750", variable.Total().String())

	assets := CurrentAssets{Checking: dec("1000"), Savings: dec("9000"), Retirement401k: dec("40000"), Brokerage: dec("10000"), RealEstateEquity: dec("50000")}
	assert.Equal(t, "10000", assets.Liquid().String())
	assert.Equal(t, "50000", assets.Investments().String())
	assert.Equal(t, "110000", assets.Total().String())
}

func sampleProfile() FinancialProfile {
	return FinancialProfile{
		User: UserProfile{Name: "Sam", Age: 30, Income: Income{GrossAnnual: dec("120000"), NetMonthly: dec("8000")}},
		Fixed: FixedExpenses{
			Housing: dec("2000"), Utilities: dec("200"), Insurance: dec("300"), Transportation: dec("400"),
		},
		Variable: VariableExpenses{Food: dec("800"), Entertainment: dec("300"), Shopping: dec("200")},
		Assets:   CurrentAssets{Savings: dec("10000"), Retirement401k: dec("50000")},
		Debts: []Debt{
			{ID: "card", Name: "Card", Type: DebtCreditCard, Balance: dec("5000"), MonthlyPayment: dec("150"), InterestRate: dec("18")},
		},
	}
}

func TestFinancialProfile_DerivedValues(t *testing.T) {
	p := sampleProfile()

	assert.Equal(t, "2900", p.Fixed.Total().String())
	assert.Equal(t, "4200", p.MonthlyExpenses().String())
	assert.Equal(t, "3650", p.DisposableIncome().String())
	assert.Equal(t, "55000", p.NetWorth().String())
	assert.Equal(t, "1.5", p.DebtToIncomeRatio().String())
	assert.Equal(t, "61.875", p.FreedomRatio().String())
	assert.Equal(t, "2.381", p.EmergencyFundMonths().StringFixed(3))

	edited := p.WithDebts(nil)
	assert.Equal(t, "3800", edited.DisposableIncome().String(), "removing debts frees their payments")
	assert.Len(t, p.Debts, 1, "original profile must not change")
}

func TestFinancialProfile_CloneIsIndependent(t *testing.T) {
	p := sampleProfile()
	p.Dream = &NorthStarDream{Title: "Cabin", TargetAge: 60, CurrentAge: 30, Investment: &InvestmentStrategy{ExpectedReturn: dec("0.06")}}

	c := p.Clone()
	c.Debts[0].Balance = dec("1")
	c.Dream.Investment.ExpectedReturn = dec("0.01")

	assert.Equal(t, "5000", p.Debts[0].Balance.String())
	assert.Equal(t, "0.06", p.Dream.Investment.ExpectedReturn.String())
}

func TestFinancialProfile_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, sampleProfile().Validate())
	})

	t.Run("bad age", func(t *testing.T) {
		p := sampleProfile()
		p.User.Age = 0
		var inv *InvalidInputError
		require.ErrorAs(t, p.Validate(), &inv)
		assert.Equal(t, "user.age", inv.Field)
	})

	t.Run("negative expense", func(t *testing.T) {
		p := sampleProfile()
		p.Variable.Food = dec("-1")
		var inv *InvalidInputError
		require.ErrorAs(t, p.Validate(), &inv)
		assert.Equal(t, "variable_expenses.food", inv.Field)
	})

	t.Run("tax rate above one", func(t *testing.T) {
		p := sampleProfile()
		p.User.Income.TaxRate = dec("1.5")
		assert.Error(t, p.Validate())
	})
}

func TestNorthStarDream(t *testing.T) {
	defaults := DefaultAssumptions()
	dream := NorthStarDream{
		Title:                 "Lake house",
		TargetAge:             65,
		CurrentAge:            30,
		MonthlyLivingExpenses: dec("6000"),
	}

	assert.Equal(t, 35, dream.YearsToGoal())
	assert.Equal(t, "1800000", dream.RequiredNetWorth(defaults.DefaultWithdrawalRate).String())

	withHome := dream
	withHome.PrimaryResidence.TargetValue = dec("400000")
	assert.Equal(t, "2200000", withHome.RequiredNetWorth(defaults.DefaultWithdrawalRate).String())

	noLiving := NorthStarDream{TargetAge: 50, CurrentAge: 40, TargetNetWorth: dec("750000")}
	assert.Equal(t, "750000", noLiving.RequiredNetWorth(defaults.DefaultWithdrawalRate).String())

	needed, err := dream.MonthlySavingsNeeded(dec("60000"), defaults)
	require.NoError(t, err)
	assert.InDelta(t, 616.10, needed.InexactFloat64(), 0.01)

	past := NorthStarDream{TargetAge: 30, CurrentAge: 30}
	_, err = past.MonthlySavingsNeeded(decimal.Zero, defaults)
	var inv *InvalidInputError
	assert.ErrorAs(t, err, &inv)
}

func TestRequiredContribution(t *testing.T) {
	tests := []struct {
		name    string
		present string
		target  string
		rate    decimal.Decimal
		months  int
		want    float64
	}{
		{"zero rate degrades to linear", "0", "12000", decimal.Zero, 12, 1000},
		{"annuity at 7 percent", "50000", "1000000", MonthlyRateFromFraction(dec("0.07")), 420, 235.80},
		{"ten year sinking fund", "0", "100000", MonthlyRateFromFraction(dec("0.07")), 120, 577.75},
		{"already on track floors at zero", "900000", "1000000", MonthlyRateFromFraction(dec("0.07")), 120, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequiredContribution(dec(tt.present), dec(tt.target), tt.rate, tt.months)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.InexactFloat64(), 0.01)
		})
	}

	_, err := RequiredContribution(decimal.Zero, dec("1000"), decimal.Zero, 0)
	assert.Error(t, err)
}

func TestFutureValueInvertsRequiredContribution(t *testing.T) {
	rate := MonthlyRateFromFraction(dec("0.07"))
	c, err := RequiredContribution(dec("50000"), dec("1000000"), rate, 420)
	require.NoError(t, err)

	fv, err := FutureValue(dec("50000"), c, rate, 420)
	require.NoError(t, err)
	assert.InDelta(t, 1_000_000, fv.InexactFloat64(), 0.5)
}

func TestFromFloatRejectsNonFinite(t *testing.T) {
	zero := 0.0
	_, err := FromFloat("x", 1/zero)
	var inv *InvalidInputError
	assert.ErrorAs(t, err, &inv)
}

func TestDebt_Validate(t *testing.T) {
	tests := []struct {
		name    string
		debt    Debt
		wantErr any
	}{
		{"amortizing", Debt{ID: "a", Balance: dec("70000"), MonthlyPayment: dec("800"), InterestRate: dec("6")}, nil},
		{"payment below interest", Debt{ID: "b", Balance: dec("10000"), MonthlyPayment: dec("40"), InterestRate: dec("12")}, &InsufficientPaymentError{}},
		{"payment equals interest", Debt{ID: "c", Balance: dec("10000"), MonthlyPayment: dec("100"), InterestRate: dec("12")}, &InsufficientPaymentError{}},
		{"zero balance", Debt{ID: "d", Balance: decimal.Zero, MonthlyPayment: dec("10")}, &InvalidInputError{}},
		{"rate above 100", Debt{ID: "e", Balance: dec("10"), MonthlyPayment: dec("10"), InterestRate: dec("101")}, &InvalidInputError{}},
		{"unknown type", Debt{ID: "f", Type: "boat", Balance: dec("10"), MonthlyPayment: dec("10")}, &InvalidInputError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.debt.Validate()
			switch tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *InsufficientPaymentError:
				var ins *InsufficientPaymentError
				require.ErrorAs(t, err, &ins)
				assert.True(t, ins.MinimumPayment().GreaterThan(ins.MonthlyInterest))
			case *InvalidInputError:
				var inv *InvalidInputError
				assert.ErrorAs(t, err, &inv)
			}
		})
	}
}

func TestInsufficientPaymentError_MinimumPayment(t *testing.T) {
	err := &InsufficientPaymentError{MonthlyInterest: dec("100")}
	assert.Equal(t, "100.01", err.MinimumPayment().String())
	assert.Contains(t, err.Error(), "cannot amortize")
}

func TestDebtIDs(t *testing.T) {
	a := NewDebt("Card", DebtCreditCard, dec("100"), dec("10"), dec("20"))
	b := NewDebt("Card", DebtCreditCard, dec("100"), dec("10"), dec("20"))
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	assert.Equal(t, StableDebtID(0, "Card"), StableDebtID(0, "Card"))
	assert.NotEqual(t, StableDebtID(0, "Card"), StableDebtID(1, "Card"))
}

func TestStrategyConfigs_Resolve(t *testing.T) {
	configs := DefaultStrategyConfigs()

	name, cfg, ok := configs.Resolve(StrategyAggressive)
	assert.True(t, ok)
	assert.Equal(t, StrategyAggressive, name)
	assert.Equal(t, 3, cfg.EmergencyFundMonths)

	name, cfg, ok = configs.Resolve("yolo")
	assert.False(t, ok)
	assert.Equal(t, StrategyBalanced, name)
	assert.Equal(t, 4, cfg.EmergencyFundMonths)

	assert.Equal(t, []StrategyName{StrategyConservative, StrategyBalanced, StrategyAggressive}, configs.Names())
}

func TestDefaultsAreFreshCopies(t *testing.T) {
	a := DefaultStrategyConfigs()
	delete(a, StrategyBalanced)
	assert.Contains(t, DefaultStrategyConfigs(), StrategyBalanced)

	table := DefaultChildCostTable()
	table.Phases[PhaseInfant] = PhaseCost{MaxAge: 2, Monthly: decimal.Zero}
	assert.Equal(t, "1600", DefaultChildCostTable().Phases[PhaseInfant].Monthly.String())
}

func TestEngineSettings_Validate(t *testing.T) {
	require.NoError(t, DefaultEngineSettings().Validate())

	s := DefaultEngineSettings()
	s.Assumptions.FoundationCap = dec("1.5")
	assert.Error(t, s.Validate())

	s = DefaultEngineSettings()
	delete(s.Strategies, StrategyBalanced)
	assert.Error(t, s.Validate())
}

func TestChildCostTable_PhaseFor(t *testing.T) {
	table := DefaultChildCostTable()
	tests := map[int]ChildPhase{
		-1: PhaseUnborn, 0: PhaseInfant, 2: PhaseInfant, 3: PhasePreschool, 6: PhaseElementary,
		11: PhaseElementary, 12: PhaseMiddle, 15: PhaseHigh, 18: PhaseCollege, 22: PhaseCollege, 23: PhaseIndependent,
	}
	for age, want := range tests {
		assert.Equal(t, want, table.PhaseFor(age), "age %d", age)
	}
	assert.Equal(t, "2.2", table.CollegeMultiplier(CollegePrivate).String())
	assert.Equal(t, "1", table.CollegeMultiplier("online").String())
}

func TestCollegePlanDefaults(t *testing.T) {
	no := false
	plans := CollegePlans{1: {Attending: &no, Type: CollegeElite}}

	assert.True(t, plans.For(0).Attends())
	assert.Equal(t, CollegeState, plans.For(0).CollegeKind())
	assert.False(t, plans.For(1).Attends())
	assert.Equal(t, CollegeElite, plans.For(1).CollegeKind())
}

func TestAllocationResult_Err(t *testing.T) {
	r := AllocationResult{NoFunds: true, Available: dec("-5")}
	var nf *NoFundsAvailableError
	require.True(t, errors.As(r.Err(), &nf))
	assert.Equal(t, "-5", nf.Available.String())
	assert.NoError(t, AllocationResult{}.Err())
}

func TestAddMonths(t *testing.T) {
	asOf := time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2036, time.June, 1, 0, 0, 0, 0, time.UTC), AddMonths(asOf, 116))
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), AddMonths(asOf, 0))
}
