package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// FinancialProfile is an immutable snapshot of a household's finances.
// Every aggregate is derived on access, so a copy with an edited field is
// always internally consistent.
type FinancialProfile struct {
	User     UserProfile      `yaml:"user" json:"user"`
	Dream    *NorthStarDream  `yaml:"north_star,omitempty" json:"north_star,omitempty"`
	Fixed    FixedExpenses    `yaml:"fixed_expenses" json:"fixed_expenses"`
	Variable VariableExpenses `yaml:"variable_expenses" json:"variable_expenses"`
	Assets   CurrentAssets    `yaml:"assets" json:"assets"`
	Debts    []Debt           `yaml:"debts" json:"debts"`

	// RetirementTargetNetWorth overrides the engine's default Foundation target when positive
	RetirementTargetNetWorth decimal.Decimal `yaml:"retirement_target_net_worth,omitempty" json:"retirement_target_net_worth,omitempty"`
	RetirementAge            int             `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
}

// TotalDebt is the sum of outstanding balances
func (p FinancialProfile) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Debts {
		total = total.Add(d.Balance)
	}
	return total
}

// TotalDebtPayments is the sum of scheduled monthly payments
func (p FinancialProfile) TotalDebtPayments() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Debts {
		total = total.Add(d.MonthlyPayment)
	}
	return total
}

// MonthlyExpenses is fixed + variable spending, excluding debt payments
func (p FinancialProfile) MonthlyExpenses() decimal.Decimal {
	return p.Fixed.Total().Add(p.Variable.Total())
}

// NetWorth is total assets minus total debt
func (p FinancialProfile) NetWorth() decimal.Decimal {
	return p.Assets.Total().Sub(p.TotalDebt())
}

// DisposableIncome = net monthly income - fixed - variable - debt payments
func (p FinancialProfile) DisposableIncome() decimal.Decimal {
	return p.User.NetMonthlyIncome().
		Sub(p.Fixed.Total()).
		Sub(p.Variable.Total()).
		Sub(p.TotalDebtPayments())
}

// FreedomRatio is the percentage of net income left after fixed obligations and debts.
func (p FinancialProfile) FreedomRatio() decimal.Decimal {
	net := p.User.NetMonthlyIncome()
	left := net.Sub(p.Fixed.Total()).Sub(p.TotalDebtPayments())
	return Percent(left, net)
}

// DebtToIncomeRatio is monthly debt payments as a percentage of gross monthly income.
func (p FinancialProfile) DebtToIncomeRatio() decimal.Decimal {
	return Percent(p.TotalDebtPayments(), p.User.GrossMonthlyIncome())
}

// SavingsRate is disposable income as a percentage of net income
func (p FinancialProfile) SavingsRate() decimal.Decimal {
	return Percent(NonNegative(p.DisposableIncome()), p.User.NetMonthlyIncome())
}

// EmergencyFundMonths is liquid assets divided by monthly expenses
func (p FinancialProfile) EmergencyFundMonths() decimal.Decimal {
	expenses := p.MonthlyExpenses()
	if !expenses.IsPositive() {
		return decimal.Zero
	}
	return p.Assets.Liquid().Div(expenses)
}

// FindDebt returns the debt with the given id
func (p FinancialProfile) FindDebt(id string) (Debt, bool) {
	for _, d := range p.Debts {
		if d.ID == id {
			return d, true
		}
	}
	return Debt{}, false
}

// WithDebts returns a copy of p holding its own copy of debts
func (p FinancialProfile) WithDebts(debts []Debt) FinancialProfile {
	out := p
	out.Debts = append([]Debt(nil), debts...)
	return out
}

// Clone returns a copy that shares no mutable state with p
func (p FinancialProfile) Clone() FinancialProfile {
	out := p.WithDebts(p.Debts)
	if p.Dream != nil {
		dream := *p.Dream
		if p.Dream.Investment != nil {
			inv := *p.Dream.Investment
			dream.Investment = &inv
		}
		out.Dream = &dream
	}
	return out
}

// Validate checks the profile at the engine boundary. Debt payment adequacy is
// left to the payoff operations, which report InsufficientPaymentError.
func (p FinancialProfile) Validate() error {
	if p.User.Age <= 0 || p.User.Age > 120 {
		return &InvalidInputError{Field: "user.age", Value: p.User.Age, Reason: "must be between 1 and 120"}
	}
	income := p.User.Income
	if err := checkNonNegative("user.income", map[string]decimal.Decimal{
		"gross_annual": income.GrossAnnual, "gross_monthly": income.GrossMonthly,
		"net_annual": income.NetAnnual, "net_monthly": income.NetMonthly,
	}); err != nil {
		return err
	}
	if income.TaxRate.IsNegative() || income.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return &InvalidInputError{Field: "user.income.tax_rate", Value: income.TaxRate.String(), Reason: "must be between 0 and 1"}
	}
	if err := checkNonNegative("fixed_expenses", p.Fixed.fields()); err != nil {
		return err
	}
	if err := checkNonNegative("variable_expenses", p.Variable.fields()); err != nil {
		return err
	}
	if err := checkNonNegative("assets", p.Assets.fields()); err != nil {
		return err
	}
	if p.RetirementTargetNetWorth.IsNegative() {
		return &InvalidInputError{Field: "retirement_target_net_worth", Value: p.RetirementTargetNetWorth.String(), Reason: "must not be negative"}
	}
	if p.Dream != nil {
		if p.Dream.MonthlyLivingExpenses.IsNegative() || p.Dream.TargetNetWorth.IsNegative() || p.Dream.PrimaryResidence.TargetValue.IsNegative() {
			return &InvalidInputError{Field: "north_star", Value: p.Dream.Title, Reason: "monetary fields must not be negative"}
		}
	}
	for i, d := range p.Debts {
		if d.Balance.IsNegative() || d.MonthlyPayment.IsNegative() || d.InterestRate.IsNegative() {
			return fmt.Errorf("debt %d (%s): %w", i, d.Name,
				&InvalidInputError{Field: "debt", Value: d.ID, Reason: "monetary fields must not be negative"})
		}
	}
	return nil
}

func checkNonNegative(group string, fields map[string]decimal.Decimal) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if fields[name].IsNegative() {
			return &InvalidInputError{Field: group + "." + name, Value: fields[name].String(), Reason: "must not be negative"}
		}
	}
	return nil
}
