package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func scaleFactor(percent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(percent.Div(hundred))
}

// AdjustIncome scales every income figure by Percent (5 = +5%, -10 = -10%)
type AdjustIncome struct {
	Percent decimal.Decimal
}

func (t *AdjustIncome) Name() string { return "adjust_income" }

func (t *AdjustIncome) Description() string {
	return fmt.Sprintf("Adjust income by %s%%", t.Percent.String())
}

func (t *AdjustIncome) Validate(base domain.FinancialProfile) error {
	if t.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate", "percent must be greater than -100", nil)
	}
	return nil
}

func (t *AdjustIncome) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	out := base.Clone()
	f := scaleFactor(t.Percent)
	inc := &out.User.Income
	inc.GrossAnnual = domain.RoundCents(inc.GrossAnnual.Mul(f))
	inc.GrossMonthly = domain.RoundCents(inc.GrossMonthly.Mul(f))
	inc.NetAnnual = domain.RoundCents(inc.NetAnnual.Mul(f))
	inc.NetMonthly = domain.RoundCents(inc.NetMonthly.Mul(f))
	return out, nil
}

// AddDebt appends a new debt. An empty ID gets a fresh one.
type AddDebt struct {
	Debt domain.Debt
}

func (t *AddDebt) Name() string { return "add_debt" }

func (t *AddDebt) Description() string {
	return fmt.Sprintf("Add debt %s ($%s at %s%%)", t.Debt.Name, t.Debt.Balance.StringFixed(2), t.Debt.InterestRate.String())
}

func (t *AddDebt) Validate(base domain.FinancialProfile) error {
	if t.Debt.ID != "" {
		if _, exists := base.FindDebt(t.Debt.ID); exists {
			return NewTransformError(t.Name(), "validate", fmt.Sprintf("debt %s already exists", t.Debt.ID), nil)
		}
	}
	if err := t.Debt.Validate(); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid debt", err)
	}
	return nil
}

func (t *AddDebt) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	debt := t.Debt
	if debt.ID == "" {
		debt = domain.NewDebt(debt.Name, debt.Type, debt.Balance, debt.MonthlyPayment, debt.InterestRate)
	}
	return base.WithDebts(append(append([]domain.Debt(nil), base.Debts...), debt)), nil
}

// RemoveDebt drops a debt, as if it were paid off or refinanced away
type RemoveDebt struct {
	DebtID string
}

func (t *RemoveDebt) Name() string { return "remove_debt" }

func (t *RemoveDebt) Description() string {
	return fmt.Sprintf("Remove debt %s", t.DebtID)
}

func (t *RemoveDebt) Validate(base domain.FinancialProfile) error {
	if _, ok := base.FindDebt(t.DebtID); !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("debt %s not found", t.DebtID), nil)
	}
	return nil
}

func (t *RemoveDebt) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	kept := make([]domain.Debt, 0, len(base.Debts))
	for _, d := range base.Debts {
		if d.ID != t.DebtID {
			kept = append(kept, d)
		}
	}
	return base.WithDebts(kept), nil
}

// UpdateDebtBalance sets the outstanding balance of one debt
type UpdateDebtBalance struct {
	DebtID  string
	Balance decimal.Decimal
}

func (t *UpdateDebtBalance) Name() string { return "update_debt_balance" }

func (t *UpdateDebtBalance) Description() string {
	return fmt.Sprintf("Set balance of %s to $%s", t.DebtID, t.Balance.StringFixed(2))
}

func (t *UpdateDebtBalance) Validate(base domain.FinancialProfile) error {
	if _, ok := base.FindDebt(t.DebtID); !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("debt %s not found", t.DebtID), nil)
	}
	if !t.Balance.IsPositive() {
		return NewTransformError(t.Name(), "validate", "balance must be positive; use remove_debt for a paid-off debt", nil)
	}
	return nil
}

func (t *UpdateDebtBalance) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	return updateDebt(base, t.DebtID, func(d *domain.Debt) { d.Balance = t.Balance }), nil
}

// UpdateDebtPayment sets the scheduled monthly payment of one debt
type UpdateDebtPayment struct {
	DebtID  string
	Payment decimal.Decimal
}

func (t *UpdateDebtPayment) Name() string { return "update_debt_payment" }

func (t *UpdateDebtPayment) Description() string {
	return fmt.Sprintf("Set payment of %s to $%s", t.DebtID, t.Payment.StringFixed(2))
}

func (t *UpdateDebtPayment) Validate(base domain.FinancialProfile) error {
	debt, ok := base.FindDebt(t.DebtID)
	if !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("debt %s not found", t.DebtID), nil)
	}
	debt.MonthlyPayment = t.Payment
	if err := debt.Validate(); err != nil {
		return NewTransformError(t.Name(), "validate", "payment cannot retire the debt", err)
	}
	return nil
}

func (t *UpdateDebtPayment) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	return updateDebt(base, t.DebtID, func(d *domain.Debt) { d.MonthlyPayment = t.Payment }), nil
}

func updateDebt(base domain.FinancialProfile, id string, edit func(*domain.Debt)) domain.FinancialProfile {
	out := base.WithDebts(base.Debts)
	for i := range out.Debts {
		if out.Debts[i].ID == id {
			edit(&out.Debts[i])
		}
	}
	return out
}

// FixedExpenseCategories are the names SetFixedExpense accepts
var FixedExpenseCategories = []string{"housing", "utilities", "insurance", "transportation", "subscriptions", "childcare", "other"}

// SetFixedExpense replaces one fixed expense category
type SetFixedExpense struct {
	Category string
	Amount   decimal.Decimal
}

func (t *SetFixedExpense) Name() string { return "set_fixed_expense" }

func (t *SetFixedExpense) Description() string {
	return fmt.Sprintf("Set %s to $%s/month", t.Category, t.Amount.StringFixed(2))
}

func (t *SetFixedExpense) Validate(base domain.FinancialProfile) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount must not be negative", nil)
	}
	if fixedField(&base.Fixed, t.Category) == nil {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("unknown category %q (valid: %s)", t.Category, strings.Join(FixedExpenseCategories, ", ")), nil)
	}
	return nil
}

func (t *SetFixedExpense) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	out := base.Clone()
	field := fixedField(&out.Fixed, t.Category)
	if field == nil {
		return base, NewTransformError(t.Name(), "apply", "unknown category "+t.Category, nil)
	}
	*field = t.Amount
	return out, nil
}

func fixedField(f *domain.FixedExpenses, category string) *decimal.Decimal {
	switch strings.ToLower(category) {
	case "housing":
		return &f.Housing
	case "utilities":
		return &f.Utilities
	case "insurance":
		return &f.Insurance
	case "transportation":
		return &f.Transportation
	case "subscriptions":
		return &f.Subscriptions
	case "childcare":
		return &f.Childcare
	case "other":
		return &f.Other
	}
	return nil
}

// ScaleVariableExpenses scales every discretionary category by Percent
type ScaleVariableExpenses struct {
	Percent decimal.Decimal
}

func (t *ScaleVariableExpenses) Name() string { return "scale_variable_expenses" }

func (t *ScaleVariableExpenses) Description() string {
	return fmt.Sprintf("Change variable spending by %s%%", t.Percent.String())
}

func (t *ScaleVariableExpenses) Validate(base domain.FinancialProfile) error {
	if t.Percent.LessThan(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate", "percent must be at least -100", nil)
	}
	return nil
}

func (t *ScaleVariableExpenses) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	out := base.Clone()
	f := scaleFactor(t.Percent)
	v := &out.Variable
	for _, field := range []*decimal.Decimal{&v.Food, &v.Entertainment, &v.Shopping, &v.Healthcare, &v.Travel, &v.Education, &v.Gifts, &v.Miscellaneous} {
		*field = domain.RoundCents(field.Mul(f))
	}
	return out, nil
}

// AgeProfile moves the household Years into the future: the user and the
// dream's current age both advance. Balances are left as they are.
type AgeProfile struct {
	Years int
}

func (t *AgeProfile) Name() string { return "age_profile" }

func (t *AgeProfile) Description() string {
	return fmt.Sprintf("Advance the household %d years", t.Years)
}

func (t *AgeProfile) Validate(base domain.FinancialProfile) error {
	if t.Years < 0 {
		return NewTransformError(t.Name(), "validate", "years must not be negative", nil)
	}
	if base.User.Age+t.Years > 120 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("age %d exceeds 120", base.User.Age+t.Years), nil)
	}
	return nil
}

func (t *AgeProfile) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	out := base.Clone()
	out.User.Age += t.Years
	if out.Dream != nil {
		out.Dream.CurrentAge += t.Years
	}
	return out, nil
}

// SetDreamTargetAge moves the North Star target age
type SetDreamTargetAge struct {
	Age int
}

func (t *SetDreamTargetAge) Name() string { return "set_dream_age" }

func (t *SetDreamTargetAge) Description() string {
	return fmt.Sprintf("Target the North Star at age %d", t.Age)
}

func (t *SetDreamTargetAge) Validate(base domain.FinancialProfile) error {
	if base.Dream == nil {
		return NewTransformError(t.Name(), "validate", "profile has no North Star dream", nil)
	}
	if t.Age <= base.Dream.CurrentAge {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("target age %d must be after current age %d", t.Age, base.Dream.CurrentAge), nil)
	}
	return nil
}

func (t *SetDreamTargetAge) Apply(base domain.FinancialProfile) (domain.FinancialProfile, error) {
	out := base.Clone()
	out.Dream.TargetAge = t.Age
	return out, nil
}
