package domain

import (
	"github.com/shopspring/decimal"
)

// Location is only used to scale cost tables by a cost-of-living index
type Location struct {
	City              string          `yaml:"city,omitempty" json:"city,omitempty"`
	State             string          `yaml:"state,omitempty" json:"state,omitempty"`
	CostOfLivingIndex decimal.Decimal `yaml:"cost_of_living_index,omitempty" json:"cost_of_living_index,omitempty"` // 100 = national average
}

// Income holds the stored income figures. Monthly values win over annual ones when both are set.
type Income struct {
	GrossAnnual  decimal.Decimal `yaml:"gross_annual" json:"gross_annual"`
	GrossMonthly decimal.Decimal `yaml:"gross_monthly,omitempty" json:"gross_monthly,omitempty"`
	NetAnnual    decimal.Decimal `yaml:"net_annual,omitempty" json:"net_annual,omitempty"`
	NetMonthly   decimal.Decimal `yaml:"net_monthly,omitempty" json:"net_monthly,omitempty"`
	TaxRate      decimal.Decimal `yaml:"tax_rate,omitempty" json:"tax_rate,omitempty"` // 0-1
}

// UserProfile describes the household's primary earner
type UserProfile struct {
	Name     string   `yaml:"name" json:"name"`
	Age      int      `yaml:"age" json:"age"`
	Location Location `yaml:"location,omitempty" json:"location,omitempty"`
	Income   Income   `yaml:"income" json:"income"`
}

// defaultTaxRate is applied when neither a net income nor a tax rate is given
func defaultTaxRate() decimal.Decimal { return decimal.NewFromFloat(0.22) }

// GrossMonthlyIncome returns the stored monthly gross, else annual/12
func (u UserProfile) GrossMonthlyIncome() decimal.Decimal {
	if u.Income.GrossMonthly.IsPositive() {
		return u.Income.GrossMonthly
	}
	return u.Income.GrossAnnual.Div(twelve)
}

// NetMonthlyIncome returns the stored monthly net, else annual net/12, else gross after tax.
func (u UserProfile) NetMonthlyIncome() decimal.Decimal {
	if u.Income.NetMonthly.IsPositive() {
		return u.Income.NetMonthly
	}
	if u.Income.NetAnnual.IsPositive() {
		return u.Income.NetAnnual.Div(twelve)
	}
	tax := u.Income.TaxRate
	if tax.IsZero() {
		tax = defaultTaxRate()
	}
	return u.GrossMonthlyIncome().Mul(decimal.NewFromInt(1).Sub(tax))
}

// AnnualIncome is the gross yearly income implied by the stored fields
func (u UserProfile) AnnualIncome() decimal.Decimal {
	return u.GrossMonthlyIncome().Mul(twelve)
}

// CostOfLivingMultiplier returns index/100, or 1 when the index is unset
func (u UserProfile) CostOfLivingMultiplier() decimal.Decimal {
	if !u.Location.CostOfLivingIndex.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return u.Location.CostOfLivingIndex.Div(hundred)
}

// PrimaryResidence is the home the dream includes
type PrimaryResidence struct {
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	TargetValue decimal.Decimal `yaml:"target_value" json:"target_value"`
}

// InvestmentStrategy overrides the default return and withdrawal assumptions for a dream.
type InvestmentStrategy struct {
	ExpectedReturn decimal.Decimal `yaml:"expected_return" json:"expected_return"` // annual fraction, e.g. 0.07
	WithdrawalRate decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
}

// NorthStarDream is the household's single long-horizon goal
type NorthStarDream struct {
	Title                 string              `yaml:"title" json:"title"`
	TargetAge             int                 `yaml:"target_age" json:"target_age"`
	CurrentAge            int                 `yaml:"current_age" json:"current_age"`
	MonthlyLivingExpenses decimal.Decimal     `yaml:"monthly_living_expenses" json:"monthly_living_expenses"`
	TargetNetWorth        decimal.Decimal     `yaml:"target_net_worth,omitempty" json:"target_net_worth,omitempty"`
	PrimaryResidence      PrimaryResidence    `yaml:"primary_residence,omitempty" json:"primary_residence,omitempty"`
	Investment            *InvestmentStrategy `yaml:"investment_strategy,omitempty" json:"investment_strategy,omitempty"`
}

// YearsToGoal is targetAge - currentAge; zero or negative means no valid horizon
func (d NorthStarDream) YearsToGoal() int {
	return d.TargetAge - d.CurrentAge
}

// ExpectedReturn returns the dream's own return assumption or the fallback
func (d NorthStarDream) ExpectedReturn(fallback decimal.Decimal) decimal.Decimal {
	if d.Investment != nil && d.Investment.ExpectedReturn.IsPositive() {
		return d.Investment.ExpectedReturn
	}
	return fallback
}

// WithdrawalRate returns the dream's own withdrawal rate or the fallback
func (d NorthStarDream) WithdrawalRate(fallback decimal.Decimal) decimal.Decimal {
	if d.Investment != nil && d.Investment.WithdrawalRate.IsPositive() {
		return d.Investment.WithdrawalRate
	}
	return fallback
}

// RequiredNetWorth is the portfolio that sustains the target living expenses
// at the withdrawal rate, plus the residence's target value. Without living
// expenses it falls back to the stated target net worth.
func (d NorthStarDream) RequiredNetWorth(defaultWithdrawalRate decimal.Decimal) decimal.Decimal {
	rate := d.WithdrawalRate(defaultWithdrawalRate)
	if !d.MonthlyLivingExpenses.IsPositive() || !rate.IsPositive() {
		return NonNegative(d.TargetNetWorth)
	}
	portfolio := d.MonthlyLivingExpenses.Mul(twelve).Div(rate)
	return portfolio.Add(NonNegative(d.PrimaryResidence.TargetValue))
}

// MonthlySavingsNeeded solves for the contribution that grows currentNetWorth
// to RequiredNetWorth by the target age at the expected return.
func (d NorthStarDream) MonthlySavingsNeeded(currentNetWorth decimal.Decimal, defaults Assumptions) (decimal.Decimal, error) {
	years := d.YearsToGoal()
	if years <= 0 {
		return decimal.Zero, &InvalidInputError{Field: "north_star.target_age", Value: d.TargetAge, Reason: "target age must exceed current age"}
	}
	rate := MonthlyRateFromFraction(d.ExpectedReturn(defaults.DefaultExpectedReturn))
	target := d.RequiredNetWorth(defaults.DefaultWithdrawalRate)
	return RequiredContribution(NonNegative(currentNetWorth), target, rate, years*12)
}
