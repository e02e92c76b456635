package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtType classifies a debt
type DebtType string

const (
	DebtStudentLoan  DebtType = "student_loan"
	DebtAutoLoan     DebtType = "auto_loan"
	DebtCreditCard   DebtType = "credit_card"
	DebtPersonalLoan DebtType = "personal_loan"
	DebtMortgage     DebtType = "mortgage"
	DebtOther        DebtType = "other"
)

// Valid reports whether t is a known debt type
func (t DebtType) Valid() bool {
	switch t {
	case DebtStudentLoan, DebtAutoLoan, DebtCreditCard, DebtPersonalLoan, DebtMortgage, DebtOther:
		return true
	}
	return false
}

// Debt is a single obligation. InterestRate is an annual percentage (6.0 = 6%).
type Debt struct {
	ID             string          `yaml:"id" json:"id"`
	Name           string          `yaml:"name" json:"name"`
	Type           DebtType        `yaml:"type" json:"type"`
	Balance        decimal.Decimal `yaml:"balance" json:"balance"`
	MonthlyPayment decimal.Decimal `yaml:"monthly_payment" json:"monthly_payment"`
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
}

// NewDebt builds a debt with a fresh random id
func NewDebt(name string, debtType DebtType, balance, payment, ratePercent decimal.Decimal) Debt {
	return Debt{
		ID:             uuid.NewString(),
		Name:           name,
		Type:           debtType,
		Balance:        balance,
		MonthlyPayment: payment,
		InterestRate:   ratePercent,
	}
}

// debtNamespace scopes ids derived from a debt's position and name
var debtNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("dreamplan.debt"))

// StableDebtID derives a deterministic id so the same input file always yields the same ids.
func StableDebtID(index int, name string) string {
	return uuid.NewSHA1(debtNamespace, []byte(fmt.Sprintf("%d:%s", index, name))).String()
}

// MonthlyRate is the monthly interest fraction
func (d Debt) MonthlyRate() decimal.Decimal {
	return MonthlyRateFromPercent(d.InterestRate)
}

// MonthlyInterest is the first month's interest charge on the current balance
func (d Debt) MonthlyInterest() decimal.Decimal {
	return d.Balance.Mul(d.MonthlyRate())
}

// Validate checks field ranges and that the payment exceeds the first month's interest.
func (d Debt) Validate() error {
	if !d.Balance.IsPositive() {
		return &InvalidInputError{Field: "balance", Value: d.Balance.String(), Reason: "must be positive"}
	}
	if !d.MonthlyPayment.IsPositive() {
		return &InvalidInputError{Field: "monthly_payment", Value: d.MonthlyPayment.String(), Reason: "must be positive"}
	}
	if d.InterestRate.IsNegative() || d.InterestRate.GreaterThan(hundred) {
		return &InvalidInputError{Field: "interest_rate", Value: d.InterestRate.String(), Reason: "must be between 0 and 100"}
	}
	if d.Type != "" && !d.Type.Valid() {
		return &InvalidInputError{Field: "type", Value: d.Type, Reason: "unknown debt type"}
	}
	interest := d.MonthlyInterest()
	if d.MonthlyPayment.LessThanOrEqual(interest) {
		return &InsufficientPaymentError{
			DebtID:          d.ID,
			Balance:         d.Balance,
			Payment:         d.MonthlyPayment,
			MonthlyInterest: interest,
		}
	}
	return nil
}

// DebtPayoff records when one debt was extinguished in a payoff simulation
type DebtPayoff struct {
	DebtID        string          `json:"debt_id"`
	Name          string          `json:"name"`
	PayoffMonth   int             `json:"payoff_month"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	StartBalance  decimal.Decimal `json:"start_balance"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	MinimumAmount decimal.Decimal `json:"minimum_payment"`
}

// PayoffTimeline is the result of simulating a whole debt set under one ordering
type PayoffTimeline struct {
	Strategy      string          `json:"strategy"`
	ExtraMonthly  decimal.Decimal `json:"extra_monthly"`
	TotalMonths   int             `json:"total_months"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	PayoffDate    string          `json:"payoff_date"` // YYYY-MM
	PayoffOrder   []string        `json:"payoff_order"`
	Debts         []DebtPayoff    `json:"debts"`
	Warnings      []Warning       `json:"warnings,omitempty"`
}

// DebtTimeline is the closed-form schedule of a single debt at its own payment
type DebtTimeline struct {
	DebtID            string          `json:"debt_id"`
	Name              string          `json:"name"`
	RemainingMonths   int             `json:"remaining_months"`
	PayoffDate        string          `json:"payoff_date"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
	AmortizedInterest decimal.Decimal `json:"amortized_interest"`
	StandardPayment   decimal.Decimal `json:"standard_payment"`
}

// AmortizationRow is one month of a single-debt schedule
type AmortizationRow struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// AmortizationSchedule is a month-by-month walk of one debt
type AmortizationSchedule struct {
	Months        int               `json:"months"`
	TotalInterest decimal.Decimal   `json:"total_interest"`
	TotalPaid     decimal.Decimal   `json:"total_paid"`
	Rows          []AmortizationRow `json:"rows"`
}

// DebtComparison puts the minimum-payment schedule next to the strategy runs
type DebtComparison struct {
	ExtraMonthly decimal.Decimal  `json:"extra_monthly"`
	MinimumOnly  PayoffTimeline   `json:"minimum_only"`
	Strategies   []PayoffTimeline `json:"strategies"`
	Recommended  string           `json:"recommended"`
}

// Best returns the strategy run with the least interest, earliest on ties
func (c DebtComparison) Best() (PayoffTimeline, bool) {
	if len(c.Strategies) == 0 {
		return PayoffTimeline{}, false
	}
	best := c.Strategies[0]
	for _, t := range c.Strategies[1:] {
		if t.TotalInterest.LessThan(best.TotalInterest) ||
			(t.TotalInterest.Equal(best.TotalInterest) && t.TotalMonths < best.TotalMonths) {
			best = t
		}
	}
	return best, true
}

// InterestSaved is the minimum-only interest minus the given run's interest
func (c DebtComparison) InterestSaved(t PayoffTimeline) decimal.Decimal {
	return c.MinimumOnly.TotalInterest.Sub(t.TotalInterest)
}

// MonthsSaved is the minimum-only duration minus the given run's duration
func (c DebtComparison) MonthsSaved(t PayoffTimeline) int {
	return c.MinimumOnly.TotalMonths - t.TotalMonths
}
