package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidInputError reports a negative, missing or non-finite input value
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
	Cause  error
}

func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// InsufficientPaymentError reports a debt whose payment does not exceed its first month's interest.
type InsufficientPaymentError struct {
	DebtID          string
	Balance         decimal.Decimal
	Payment         decimal.Decimal
	MonthlyInterest decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	label := "debt"
	if e.DebtID != "" {
		label = "debt " + e.DebtID
	}
	return fmt.Sprintf("%s cannot amortize: payment $%s does not exceed monthly interest $%s on balance $%s",
		label, e.Payment.StringFixed(2), e.MonthlyInterest.StringFixed(2), e.Balance.StringFixed(2))
}

// MinimumPayment is the smallest whole-cent payment that amortizes the debt
func (e *InsufficientPaymentError) MinimumPayment() decimal.Decimal {
	return e.MonthlyInterest.RoundUp(2).Add(decimal.NewFromFloat(0.01))
}

// NonConvergingPayoffError reports a payoff simulation that hit its month cap
type NonConvergingPayoffError struct {
	Strategy  string
	Months    int
	Remaining decimal.Decimal
}

func (e *NonConvergingPayoffError) Error() string {
	return fmt.Sprintf("%s payoff did not converge within %d months ($%s still owed)",
		e.Strategy, e.Months, e.Remaining.StringFixed(2))
}

// NoFundsAvailableError marks an allocation request with nothing to allocate.
// It is carried on the result, never returned as a failure.
type NoFundsAvailableError struct {
	Available decimal.Decimal
}

func (e *NoFundsAvailableError) Error() string {
	return fmt.Sprintf("no funds available to allocate ($%s)", e.Available.StringFixed(2))
}
