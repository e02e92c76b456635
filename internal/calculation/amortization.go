package calculation

import (
	"math"
	"time"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// monthEpsilon absorbs float noise before rounding a month count up
const monthEpsilon = 1e-9

func validateLoanInputs(balance, payment, annualRatePct decimal.Decimal) error {
	if !balance.IsPositive() {
		return &domain.InvalidInputError{Field: "balance", Value: balance.String(), Reason: "must be positive"}
	}
	if !payment.IsPositive() {
		return &domain.InvalidInputError{Field: "payment", Value: payment.String(), Reason: "must be positive"}
	}
	if annualRatePct.IsNegative() {
		return &domain.InvalidInputError{Field: "interest_rate", Value: annualRatePct.String(), Reason: "must not be negative"}
	}
	return nil
}

// RemainingMonths returns the number of level payments that retire balance at
// annualRatePct. A payment that does not exceed the first month's interest
// yields an InsufficientPaymentError, never a month count.
func RemainingMonths(balance, payment, annualRatePct decimal.Decimal) (int, error) {
	if err := validateLoanInputs(balance, payment, annualRatePct); err != nil {
		return 0, err
	}

	r := domain.MonthlyRateFromPercent(annualRatePct)
	if r.IsZero() {
		return int(balance.Div(payment).Ceil().IntPart()), nil
	}

	interest := balance.Mul(r)
	if payment.LessThanOrEqual(interest) {
		return 0, &domain.InsufficientPaymentError{Balance: balance, Payment: payment, MonthlyInterest: interest}
	}

	ratio := interest.Div(payment).InexactFloat64()
	months := -math.Log(1-ratio) / math.Log(1+r.InexactFloat64())
	if math.IsNaN(months) || math.IsInf(months, 0) {
		return 0, &domain.InvalidInputError{Field: "remaining_months", Value: months, Reason: "calculation produced a non-finite value"}
	}
	return int(math.Ceil(months - monthEpsilon)), nil
}

// TotalInterest is payment*months - balance, floored at zero. It assumes every
// payment is made in full, so it can overstate interest by up to one payment.
func TotalInterest(balance, payment decimal.Decimal, months int) decimal.Decimal {
	total := payment.Mul(decimal.NewFromInt(int64(months))).Sub(balance)
	return domain.RoundCents(domain.NonNegative(total))
}

// AmortizedInterest is the exact interest of the schedule, where the final
// payment only covers what is left. It agrees with SimulateAmortization to
// within rounding.
func AmortizedInterest(balance, payment, annualRatePct decimal.Decimal) (decimal.Decimal, error) {
	months, err := RemainingMonths(balance, payment, annualRatePct)
	if err != nil {
		return decimal.Zero, err
	}
	r := domain.MonthlyRateFromPercent(annualRatePct)
	if r.IsZero() {
		return decimal.Zero, nil
	}

	rf := r.InexactFloat64()
	growth := math.Pow(1+rf, float64(months-1))
	beforeLast := balance.InexactFloat64()*growth - payment.InexactFloat64()*(growth-1)/rf
	finalPayment := beforeLast * (1 + rf)
	paid := float64(months-1)*payment.InexactFloat64() + finalPayment

	interest, err := domain.FromFloat("amortized_interest", paid-balance.InexactFloat64())
	if err != nil {
		return decimal.Zero, err
	}
	return domain.RoundCents(domain.NonNegative(interest)), nil
}

// PayoffDate is the first day of the month the last payment lands in
func PayoffDate(asOf time.Time, months int) time.Time {
	return domain.AddMonths(asOf, months)
}

// StandardPayment is the level payment that retires balance in exactly months payments.
func StandardPayment(balance, annualRatePct decimal.Decimal, months int) (decimal.Decimal, error) {
	if !balance.IsPositive() || months <= 0 {
		return decimal.Zero, &domain.InvalidInputError{Field: "standard_payment", Value: months, Reason: "balance and term must be positive"}
	}
	r := domain.MonthlyRateFromPercent(annualRatePct)
	if r.IsZero() {
		return balance.Div(decimal.NewFromInt(int64(months))).RoundUp(2), nil
	}
	rf := r.InexactFloat64()
	p := balance.InexactFloat64() * rf / (1 - math.Pow(1+rf, -float64(months)))
	payment, err := domain.FromFloat("standard_payment", p)
	if err != nil {
		return decimal.Zero, err
	}
	return payment.RoundUp(2), nil
}

// SimulateAmortization walks a single debt month by month. It is the
// independent check on the closed-form functions.
func SimulateAmortization(balance, payment, annualRatePct decimal.Decimal, maxMonths int) (domain.AmortizationSchedule, error) {
	if err := validateLoanInputs(balance, payment, annualRatePct); err != nil {
		return domain.AmortizationSchedule{}, err
	}
	r := domain.MonthlyRateFromPercent(annualRatePct)
	if interest := balance.Mul(r); payment.LessThanOrEqual(interest) {
		return domain.AmortizationSchedule{}, &domain.InsufficientPaymentError{Balance: balance, Payment: payment, MonthlyInterest: interest}
	}

	schedule := domain.AmortizationSchedule{}
	remaining := balance
	for month := 1; remaining.IsPositive(); month++ {
		if month > maxMonths {
			return schedule, &domain.NonConvergingPayoffError{Strategy: "single", Months: maxMonths, Remaining: remaining}
		}
		interest := domain.RoundCents(remaining.Mul(r))
		owed := remaining.Add(interest)
		pay := domain.MinDecimal(payment, owed)
		remaining = owed.Sub(pay)

		schedule.Rows = append(schedule.Rows, domain.AmortizationRow{
			Month:     month,
			Payment:   pay,
			Interest:  interest,
			Principal: pay.Sub(interest),
			Balance:   remaining,
		})
		schedule.Months = month
		schedule.TotalInterest = schedule.TotalInterest.Add(interest)
		schedule.TotalPaid = schedule.TotalPaid.Add(pay)
	}
	return schedule, nil
}

// DebtTimeline returns the closed-form schedule of one debt at its own payment
func (e *Engine) DebtTimeline(debt domain.Debt) (domain.DebtTimeline, error) {
	if err := debt.Validate(); err != nil {
		return domain.DebtTimeline{}, err
	}
	months, err := RemainingMonths(debt.Balance, debt.MonthlyPayment, debt.InterestRate)
	if err != nil {
		return domain.DebtTimeline{}, err
	}
	exact, err := AmortizedInterest(debt.Balance, debt.MonthlyPayment, debt.InterestRate)
	if err != nil {
		return domain.DebtTimeline{}, err
	}
	standard, err := StandardPayment(debt.Balance, debt.InterestRate, e.Assumptions.StandardRepaymentMonths)
	if err != nil {
		return domain.DebtTimeline{}, err
	}

	return domain.DebtTimeline{
		DebtID:            debt.ID,
		Name:              debt.Name,
		RemainingMonths:   months,
		PayoffDate:        PayoffDate(e.asOf(), months).Format("2006-01"),
		TotalInterest:     TotalInterest(debt.Balance, debt.MonthlyPayment, months),
		AmortizedInterest: exact,
		StandardPayment:   standard,
	}, nil
}
