package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"github.com/shopspring/decimal"
)

// MinimumOnly labels the schedule where every debt gets only its own payment
const MinimumOnly = "minimum_only"

// PayoffTimeline simulates paying off debts under the named ordering with
// extraMonthly on top of the scheduled payments. Unknown names fall back to
// avalanche and the timeline carries a warning.
func (e *Engine) PayoffTimeline(debts []domain.Debt, strategy string, extraMonthly decimal.Decimal) (domain.PayoffTimeline, error) {
	ordering, ok := sequencing.CreateOrdering(strategy, nil)
	timeline, err := e.SimulatePayoff(debts, ordering, extraMonthly)
	if err != nil {
		return timeline, err
	}
	if !ok && strategy != "" {
		e.log().Warnf("unknown payoff strategy %q, using %s", strategy, ordering.Name())
		timeline.Warnings = append(timeline.Warnings, domain.Warning{
			Code:     domain.WarnUnknownOrdering,
			Message:  fmt.Sprintf("unknown payoff strategy %q; used %s", strategy, ordering.Name()),
			Severity: domain.SeverityWarning,
		})
	}
	return timeline, nil
}

// SimulatePayoff runs the waterfall simulation with an explicit ordering
func (e *Engine) SimulatePayoff(debts []domain.Debt, ordering sequencing.PayoffOrdering, extraMonthly decimal.Decimal) (domain.PayoffTimeline, error) {
	return simulatePayoff(debts, ordering, extraMonthly, true, e.Assumptions.MaxPayoffMonths, e.asOf())
}

// MinimumPaymentTimeline pays every debt with its own payment only; freed
// payments are not rolled over.
func (e *Engine) MinimumPaymentTimeline(debts []domain.Debt) (domain.PayoffTimeline, error) {
	t, err := simulatePayoff(debts, sequencing.NewAvalancheOrdering(), decimal.Zero, false, e.Assumptions.MaxPayoffMonths, e.asOf())
	t.Strategy = MinimumOnly
	return t, err
}

// CompareDebtStrategies runs the minimum-only schedule and each named ordering
func (e *Engine) CompareDebtStrategies(debts []domain.Debt, extraMonthly decimal.Decimal, strategies ...string) (domain.DebtComparison, error) {
	if len(strategies) == 0 {
		strategies = []string{sequencing.Avalanche, sequencing.Snowball}
	}
	cmp := domain.DebtComparison{ExtraMonthly: extraMonthly}

	minimum, err := e.MinimumPaymentTimeline(debts)
	if err != nil {
		return cmp, err
	}
	cmp.MinimumOnly = minimum

	for _, name := range strategies {
		t, err := e.PayoffTimeline(debts, name, extraMonthly)
		if err != nil {
			return cmp, fmt.Errorf("%s payoff: %w", name, err)
		}
		cmp.Strategies = append(cmp.Strategies, t)
	}
	if best, ok := cmp.Best(); ok {
		cmp.Recommended = best.Strategy
	}
	return cmp, nil
}

// InterestSaved is how much interest the ordering with extraMonthly saves
// compared with paying only the scheduled minimums.
func (e *Engine) InterestSaved(debts []domain.Debt, strategy string, extraMonthly decimal.Decimal) (decimal.Decimal, error) {
	cmp, err := e.CompareDebtStrategies(debts, extraMonthly, strategy)
	if err != nil {
		return decimal.Zero, err
	}
	return cmp.InterestSaved(cmp.Strategies[0]), nil
}

type debtState struct {
	debt        domain.Debt
	balance     decimal.Decimal
	interest    decimal.Decimal
	payoffMonth int
}

func (s *debtState) active() bool { return s.payoffMonth == 0 }

func validateDebtSet(debts []domain.Debt, extra decimal.Decimal) error {
	if extra.IsNegative() {
		return &domain.InvalidInputError{Field: "extra_monthly", Value: extra.String(), Reason: "must not be negative"}
	}
	seen := make(map[string]bool, len(debts))
	for i, d := range debts {
		if d.ID == "" || seen[d.ID] {
			return &domain.InvalidInputError{Field: fmt.Sprintf("debts[%d].id", i), Value: d.ID, Reason: "debt ids must be present and unique"}
		}
		seen[d.ID] = true
		if err := d.Validate(); err != nil {
			return fmt.Errorf("debt %d (%s): %w", i, d.Name, err)
		}
	}
	return nil
}

// simulatePayoff walks the debt set month by month. Each month every active
// debt accrues interest (rounded to cents) and receives its own payment. With
// rollover, the extra amount, payments freed by retired debts and any unused
// part of a final payment are applied to the first active debts in order.
func simulatePayoff(debts []domain.Debt, ordering sequencing.PayoffOrdering, extra decimal.Decimal, rollover bool, maxMonths int, asOf time.Time) (domain.PayoffTimeline, error) {
	timeline := domain.PayoffTimeline{
		Strategy:     ordering.Name(),
		ExtraMonthly: extra,
		PayoffOrder:  []string{},
	}
	if err := validateDebtSet(debts, extra); err != nil {
		return timeline, err
	}
	if !rollover {
		timeline.ExtraMonthly = decimal.Zero
	}

	ordered := ordering.Order(debts)
	states := make([]*debtState, len(ordered))
	for i, d := range ordered {
		states[i] = &debtState{debt: d, balance: d.Balance}
	}

	remaining := len(states)
	month := 0
	for remaining > 0 {
		month++
		if month > maxMonths {
			owed := decimal.Zero
			for _, s := range states {
				owed = owed.Add(s.balance)
			}
			return timeline, &domain.NonConvergingPayoffError{Strategy: timeline.Strategy, Months: maxMonths, Remaining: owed}
		}

		pool := decimal.Zero
		if rollover {
			pool = extra
			for _, s := range states {
				if !s.active() {
					pool = pool.Add(s.debt.MonthlyPayment)
				}
			}
		}

		for _, s := range states {
			if !s.active() {
				continue
			}
			interest := domain.RoundCents(s.balance.Mul(s.debt.MonthlyRate()))
			s.balance = s.balance.Add(interest)
			s.interest = s.interest.Add(interest)
			timeline.TotalInterest = timeline.TotalInterest.Add(interest)

			pay := domain.MinDecimal(s.debt.MonthlyPayment, s.balance)
			s.balance = s.balance.Sub(pay)
			timeline.TotalPaid = timeline.TotalPaid.Add(pay)
			if rollover {
				pool = pool.Add(s.debt.MonthlyPayment.Sub(pay))
			}
		}

		for _, s := range states {
			if !pool.IsPositive() {
				break
			}
			if !s.active() || !s.balance.IsPositive() {
				continue
			}
			apply := domain.MinDecimal(pool, s.balance)
			s.balance = s.balance.Sub(apply)
			pool = pool.Sub(apply)
			timeline.TotalPaid = timeline.TotalPaid.Add(apply)
		}

		for _, s := range states {
			if s.active() && !s.balance.IsPositive() {
				s.payoffMonth = month
				remaining--
				timeline.PayoffOrder = append(timeline.PayoffOrder, s.debt.ID)
			}
		}
	}

	timeline.TotalMonths = month
	timeline.PayoffDate = PayoffDate(asOf, month).Format("2006-01")
	for _, s := range states {
		timeline.Debts = append(timeline.Debts, domain.DebtPayoff{
			DebtID:        s.debt.ID,
			Name:          s.debt.Name,
			PayoffMonth:   s.payoffMonth,
			InterestPaid:  s.interest,
			StartBalance:  s.debt.Balance,
			InterestRate:  s.debt.InterestRate,
			MinimumAmount: s.debt.MonthlyPayment,
		})
	}
	return timeline, nil
}
