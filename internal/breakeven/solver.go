package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the smallest extra monthly payment that meets a payoff target
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// SolveExtraPayment binary searches the extra monthly amount between zero
// and the combined balance. The returned amount is rounded to cents and
// always meets the target; it is within Tolerance of the true minimum when
// the search converged.
func (s *Solver) SolveExtraPayment(ctx context.Context, req ExtraPaymentRequest) (*ExtraPaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.Engine == nil {
		return nil, &SolverError{Operation: "solve_extra_payment", Message: "solver has no calculation engine"}
	}

	// Apply defaults
	if req.Target == "" {
		req.Target = TargetPayoffMonths
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Tolerance.LessThan(minTolerance) {
		req.Tolerance = minTolerance
	}

	baseline, met, err := s.evaluate(req, decimal.Zero)
	if err != nil {
		return nil, err
	}
	result := &ExtraPaymentResult{Request: req, Baseline: baseline}
	if met {
		result.Success = true
		result.ConvergenceInfo = "Target met without extra payment"
		result.Timeline = *baseline
		return result, nil
	}

	lo := decimal.Zero
	hi := decimal.Zero
	for _, d := range req.Debts {
		hi = hi.Add(d.Balance)
	}
	hiTimeline, met, err := s.evaluate(req, hi)
	if err != nil {
		return nil, err
	}
	if !met {
		return nil, &SolverError{
			Operation: "solve_extra_payment",
			Message:   fmt.Sprintf("target is unreachable even with $%s extra per month", hi.StringFixed(2)),
		}
	}
	best := *hiTimeline

	for hi.Sub(lo).GreaterThan(req.Tolerance) {
		if result.Iterations >= req.MaxIterations {
			break
		}
		result.Iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(decimal.NewFromInt(2)).RoundUp(2)
		timeline, met, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		if met {
			hi = mid
			best = *timeline
		} else {
			lo = mid
		}
	}

	result.ExtraMonthly = hi
	result.Timeline = best
	if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Binary search converged within $%s", req.Tolerance.StringFixed(2))
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached; bracket $%s-$%s",
			req.MaxIterations, lo.StringFixed(2), hi.StringFixed(2))
	}
	if result.Baseline != nil {
		result.MonthsSaved = result.Baseline.TotalMonths - best.TotalMonths
		result.InterestSaved = result.Baseline.TotalInterest.Sub(best.TotalInterest)
	}

	if s.Engine.Logger != nil {
		s.Engine.Logger.Debugf("break-even %s for %s: extra %s after %d iterations",
			req.Target, best.Strategy, hi.StringFixed(2), result.Iterations)
	}
	return result, nil
}

// evaluate runs one payoff simulation. A schedule that never finishes counts
// as missing the target and yields a nil timeline.
func (s *Solver) evaluate(req ExtraPaymentRequest, extra decimal.Decimal) (*domain.PayoffTimeline, bool, error) {
	timeline, err := s.Engine.PayoffTimeline(req.Debts, req.Strategy, extra)
	if err != nil {
		var nonConverging *domain.NonConvergingPayoffError
		if errors.As(err, &nonConverging) {
			return nil, false, nil
		}
		return nil, false, &SolverError{
			Operation: "solve_extra_payment",
			Message:   fmt.Sprintf("failed to simulate payoff at $%s extra", extra.StringFixed(2)),
			Cause:     err,
		}
	}

	switch req.Target {
	case TargetTotalInterest:
		return &timeline, timeline.TotalInterest.LessThanOrEqual(req.MaxInterest), nil
	default:
		return &timeline, timeline.TotalMonths <= req.TargetMonths, nil
	}
}
