package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/sequencing"
)

// SolveAcrossStrategies runs the solver once per payoff strategy and compares
// the results. Strategies that fail are skipped; it is an error only when
// none succeed. With no strategies given, avalanche and snowball are used.
func (s *Solver) SolveAcrossStrategies(ctx context.Context, req ExtraPaymentRequest, strategies ...string) (*StrategySolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(strategies) == 0 {
		strategies = []string{sequencing.Avalanche, sequencing.Snowball}
	}

	var results []ExtraPaymentResult
	var lastErr error
	for _, strategy := range strategies {
		r := req
		r.Strategy = strategy
		result, err := s.SolveExtraPayment(ctx, r)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &SolverError{
			Operation: "solve_across_strategies",
			Message:   "no strategy reached the target",
			Cause:     lastErr,
		}
	}

	out := &StrategySolveResult{Results: results}
	for i := range results {
		r := &results[i]
		if out.Cheapest == nil || r.ExtraMonthly.LessThan(out.Cheapest.ExtraMonthly) ||
			(r.ExtraMonthly.Equal(out.Cheapest.ExtraMonthly) && r.Timeline.TotalInterest.LessThan(out.Cheapest.Timeline.TotalInterest)) {
			out.Cheapest = r
		}
		if out.LeastInterest == nil || r.Timeline.TotalInterest.LessThan(out.LeastInterest.Timeline.TotalInterest) {
			out.LeastInterest = r
		}
	}
	out.Recommendations = recommendations(out)
	return out, nil
}

func recommendations(result *StrategySolveResult) []string {
	var recs []string

	if c := result.Cheapest; c != nil {
		if c.ExtraMonthly.IsZero() {
			recs = append(recs, fmt.Sprintf("%s already meets the target with no extra payment", c.Timeline.Strategy))
		} else {
			recs = append(recs, fmt.Sprintf("Lowest extra payment: %s with $%s/month (debt-free %s)",
				c.Timeline.Strategy, c.ExtraMonthly.StringFixed(2), c.Timeline.PayoffDate))
		}
	}

	if l := result.LeastInterest; l != nil && l != result.Cheapest {
		recs = append(recs, fmt.Sprintf("Least interest: %s pays $%s total interest with $%s/month extra",
			l.Timeline.Strategy, l.Timeline.TotalInterest.StringFixed(2), l.ExtraMonthly.StringFixed(2)))
	}

	for _, r := range result.Results {
		if !r.Success {
			recs = append(recs, fmt.Sprintf("%s did not fully converge: %s", r.Timeline.Strategy, r.ConvergenceInfo))
		}
	}
	return recs
}
