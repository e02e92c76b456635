package calculation

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Allocate splits availableMonthly into Foundation, Dream and Life under the
// named strategy. It is a pure function of its arguments.
//
// Pipeline:
//  1. Foundation = min(minimum foundation, cap share of available)
//  2. Dream sized from the remainder
//  3. Life sized from what is left
//  4. Unallocated money is spread by the strategy weights, then the three
//     amounts are blended toward the strategy's target mix
//  5. Dream is capped; the excess goes to Foundation and Life
//  6. Foundation is forced back to its safety floor if needed
//  7. Amounts are rounded to cents; Life absorbs the rounding residue
func (e *Engine) Allocate(availableMonthly decimal.Decimal, profile domain.FinancialProfile, strategy domain.StrategyName) (domain.AllocationResult, error) {
	name, cfg, known := e.Strategies.Resolve(strategy)
	available := domain.RoundCents(availableMonthly)
	result := domain.AllocationResult{
		Strategy:  name,
		Available: available,
		Warnings:  []domain.Warning{},
	}
	if !known {
		e.log().Warnf("unknown allocation strategy %q, using %s", strategy, name)
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:     domain.WarnUnknownStrategy,
			Message:  fmt.Sprintf("unknown strategy %q; used %s", strategy, name),
			Severity: domain.SeverityWarning,
		})
	}

	if err := profile.Validate(); err != nil {
		return result, fmt.Errorf("allocate: %w", err)
	}

	if !available.IsPositive() {
		result.NoFunds = true
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:     domain.WarnNoFunds,
			Message:  (&domain.NoFundsAvailableError{Available: available}).Error(),
			Severity: domain.SeverityHigh,
		})
		return result, nil
	}

	// Steps 1-3: the sizers
	foundation, minimum, err := e.SizeFoundation(available, profile)
	if err != nil {
		return result, fmt.Errorf("allocate: %w", err)
	}
	result.MinimumFoundation = minimum

	dreamSizing, err := e.SizeDream(available.Sub(foundation), profile)
	if err != nil {
		return result, fmt.Errorf("allocate: %w", err)
	}
	dream := dreamSizing.Amount
	result.DreamRequired = dreamSizing.Required
	result.Warnings = append(result.Warnings, dreamSizing.Warnings...)

	life, emergencyTarget := e.SizeLife(available.Sub(foundation).Sub(dream), profile, cfg)
	result.EmergencyTarget = domain.RoundCents(emergencyTarget)
	e.log().Debugf("sized %s: foundation=%s dream=%s life=%s", name, foundation.StringFixed(2), dream.StringFixed(2), life.StringFixed(2))

	// Step 4: spread the unallocated remainder by the strategy mix, then pull
	// every bucket part of the way toward that mix. The blend is convex, so
	// the buckets still sum to available.
	mix := targetMix(cfg)
	unallocated := domain.NonNegative(available.Sub(foundation).Sub(dream).Sub(life))
	if unallocated.IsPositive() {
		foundation = foundation.Add(unallocated.Mul(mix.Foundation))
		dream = dream.Add(unallocated.Mul(mix.Dream))
		life = life.Add(unallocated.Mul(mix.Life))
	}
	if blend := e.Assumptions.StrategyBlend; blend.IsPositive() {
		keep := decimal.NewFromInt(1).Sub(blend)
		foundation = foundation.Mul(keep).Add(available.Mul(mix.Foundation).Mul(blend))
		dream = dream.Mul(keep).Add(available.Mul(mix.Dream).Mul(blend))
		life = life.Mul(keep).Add(available.Mul(mix.Life).Mul(blend))
	}

	// Step 5: cap Dream
	dreamCap := available.Mul(cfg.MaxDreamAllocation).RoundDown(2)
	if dream.GreaterThan(dreamCap) {
		excess := dream.Sub(dreamCap)
		toFoundation := excess.Mul(e.Assumptions.ExcessFoundationShare)
		foundation = foundation.Add(toFoundation)
		life = life.Add(excess.Sub(toFoundation))
		dream = dreamCap
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:     domain.WarnDreamCapped,
			Message:  fmt.Sprintf("dream capped at %s%% of available; $%s redistributed", cfg.MaxDreamAllocation.Mul(decimal.NewFromInt(100)).String(), excess.StringFixed(2)),
			Severity: domain.SeverityInfo,
		})
	}

	// Step 6: Foundation safety floor
	safetyFloor := minimum.Mul(e.Assumptions.FoundationSafetyFloor).RoundUp(2)
	if foundation.LessThan(safetyFloor) {
		target := domain.MinDecimal(safetyFloor, available)
		shortfall := target.Sub(foundation)
		others := dream.Add(life)
		if others.IsPositive() {
			scale := domain.NonNegative(others.Sub(shortfall)).Div(others)
			dream = dream.Mul(scale)
			life = life.Mul(scale)
		}
		foundation = target
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:     domain.WarnFoundationFloorForced,
			Message:  fmt.Sprintf("foundation raised to its safety floor of $%s", target.StringFixed(2)),
			Severity: domain.SeverityWarning,
		})
	}

	// Step 7: cents
	f, d, l := roundBuckets(available, foundation, dream)
	result.Foundation = f
	result.Dream = d
	result.Life = l
	result.Total = f.Add(d).Add(l)
	result.Percentages = domain.BucketPercentages{
		Foundation: domain.Percent(f, available).Round(2),
		Dream:      domain.Percent(d, available).Round(2),
		Life:       domain.Percent(l, available).Round(2),
	}
	result.Warnings = append(result.Warnings, e.analyze(result, profile, cfg)...)

	e.log().Debugf("allocated %s of %s: foundation=%s dream=%s life=%s",
		name, available.StringFixed(2), f.StringFixed(2), d.StringFixed(2), l.StringFixed(2))
	return result, nil
}

// bucketMix holds bucket shares that sum to one
type bucketMix struct {
	Foundation, Dream, Life decimal.Decimal
}

// targetMix normalises the strategy weights. A higher risk multiplier tilts
// the mix from Foundation toward Dream.
func targetMix(cfg domain.StrategyConfig) bucketMix {
	wf := cfg.FoundationWeight.Div(cfg.RiskMultiplier)
	wd := cfg.DreamWeight.Mul(cfg.RiskMultiplier)
	wl := cfg.LifeWeight
	total := wf.Add(wd).Add(wl)
	return bucketMix{Foundation: wf.Div(total), Dream: wd.Div(total), Life: wl.Div(total)}
}

// roundBuckets rounds Foundation and Dream to cents and gives Life the rest,
// so the three always sum to available.
func roundBuckets(available, foundation, dream decimal.Decimal) (f, d, l decimal.Decimal) {
	f = domain.MinDecimal(domain.RoundCents(foundation), available)
	d = domain.MinDecimal(domain.RoundCents(dream), available.Sub(f))
	l = available.Sub(f).Sub(d)
	return f, d, l
}

// analyze produces the advisory warnings for a finished allocation
func (e *Engine) analyze(r domain.AllocationResult, profile domain.FinancialProfile, cfg domain.StrategyConfig) []domain.Warning {
	var warnings []domain.Warning
	if r.Foundation.LessThan(r.MinimumFoundation) {
		warnings = append(warnings, domain.Warning{
			Code:     domain.WarnFoundationBelowMin,
			Message:  fmt.Sprintf("foundation $%s is below the recommended minimum of $%s", r.Foundation.StringFixed(2), r.MinimumFoundation.StringFixed(2)),
			Severity: domain.SeverityHigh,
		})
	}
	if r.DreamRequired.IsPositive() && r.Dream.LessThan(r.DreamRequired.Mul(decimal.NewFromFloat(0.8))) {
		warnings = append(warnings, domain.Warning{
			Code:     domain.WarnDreamUnderfunded,
			Message:  fmt.Sprintf("dream receives $%s of the $%s needed to stay on schedule", r.Dream.StringFixed(2), r.DreamRequired.StringFixed(2)),
			Severity: domain.SeverityWarning,
		})
	}
	if profile.MonthlyExpenses().IsPositive() && profile.EmergencyFundMonths().LessThan(decimal.NewFromInt(3)) {
		warnings = append(warnings, domain.Warning{
			Code:     domain.WarnEmergencyFundLow,
			Message:  fmt.Sprintf("emergency fund covers %s months of expenses; target is %d", profile.EmergencyFundMonths().StringFixed(1), cfg.EmergencyFundMonths),
			Severity: domain.SeverityWarning,
		})
	}
	return warnings
}

// CompareStrategies allocates availableMonthly under every configured
// strategy concurrently.
func (e *Engine) CompareStrategies(ctx context.Context, availableMonthly decimal.Decimal, profile domain.FinancialProfile) (map[domain.StrategyName]domain.AllocationResult, error) {
	results := make(map[domain.StrategyName]domain.AllocationResult, len(e.Strategies))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range e.Strategies.Names() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := e.Allocate(availableMonthly, profile, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mu.Lock()
			results[name] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
