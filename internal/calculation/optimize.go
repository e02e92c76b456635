package calculation

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// AllocationConstraints bound an optimized allocation
type AllocationConstraints struct {
	MinFoundation *decimal.Decimal
	MaxDream      *decimal.Decimal
}

// AllocationGoals nudge an allocation toward a priority
type AllocationGoals struct {
	PrioritizeEmergencyFund bool
	AccelerateDream         bool
}

// Optimize starts from Allocate and applies user constraints and goals. Every
// adjustment moves money between buckets, so the total never changes.
func (e *Engine) Optimize(availableMonthly decimal.Decimal, profile domain.FinancialProfile, strategy domain.StrategyName,
	constraints AllocationConstraints, goals AllocationGoals) (domain.AllocationResult, error) {
	r, err := e.Allocate(availableMonthly, profile, strategy)
	if err != nil || r.NoFunds {
		return r, err
	}
	_, cfg, _ := e.Strategies.Resolve(r.Strategy)
	f, d, l := r.Foundation, r.Dream, r.Life

	if constraints.MinFoundation != nil && f.LessThan(*constraints.MinFoundation) {
		need := domain.MinDecimal(constraints.MinFoundation.Sub(f), d.Add(l))
		fromLife := domain.MinDecimal(need, l)
		l = l.Sub(fromLife)
		d = d.Sub(need.Sub(fromLife))
		f = f.Add(need)
	}

	if constraints.MaxDream != nil && d.GreaterThan(*constraints.MaxDream) {
		excess := d.Sub(domain.NonNegative(*constraints.MaxDream))
		toFoundation := domain.RoundCents(excess.Mul(e.Assumptions.ExcessFoundationShare))
		f = f.Add(toFoundation)
		l = l.Add(excess.Sub(toFoundation))
		d = d.Sub(excess)
	}

	if goals.PrioritizeEmergencyFund && profile.EmergencyFundMonths().LessThan(decimal.NewFromInt(int64(cfg.EmergencyFundMonths))) {
		shift := domain.RoundCents(d.Mul(e.Assumptions.EmergencyGoalShift))
		d = d.Sub(shift)
		l = l.Add(shift)
	}

	if goals.AccelerateDream {
		dreamCap := r.Available.Mul(cfg.MaxDreamAllocation).RoundDown(2)
		if constraints.MaxDream != nil {
			dreamCap = domain.MinDecimal(dreamCap, *constraints.MaxDream)
		}
		room := domain.NonNegative(dreamCap.Sub(d))
		shift := domain.MinDecimal(domain.RoundCents(l.Mul(e.Assumptions.DreamGoalShift)), room)
		l = l.Sub(shift)
		d = d.Add(shift)
	}

	e.log().Debugf("optimized %s: foundation=%s dream=%s life=%s", r.Strategy, f.StringFixed(2), d.StringFixed(2), l.StringFixed(2))
	r.Foundation, r.Dream, r.Life = f, d, l
	r.Total = f.Add(d).Add(l)
	r.Percentages = domain.BucketPercentages{
		Foundation: domain.Percent(f, r.Available).Round(2),
		Dream:      domain.Percent(d, r.Available).Round(2),
		Life:       domain.Percent(l, r.Available).Round(2),
	}
	if !r.Total.Equal(r.Available) {
		return r, fmt.Errorf("optimize: buckets sum to %s, expected %s", r.Total.StringFixed(2), r.Available.StringFixed(2))
	}
	r.Warnings = append(pipelineWarnings(r.Warnings), e.analyze(r, profile, cfg)...)
	return r, nil
}

// pipelineWarnings keeps the warnings raised while allocating and drops the
// advisory ones, which only describe the buckets they were computed from.
func pipelineWarnings(warnings []domain.Warning) []domain.Warning {
	kept := make([]domain.Warning, 0, len(warnings))
	for _, w := range warnings {
		switch w.Code {
		case domain.WarnFoundationBelowMin, domain.WarnDreamUnderfunded, domain.WarnEmergencyFundLow:
			continue
		}
		kept = append(kept, w)
	}
	return kept
}
