package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/transform"
	"github.com/shopspring/decimal"
)

// DefaultProjectionYears is used when a family plan does not set a horizon
const DefaultProjectionYears = 25

// minChildAge bounds how far ahead a planned child may be entered
const minChildAge = -10

func (e *Engine) validateFamilyInputs(ages []int, profile domain.FinancialProfile, years int) error {
	if years <= 0 {
		return &domain.InvalidInputError{Field: "years", Value: years, Reason: "must be positive"}
	}
	if profile.User.Age+years > 120 {
		return &domain.InvalidInputError{Field: "years", Value: years, Reason: fmt.Sprintf("projection runs past age 120 from age %d", profile.User.Age)}
	}
	for i, age := range ages {
		if age < minChildAge || age > 120 {
			return &domain.InvalidInputError{Field: fmt.Sprintf("children[%d].age", i), Value: age, Reason: fmt.Sprintf("must be between %d and 120", minChildAge)}
		}
	}
	return profile.Validate()
}

// childYears costs every child in one projected year. A college-age child who
// is not attending is treated as independent.
func (e *Engine) childYears(ages []int, plans domain.CollegePlans, year int, colMultiplier decimal.Decimal) ([]domain.ChildYear, decimal.Decimal) {
	children := make([]domain.ChildYear, len(ages))
	total := decimal.Zero
	for i, start := range ages {
		age := start + year
		phase := e.ChildCosts.PhaseFor(age)
		plan := plans.For(i)
		if phase == domain.PhaseCollege && !plan.Attends() {
			phase = domain.PhaseIndependent
		}

		cost := decimal.Zero
		if band, ok := e.ChildCosts.Phases[phase]; ok {
			cost = band.Monthly.Mul(colMultiplier)
			if phase == domain.PhaseCollege {
				cost = cost.Mul(e.ChildCosts.CollegeMultiplier(plan.CollegeKind()))
			}
			cost = domain.RoundCents(cost)
		}
		children[i] = domain.ChildYear{Index: i, Age: age, Phase: phase, MonthlyCost: cost}
		total = total.Add(cost)
	}
	return children, total
}

// dominantPhase is the most common costed phase, earliest phase on ties
func dominantPhase(children []domain.ChildYear) (domain.ChildPhase, int) {
	counts := map[domain.ChildPhase]int{}
	unborn := false
	for _, c := range children {
		if c.MonthlyCost.IsPositive() {
			counts[c.Phase]++
		}
		if c.Phase == domain.PhaseUnborn {
			unborn = true
		}
	}
	best, bestCount, active := domain.PhaseEmptyNest, 0, 0
	for _, phase := range domain.CostedPhases {
		active += counts[phase]
		if counts[phase] > bestCount {
			best, bestCount = phase, counts[phase]
		}
	}
	if active == 0 && unborn {
		best = domain.PhaseUnborn
	}
	return best, active
}

// debtPayoffMonths is each debt's closed-form remaining term. Debts whose
// payment cannot cover interest never drop out of the projection.
func (e *Engine) debtPayoffMonths(debts []domain.Debt) map[string]int {
	months := make(map[string]int, len(debts))
	for _, d := range debts {
		n, err := RemainingMonths(d.Balance, d.MonthlyPayment, d.InterestRate)
		if err != nil {
			var insufficient *domain.InsufficientPaymentError
			if errors.As(err, &insufficient) {
				e.log().Warnf("debt %s never amortizes; it stays in every projected year", d.ID)
			}
			continue
		}
		months[d.ID] = n
	}
	return months
}

// ProjectFamilyImpact projects years 0..years of child costs and re-runs the
// balanced allocation for each year. The profile's childcare line is replaced
// by the projected child cost, debts drop out once their term has passed and
// the household ages with the children.
func (e *Engine) ProjectFamilyImpact(ages []int, plans domain.CollegePlans, profile domain.FinancialProfile, years int) ([]domain.YearlyProjection, error) {
	if err := e.validateFamilyInputs(ages, profile, years); err != nil {
		return nil, fmt.Errorf("family projection: %w", err)
	}

	payoff := e.debtPayoffMonths(profile.Debts)
	col := profile.User.CostOfLivingMultiplier()
	projections := make([]domain.YearlyProjection, 0, years+1)

	for year := 0; year <= years; year++ {
		children, childCost := e.childYears(ages, plans, year, col)

		edits := []transform.ProfileTransform{
			&transform.SetFixedExpense{Category: "childcare", Amount: childCost},
			&transform.AgeProfile{Years: year},
		}
		for _, d := range profile.Debts {
			if n, ok := payoff[d.ID]; ok && n <= year*12 {
				edits = append(edits, &transform.RemoveDebt{DebtID: d.ID})
			}
		}
		projected, err := transform.ApplyTransforms(profile, edits)
		if err != nil {
			return nil, fmt.Errorf("family projection year %d: %w", year, err)
		}

		disposable := projected.DisposableIncome()
		allocation, err := e.Allocate(disposable, projected, domain.DefaultStrategy)
		if err != nil {
			return nil, fmt.Errorf("family projection year %d: %w", year, err)
		}

		phase, active := dominantPhase(children)
		projections = append(projections, domain.YearlyProjection{
			Year:             year,
			Children:         children,
			ActiveChildren:   active,
			DominantPhase:    phase,
			ChildCost:        childCost,
			DebtPayments:     projected.TotalDebtPayments(),
			DisposableIncome: domain.RoundCents(disposable),
			Allocation:       allocation,
		})
	}

	e.log().Debugf("projected %d children over %d years", len(ages), years)
	return projections, nil
}

// AnalyzeFamily runs the projection and derives transitions, milestones,
// college savings and the dream recovery timeline from it.
func (e *Engine) AnalyzeFamily(ages []int, plans domain.CollegePlans, profile domain.FinancialProfile, years int) (domain.FamilyAnalysis, error) {
	projections, err := e.ProjectFamilyImpact(ages, plans, profile, years)
	if err != nil {
		return domain.FamilyAnalysis{}, err
	}

	analysis := domain.FamilyAnalysis{
		Projections:    projections,
		Transitions:    e.phaseTransitions(projections),
		Milestones:     e.milestones(ages, plans, years),
		CollegeSavings: e.collegeSavings(ages, plans, projections[0].DisposableIncome),
	}

	recovery, err := e.dreamRecovery(profile, projections, analysis.Transitions)
	if err != nil {
		return domain.FamilyAnalysis{}, err
	}
	analysis.Recovery = recovery
	return analysis, nil
}

func phaseSignature(children []domain.ChildYear) string {
	sig := ""
	for _, c := range children {
		sig += string(c.Phase) + ","
	}
	return sig
}

// phaseTransitions reports every year where any child changed phase. A drop in
// monthly child cost beyond the threshold is a dream-acceleration opportunity.
func (e *Engine) phaseTransitions(projections []domain.YearlyProjection) []domain.PhaseTransition {
	threshold := e.Assumptions.PhaseDropThreshold
	var transitions []domain.PhaseTransition
	for i := 1; i < len(projections); i++ {
		prev, cur := projections[i-1], projections[i]
		if phaseSignature(prev.Children) == phaseSignature(cur.Children) {
			continue
		}
		change := cur.ChildCost.Sub(prev.ChildCost)
		transitions = append(transitions, domain.PhaseTransition{
			Year:          cur.Year,
			FromPhase:     prev.DominantPhase,
			ToPhase:       cur.DominantPhase,
			CostChange:    change,
			IsOpportunity: change.LessThan(threshold.Neg()),
		})
	}
	return transitions
}

// milestones lists the future school, college and independence years that
// fall inside the horizon.
func (e *Engine) milestones(ages []int, plans domain.CollegePlans, years int) []domain.Milestone {
	var out []domain.Milestone
	add := func(child, atAge, age int, kind domain.MilestoneKind) {
		year := atAge - age
		if year > 0 && year <= years {
			out = append(out, domain.Milestone{Year: year, ChildIndex: child, Kind: kind})
		}
	}
	for i, age := range ages {
		add(i, e.ChildCosts.SchoolStartAge, age, domain.MilestoneSchoolStart)
		if plans.For(i).Attends() {
			add(i, e.ChildCosts.CollegeStartAge, age, domain.MilestoneCollegeStart)
		}
		add(i, e.ChildCosts.IndependenceAge, age, domain.MilestoneIndependence)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Year != out[b].Year {
			return out[a].Year < out[b].Year
		}
		return out[a].ChildIndex < out[b].ChildIndex
	})
	return out
}

// collegeSavings recommends a monthly saving per college-bound child, capped
// at the savings share of current disposable income.
func (e *Engine) collegeSavings(ages []int, plans domain.CollegePlans, disposable decimal.Decimal) []domain.CollegeSavingsPlan {
	capacity := domain.RoundCents(domain.NonNegative(disposable).Mul(e.ChildCosts.SavingsShare))
	var out []domain.CollegeSavingsPlan
	for i, age := range ages {
		plan := plans.For(i)
		until := e.ChildCosts.CollegeStartAge - age
		if !plan.Attends() || until <= 0 {
			continue
		}
		kind := plan.CollegeKind()
		total := e.ChildCosts.CollegeAnnualBase.
			Mul(e.ChildCosts.CollegeMultiplier(kind)).
			Mul(decimal.NewFromInt(int64(e.ChildCosts.CollegeYears)))
		monthly := domain.RoundCents(total.Div(decimal.NewFromInt(int64(until * 12))))
		out = append(out, domain.CollegeSavingsPlan{
			ChildIndex:    i,
			CollegeType:   kind,
			YearsUntil:    until,
			TotalCost:     domain.RoundCents(total),
			MonthlyNeeded: monthly,
			Recommended:   domain.MinDecimal(monthly, capacity),
		})
	}
	return out
}

// dreamRecovery compares each year's Dream bucket with a child-free baseline
// for year 0. Partial recovery is 50% of the baseline, full recovery 100%,
// both counted from the year the Dream bucket bottoms out.
func (e *Engine) dreamRecovery(profile domain.FinancialProfile, projections []domain.YearlyProjection, transitions []domain.PhaseTransition) (domain.DreamRecovery, error) {
	childFree, err := transform.ApplyTransforms(profile, []transform.ProfileTransform{
		&transform.SetFixedExpense{Category: "childcare", Amount: decimal.Zero},
	})
	if err != nil {
		return domain.DreamRecovery{}, err
	}
	base, err := e.Allocate(childFree.DisposableIncome(), childFree, domain.DefaultStrategy)
	if err != nil {
		return domain.DreamRecovery{}, fmt.Errorf("dream baseline: %w", err)
	}

	recovery := domain.DreamRecovery{Baseline: base.Dream, LowestDream: projections[0].Allocation.Dream}
	low := 0
	for i, p := range projections {
		if p.Allocation.Dream.LessThan(recovery.LowestDream) {
			recovery.LowestDream = p.Allocation.Dream
			low = i
		}
	}

	if base.Dream.IsPositive() {
		half := base.Dream.Div(decimal.NewFromInt(2))
		for _, p := range projections[low:] {
			year := p.Year
			if recovery.PartialYear == nil && p.Allocation.Dream.GreaterThanOrEqual(half) {
				recovery.PartialYear = &year
			}
			if recovery.FullYear == nil && p.Allocation.Dream.GreaterThanOrEqual(base.Dream) {
				recovery.FullYear = &year
				break
			}
		}
	}

	for _, t := range transitions {
		if t.IsOpportunity {
			recovery.AccelerationYear = append(recovery.AccelerationYear, t.Year)
		}
	}
	return recovery, nil
}
