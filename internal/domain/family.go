package domain

import (
	"github.com/shopspring/decimal"
)

// ChildPhase is an age band with its own cost profile
type ChildPhase string

const (
	PhaseInfant      ChildPhase = "infant"
	PhasePreschool   ChildPhase = "preschool"
	PhaseElementary  ChildPhase = "elementary"
	PhaseMiddle      ChildPhase = "middle_school"
	PhaseHigh        ChildPhase = "high_school"
	PhaseCollege     ChildPhase = "college"
	PhaseIndependent ChildPhase = "independent"
	PhaseUnborn      ChildPhase = "unborn"
	PhaseEmptyNest   ChildPhase = "empty_nest"
)

// CostedPhases lists the phases that carry a cost, youngest first
var CostedPhases = []ChildPhase{PhaseInfant, PhasePreschool, PhaseElementary, PhaseMiddle, PhaseHigh, PhaseCollege}

// PhaseCost is the monthly cost of one child in an age band (inclusive ages)
type PhaseCost struct {
	MinAge  int             `yaml:"min_age" json:"min_age" toml:"min_age"`
	MaxAge  int             `yaml:"max_age" json:"max_age" toml:"max_age"`
	Monthly decimal.Decimal `yaml:"monthly" json:"monthly" toml:"monthly"`
}

// CollegeType selects a college cost multiplier
type CollegeType string

const (
	CollegeCommunity CollegeType = "community"
	CollegeState     CollegeType = "state"
	CollegePrivate   CollegeType = "private"
	CollegeElite     CollegeType = "elite"
)

// CollegePlan is one child's college intention. Attendance defaults to true.
type CollegePlan struct {
	Attending *bool       `yaml:"attending,omitempty" json:"attending,omitempty"`
	Type      CollegeType `yaml:"type,omitempty" json:"type,omitempty"`
}

// Attends reports whether the child is planned to attend college
func (c CollegePlan) Attends() bool {
	return c.Attending == nil || *c.Attending
}

// CollegeKind returns the plan's type, defaulting to state school
func (c CollegePlan) CollegeKind() CollegeType {
	if c.Type == "" {
		return CollegeState
	}
	return c.Type
}

// CollegePlans are keyed by child index (position in the ages slice)
type CollegePlans map[int]CollegePlan

// For returns the plan for child i or the default plan
func (p CollegePlans) For(i int) CollegePlan {
	if plan, ok := p[i]; ok {
		return plan
	}
	return CollegePlan{}
}

// ChildCostTable is the static lookup data for the family projection
type ChildCostTable struct {
	Phases             map[ChildPhase]PhaseCost        `yaml:"phases" json:"phases" toml:"phases"`
	CollegeMultipliers map[CollegeType]decimal.Decimal `yaml:"college_multipliers" json:"college_multipliers" toml:"college_multipliers"`
	CollegeAnnualBase  decimal.Decimal                 `yaml:"college_annual_base" json:"college_annual_base" toml:"college_annual_base"`
	CollegeYears       int                             `yaml:"college_years" json:"college_years" toml:"college_years"`
	SavingsShare       decimal.Decimal                 `yaml:"savings_share" json:"savings_share" toml:"savings_share"`
	SchoolStartAge     int                             `yaml:"school_start_age" json:"school_start_age" toml:"school_start_age"`
	CollegeStartAge    int                             `yaml:"college_start_age" json:"college_start_age" toml:"college_start_age"`
	IndependenceAge    int                             `yaml:"independence_age" json:"independence_age" toml:"independence_age"`
}

// DefaultChildCostTable returns a fresh copy of the built-in cost bands
func DefaultChildCostTable() ChildCostTable {
	d := decimal.NewFromFloat
	return ChildCostTable{
		Phases: map[ChildPhase]PhaseCost{
			PhaseInfant:     {MinAge: 0, MaxAge: 2, Monthly: decimal.NewFromInt(1600)},
			PhasePreschool:  {MinAge: 3, MaxAge: 5, Monthly: decimal.NewFromInt(1350)},
			PhaseElementary: {MinAge: 6, MaxAge: 11, Monthly: decimal.NewFromInt(1030)},
			PhaseMiddle:     {MinAge: 12, MaxAge: 14, Monthly: decimal.NewFromInt(1050)},
			PhaseHigh:       {MinAge: 15, MaxAge: 17, Monthly: decimal.NewFromInt(1320)},
			PhaseCollege:    {MinAge: 18, MaxAge: 22, Monthly: decimal.NewFromInt(2100)},
		},
		CollegeMultipliers: map[CollegeType]decimal.Decimal{
			CollegeCommunity: d(0.4),
			CollegeState:     d(1.0),
			CollegePrivate:   d(2.2),
			CollegeElite:     d(3.5),
		},
		CollegeAnnualBase: decimal.NewFromInt(25200),
		CollegeYears:      4,
		SavingsShare:      d(0.25),
		SchoolStartAge:    6,
		CollegeStartAge:   18,
		IndependenceAge:   23,
	}
}

// PhaseFor maps an age to its phase. Negative ages are children not yet born.
func (t ChildCostTable) PhaseFor(age int) ChildPhase {
	if age < 0 {
		return PhaseUnborn
	}
	for _, phase := range CostedPhases {
		band, ok := t.Phases[phase]
		if ok && age >= band.MinAge && age <= band.MaxAge {
			return phase
		}
	}
	return PhaseIndependent
}

// CollegeMultiplier returns the multiplier for a college type, 1 when unknown
func (t ChildCostTable) CollegeMultiplier(kind CollegeType) decimal.Decimal {
	if m, ok := t.CollegeMultipliers[kind]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// Validate checks the table's bands and multipliers
func (t ChildCostTable) Validate() error {
	for _, phase := range CostedPhases {
		band, ok := t.Phases[phase]
		if !ok {
			return &InvalidInputError{Field: "child_costs.phases", Value: phase, Reason: "missing phase"}
		}
		if band.MinAge > band.MaxAge || band.MinAge < 0 || band.Monthly.IsNegative() {
			return &InvalidInputError{Field: "child_costs.phases." + string(phase), Value: band.Monthly.String(), Reason: "invalid age band or cost"}
		}
	}
	for kind, m := range t.CollegeMultipliers {
		if m.IsNegative() {
			return &InvalidInputError{Field: "child_costs.college_multipliers." + string(kind), Value: m.String(), Reason: "must not be negative"}
		}
	}
	if t.CollegeYears <= 0 || t.CollegeAnnualBase.IsNegative() {
		return &InvalidInputError{Field: "child_costs.college", Value: t.CollegeYears, Reason: "college years must be positive and cost non-negative"}
	}
	return nil
}

// ChildYear is one child's state within a projected year
type ChildYear struct {
	Index       int             `json:"index"`
	Age         int             `json:"age"`
	Phase       ChildPhase      `json:"phase"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// YearlyProjection is one year of the family projection
type YearlyProjection struct {
	Year             int              `json:"year"`
	Children         []ChildYear      `json:"children"`
	ActiveChildren   int              `json:"active_children"`
	DominantPhase    ChildPhase       `json:"dominant_phase"`
	ChildCost        decimal.Decimal  `json:"monthly_child_cost"`
	DebtPayments     decimal.Decimal  `json:"monthly_debt_payments"`
	DisposableIncome decimal.Decimal  `json:"disposable_income"`
	Allocation       AllocationResult `json:"allocation"`
}

// PhaseTransition marks a year where the children's phase mix changed
type PhaseTransition struct {
	Year          int             `json:"year"`
	FromPhase     ChildPhase      `json:"from_phase"`
	ToPhase       ChildPhase      `json:"to_phase"`
	CostChange    decimal.Decimal `json:"cost_change"`
	IsOpportunity bool            `json:"is_opportunity"`
}

// MilestoneKind names a family milestone
type MilestoneKind string

const (
	MilestoneSchoolStart  MilestoneKind = "school_start"
	MilestoneCollegeStart MilestoneKind = "college_start"
	MilestoneIndependence MilestoneKind = "independence"
)

// Milestone is a future event for one child
type Milestone struct {
	Year       int           `json:"year"`
	ChildIndex int           `json:"child_index"`
	Kind       MilestoneKind `json:"kind"`
}

// CollegeSavingsPlan is the recommended monthly saving toward one child's college
type CollegeSavingsPlan struct {
	ChildIndex    int             `json:"child_index"`
	CollegeType   CollegeType     `json:"college_type"`
	YearsUntil    int             `json:"years_until"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	MonthlyNeeded decimal.Decimal `json:"monthly_needed"`
	Recommended   decimal.Decimal `json:"recommended"`
}

// DreamRecovery tracks when the Dream bucket regains its child-free level
type DreamRecovery struct {
	Baseline         decimal.Decimal `json:"baseline"`
	LowestDream      decimal.Decimal `json:"lowest_dream"`
	PartialYear      *int            `json:"partial_recovery_year,omitempty"`
	FullYear         *int            `json:"full_recovery_year,omitempty"`
	AccelerationYear []int           `json:"acceleration_years,omitempty"`
}

// FamilyAnalysis bundles the projection with its derived insights
type FamilyAnalysis struct {
	Projections    []YearlyProjection   `json:"projections"`
	Transitions    []PhaseTransition    `json:"transitions"`
	Milestones     []Milestone          `json:"milestones"`
	CollegeSavings []CollegeSavingsPlan `json:"college_savings"`
	Recovery       DreamRecovery        `json:"dream_recovery"`
}

// Opportunities returns the transitions that free up money for the dream
func (f FamilyAnalysis) Opportunities() []PhaseTransition {
	var out []PhaseTransition
	for _, t := range f.Transitions {
		if t.IsOpportunity {
			out = append(out, t)
		}
	}
	return out
}

// Child is a configured child; negative ages are planned children
type Child struct {
	Name    string       `yaml:"name,omitempty" json:"name,omitempty"`
	Age     int          `yaml:"age" json:"age"`
	College *CollegePlan `yaml:"college,omitempty" json:"college,omitempty"`
}

// FamilyPlan is the optional family section of an input file
type FamilyPlan struct {
	Children []Child `yaml:"children" json:"children"`
	Years    int     `yaml:"years,omitempty" json:"years,omitempty"`
}

// Ages returns the children's ages in order
func (f FamilyPlan) Ages() []int {
	ages := make([]int, len(f.Children))
	for i, c := range f.Children {
		ages[i] = c.Age
	}
	return ages
}

// CollegePlans returns the configured plans keyed by child index
func (f FamilyPlan) CollegePlans() CollegePlans {
	plans := CollegePlans{}
	for i, c := range f.Children {
		if c.College != nil {
			plans[i] = *c.College
		}
	}
	return plans
}
