package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StrategyName selects an allocation risk profile
type StrategyName string

const (
	StrategyConservative StrategyName = "conservative"
	StrategyBalanced     StrategyName = "balanced"
	StrategyAggressive   StrategyName = "aggressive"
)

// DefaultStrategy is used whenever a requested strategy is unknown
const DefaultStrategy = StrategyBalanced

// StrategyConfig holds the fixed weights of one risk profile
type StrategyConfig struct {
	Name                string          `yaml:"name" json:"name" toml:"name"`
	FoundationWeight    decimal.Decimal `yaml:"foundation_weight" json:"foundation_weight" toml:"foundation_weight"`
	DreamWeight         decimal.Decimal `yaml:"dream_weight" json:"dream_weight" toml:"dream_weight"`
	LifeWeight          decimal.Decimal `yaml:"life_weight" json:"life_weight" toml:"life_weight"`
	RiskMultiplier      decimal.Decimal `yaml:"risk_multiplier" json:"risk_multiplier" toml:"risk_multiplier"`
	MaxDreamAllocation  decimal.Decimal `yaml:"max_dream_allocation" json:"max_dream_allocation" toml:"max_dream_allocation"`
	EmergencyFundMonths int             `yaml:"emergency_fund_months" json:"emergency_fund_months" toml:"emergency_fund_months"`
	LifeMultiplier      decimal.Decimal `yaml:"life_multiplier" json:"life_multiplier" toml:"life_multiplier"`
	Description         string          `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
}

// StrategyConfigs maps each risk profile to its weights
type StrategyConfigs map[StrategyName]StrategyConfig

// Names returns the configured strategy names in a stable order
func (s StrategyConfigs) Names() []StrategyName {
	names := make([]StrategyName, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strategyRank(names[i]) < strategyRank(names[j]) ||
			(strategyRank(names[i]) == strategyRank(names[j]) && names[i] < names[j])
	})
	return names
}

func strategyRank(n StrategyName) int {
	switch n {
	case StrategyConservative:
		return 0
	case StrategyBalanced:
		return 1
	case StrategyAggressive:
		return 2
	}
	return 3
}

// Resolve returns the config for name, falling back to balanced. The bool
// reports whether name was found.
func (s StrategyConfigs) Resolve(name StrategyName) (StrategyName, StrategyConfig, bool) {
	if cfg, ok := s[name]; ok {
		return name, cfg, true
	}
	return DefaultStrategy, s[DefaultStrategy], false
}

// DefaultStrategyConfigs returns a fresh copy of the built-in risk profiles
func DefaultStrategyConfigs() StrategyConfigs {
	d := decimal.NewFromFloat
	return StrategyConfigs{
		StrategyConservative: {
			Name:                "Conservative",
			FoundationWeight:    d(0.60),
			DreamWeight:         d(0.25),
			LifeWeight:          d(0.15),
			RiskMultiplier:      d(0.8),
			MaxDreamAllocation:  d(0.30),
			EmergencyFundMonths: 6,
			LifeMultiplier:      d(1.5),
			Description:         "Prioritizes security and a larger emergency fund",
		},
		StrategyBalanced: {
			Name:                "Balanced",
			FoundationWeight:    d(0.50),
			DreamWeight:         d(0.35),
			LifeWeight:          d(0.15),
			RiskMultiplier:      d(1.0),
			MaxDreamAllocation:  d(0.40),
			EmergencyFundMonths: 4,
			LifeMultiplier:      d(1.0),
			Description:         "Balances security with dream pursuit",
		},
		StrategyAggressive: {
			Name:                "Aggressive",
			FoundationWeight:    d(0.40),
			DreamWeight:         d(0.45),
			LifeWeight:          d(0.15),
			RiskMultiplier:      d(1.2),
			MaxDreamAllocation:  d(0.50),
			EmergencyFundMonths: 3,
			LifeMultiplier:      d(0.8),
			Description:         "Maximizes dream acceleration with a lean buffer",
		},
	}
}

// Assumptions are the engine-wide constants that callers may override
type Assumptions struct {
	RetirementTargetNetWorth decimal.Decimal `yaml:"retirement_target_net_worth" json:"retirement_target_net_worth" toml:"retirement_target_net_worth"`
	FoundationIncomeFloor    decimal.Decimal `yaml:"foundation_income_floor" json:"foundation_income_floor" toml:"foundation_income_floor"`
	FoundationCap            decimal.Decimal `yaml:"foundation_cap" json:"foundation_cap" toml:"foundation_cap"`
	FoundationSafetyFloor    decimal.Decimal `yaml:"foundation_safety_floor" json:"foundation_safety_floor" toml:"foundation_safety_floor"`
	DefaultRetirementAge     int             `yaml:"default_retirement_age" json:"default_retirement_age" toml:"default_retirement_age"`
	DefaultExpectedReturn    decimal.Decimal `yaml:"default_expected_return" json:"default_expected_return" toml:"default_expected_return"`
	DefaultWithdrawalRate    decimal.Decimal `yaml:"default_withdrawal_rate" json:"default_withdrawal_rate" toml:"default_withdrawal_rate"`
	DreamFallbackShare       decimal.Decimal `yaml:"dream_fallback_share" json:"dream_fallback_share" toml:"dream_fallback_share"`
	EmergencyBuildMonths     int             `yaml:"emergency_build_months" json:"emergency_build_months" toml:"emergency_build_months"`
	MaxPayoffMonths          int             `yaml:"max_payoff_months" json:"max_payoff_months" toml:"max_payoff_months"`
	PhaseDropThreshold       decimal.Decimal `yaml:"phase_drop_threshold" json:"phase_drop_threshold" toml:"phase_drop_threshold"`
	ExcessFoundationShare    decimal.Decimal `yaml:"excess_foundation_share" json:"excess_foundation_share" toml:"excess_foundation_share"`
	StandardRepaymentMonths  int             `yaml:"standard_repayment_months" json:"standard_repayment_months" toml:"standard_repayment_months"`

	// StrategyBlend is how far each bucket moves toward the strategy's target mix
	StrategyBlend decimal.Decimal `yaml:"strategy_blend" json:"strategy_blend" toml:"strategy_blend"`
	// Optimizer goal shifts: share of Dream moved to Life while the emergency
	// fund is short, and share of Life moved to Dream when accelerating.
	EmergencyGoalShift decimal.Decimal `yaml:"emergency_goal_shift" json:"emergency_goal_shift" toml:"emergency_goal_shift"`
	DreamGoalShift     decimal.Decimal `yaml:"dream_goal_shift" json:"dream_goal_shift" toml:"dream_goal_shift"`
}

// DefaultAssumptions returns the built-in planning constants
func DefaultAssumptions() Assumptions {
	d := decimal.NewFromFloat
	return Assumptions{
		RetirementTargetNetWorth: decimal.NewFromInt(1_000_000),
		FoundationIncomeFloor:    d(0.15),
		FoundationCap:            d(0.80),
		FoundationSafetyFloor:    d(0.80),
		DefaultRetirementAge:     65,
		DefaultExpectedReturn:    d(0.07),
		DefaultWithdrawalRate:    d(0.04),
		DreamFallbackShare:       d(0.30),
		EmergencyBuildMonths:     6,
		MaxPayoffMonths:          600,
		PhaseDropThreshold:       decimal.NewFromInt(200),
		ExcessFoundationShare:    d(0.70),
		StandardRepaymentMonths:  120,
		StrategyBlend:            d(0.25),
		EmergencyGoalShift:       d(0.20),
		DreamGoalShift:           d(0.25),
	}
}

// Validate checks that the assumptions can drive the engine
func (a Assumptions) Validate() error {
	one := decimal.NewFromInt(1)
	fractions := []struct {
		field string
		value decimal.Decimal
	}{
		{"foundation_income_floor", a.FoundationIncomeFloor},
		{"foundation_cap", a.FoundationCap},
		{"foundation_safety_floor", a.FoundationSafetyFloor},
		{"default_withdrawal_rate", a.DefaultWithdrawalRate},
		{"dream_fallback_share", a.DreamFallbackShare},
		{"excess_foundation_share", a.ExcessFoundationShare},
		{"strategy_blend", a.StrategyBlend},
		{"emergency_goal_shift", a.EmergencyGoalShift},
		{"dream_goal_shift", a.DreamGoalShift},
	}
	for _, f := range fractions {
		if f.value.IsNegative() || f.value.GreaterThan(one) {
			return &InvalidInputError{Field: f.field, Value: f.value.String(), Reason: "must be between 0 and 1"}
		}
	}
	if !a.DefaultWithdrawalRate.IsPositive() {
		return &InvalidInputError{Field: "default_withdrawal_rate", Value: a.DefaultWithdrawalRate.String(), Reason: "must be positive"}
	}
	if a.DefaultExpectedReturn.IsNegative() {
		return &InvalidInputError{Field: "default_expected_return", Value: a.DefaultExpectedReturn.String(), Reason: "must not be negative"}
	}
	if a.RetirementTargetNetWorth.IsNegative() || a.PhaseDropThreshold.IsNegative() {
		return &InvalidInputError{Field: "assumptions", Value: "amount", Reason: "monetary assumptions must not be negative"}
	}
	if a.MaxPayoffMonths <= 0 || a.EmergencyBuildMonths <= 0 || a.DefaultRetirementAge <= 0 || a.StandardRepaymentMonths <= 0 {
		return &InvalidInputError{Field: "assumptions", Value: "months", Reason: "month and age settings must be positive"}
	}
	return nil
}

// Validate checks one strategy's weights
func (c StrategyConfig) Validate() error {
	for _, w := range []decimal.Decimal{c.FoundationWeight, c.DreamWeight, c.LifeWeight} {
		if w.IsNegative() {
			return &InvalidInputError{Field: "strategy." + c.Name, Value: w.String(), Reason: "weights must not be negative"}
		}
	}
	if c.FoundationWeight.Add(c.DreamWeight).Add(c.LifeWeight).IsZero() {
		return &InvalidInputError{Field: "strategy." + c.Name, Value: 0, Reason: "weights must not all be zero"}
	}
	if !c.RiskMultiplier.IsPositive() || !c.LifeMultiplier.IsPositive() {
		return &InvalidInputError{Field: "strategy." + c.Name, Value: c.RiskMultiplier.String(), Reason: "multipliers must be positive"}
	}
	if c.MaxDreamAllocation.IsNegative() || c.MaxDreamAllocation.GreaterThan(decimal.NewFromInt(1)) {
		return &InvalidInputError{Field: "strategy." + c.Name, Value: c.MaxDreamAllocation.String(), Reason: "max dream allocation must be between 0 and 1"}
	}
	if c.EmergencyFundMonths <= 0 {
		return &InvalidInputError{Field: "strategy." + c.Name, Value: c.EmergencyFundMonths, Reason: "emergency fund months must be positive"}
	}
	return nil
}
