package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration is a complete household input file
type Configuration struct {
	Profile          FinancialProfile `yaml:"profile" json:"profile"`
	AvailableMonthly *decimal.Decimal `yaml:"available_monthly,omitempty" json:"available_monthly,omitempty"`
	Strategy         StrategyName     `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Payoff           PayoffPlan       `yaml:"payoff,omitempty" json:"payoff,omitempty"`
	Family           *FamilyPlan      `yaml:"family,omitempty" json:"family,omitempty"`
}

// PayoffPlan configures the debt strategy comparison
type PayoffPlan struct {
	Strategy     string          `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	ExtraMonthly decimal.Decimal `yaml:"extra_monthly,omitempty" json:"extra_monthly,omitempty"`
	CustomOrder  []string        `yaml:"custom_order,omitempty" json:"custom_order,omitempty"`
}

// Available returns the configured monthly amount to allocate, or the
// profile's disposable income when none is set.
func (c Configuration) Available() decimal.Decimal {
	if c.AvailableMonthly != nil {
		return *c.AvailableMonthly
	}
	return c.Profile.DisposableIncome()
}

// EngineSettings bundles the overridable lookup data, loaded from TOML
type EngineSettings struct {
	Assumptions Assumptions     `toml:"assumptions" json:"assumptions"`
	Strategies  StrategyConfigs `toml:"strategies" json:"strategies"`
	ChildCosts  ChildCostTable  `toml:"child_costs" json:"child_costs"`
}

// DefaultEngineSettings returns fresh copies of every built-in table
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Assumptions: DefaultAssumptions(),
		Strategies:  DefaultStrategyConfigs(),
		ChildCosts:  DefaultChildCostTable(),
	}
}

// Validate checks every table
func (s EngineSettings) Validate() error {
	if err := s.Assumptions.Validate(); err != nil {
		return err
	}
	if _, ok := s.Strategies[DefaultStrategy]; !ok {
		return &InvalidInputError{Field: "strategies", Value: DefaultStrategy, Reason: "the default strategy must be configured"}
	}
	for _, name := range s.Strategies.Names() {
		if err := s.Strategies[name].Validate(); err != nil {
			return err
		}
	}
	return s.ChildCosts.Validate()
}
