package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"gopkg.in/yaml.v3"
)

// minChildAge is the earliest planned child accepted in a family section
const minChildAge = -10

// InputParser handles parsing of household input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a household configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration held in memory
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	assignDebtIDs(config.Profile.Debts)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// assignDebtIDs fills in ids the file left blank. Ids are derived from
// position and name so repeated runs agree.
func assignDebtIDs(debts []domain.Debt) {
	for i := range debts {
		if debts[i].ID == "" {
			debts[i].ID = domain.StableDebtID(i, debts[i].Name)
		}
	}
}

// ValidateConfiguration validates the loaded configuration. A debt whose
// payment does not cover its interest is accepted here; the payoff commands
// report it.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Profile.Validate(); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}

	seen := make(map[string]int, len(config.Profile.Debts))
	for i, debt := range config.Profile.Debts {
		if err := ip.validateDebt(debt); err != nil {
			return fmt.Errorf("debt %d (%s) validation failed: %w", i, debt.Name, err)
		}
		if prev, ok := seen[debt.ID]; ok {
			return fmt.Errorf("debt %d (%s) reuses id %s from debt %d", i, debt.Name, debt.ID, prev)
		}
		seen[debt.ID] = i
	}

	if config.AvailableMonthly != nil && config.AvailableMonthly.IsNegative() {
		return fmt.Errorf("available_monthly must not be negative, got %s", config.AvailableMonthly.String())
	}

	if config.Strategy != "" {
		if _, _, ok := domain.DefaultStrategyConfigs().Resolve(config.Strategy); !ok {
			return fmt.Errorf("unknown allocation strategy %q", config.Strategy)
		}
	}

	if err := ip.validatePayoff(config.Payoff, seen); err != nil {
		return fmt.Errorf("payoff validation failed: %w", err)
	}

	if config.Family != nil {
		if err := ip.validateFamily(config.Family); err != nil {
			return fmt.Errorf("family validation failed: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) validateDebt(debt domain.Debt) error {
	err := debt.Validate()
	var insufficient *domain.InsufficientPaymentError
	if errors.As(err, &insufficient) {
		return nil
	}
	return err
}

func (ip *InputParser) validatePayoff(plan domain.PayoffPlan, debtIDs map[string]int) error {
	if plan.ExtraMonthly.IsNegative() {
		return fmt.Errorf("extra_monthly must not be negative, got %s", plan.ExtraMonthly.String())
	}
	if plan.Strategy != "" {
		if _, ok := sequencing.CreateOrdering(plan.Strategy, plan.CustomOrder); !ok {
			return fmt.Errorf("unknown payoff strategy %q (available: %v)", plan.Strategy, sequencing.Names())
		}
	}
	for _, id := range plan.CustomOrder {
		if _, ok := debtIDs[id]; !ok {
			return fmt.Errorf("custom_order references unknown debt id %s", id)
		}
	}
	return nil
}

func (ip *InputParser) validateFamily(plan *domain.FamilyPlan) error {
	if plan.Years < 0 {
		return fmt.Errorf("years must not be negative, got %d", plan.Years)
	}
	for i, child := range plan.Children {
		if child.Age < minChildAge || child.Age > 120 {
			return fmt.Errorf("child %d (%s): age must be between %d and 120, got %d", i, child.Name, minChildAge, child.Age)
		}
		if child.College == nil || child.College.Type == "" {
			continue
		}
		switch child.College.Type {
		case domain.CollegeCommunity, domain.CollegeState, domain.CollegePrivate, domain.CollegeElite:
		default:
			return fmt.Errorf("child %d (%s): unknown college type %q", i, child.Name, child.College.Type)
		}
	}
	return nil
}
