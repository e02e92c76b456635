package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("add_debt", createAddDebt)
	registry.Register("remove_debt", createRemoveDebt)
	registry.Register("update_debt_balance", createUpdateDebtBalance)
	registry.Register("update_debt_payment", createUpdateDebtPayment)
	registry.Register("set_fixed_expense", createSetFixedExpense)
	registry.Register("scale_variable_expenses", createScaleVariableExpenses)
	registry.Register("age_profile", createAgeProfile)
	registry.Register("set_dream_age", createSetDreamTargetAge)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_income:percent=5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ProfileTransform, error) {
	out := make([]ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createAdjustIncome(params map[string]string) (ProfileTransform, error) {
	pct, err := decimalParam("adjust_income", params, "percent")
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Percent: pct}, nil
}

func createAddDebt(params map[string]string) (ProfileTransform, error) {
	name, err := requireParam("add_debt", params, "name")
	if err != nil {
		return nil, err
	}
	balance, err := decimalParam("add_debt", params, "balance")
	if err != nil {
		return nil, err
	}
	payment, err := decimalParam("add_debt", params, "payment")
	if err != nil {
		return nil, err
	}
	rate, err := decimalParam("add_debt", params, "rate")
	if err != nil {
		return nil, err
	}
	debtType := domain.DebtType(params["type"])
	if debtType == "" {
		debtType = domain.DebtOther
	}
	return &AddDebt{Debt: domain.Debt{
		ID:             params["id"],
		Name:           name,
		Type:           debtType,
		Balance:        balance,
		MonthlyPayment: payment,
		InterestRate:   rate,
	}}, nil
}

func createRemoveDebt(params map[string]string) (ProfileTransform, error) {
	id, err := requireParam("remove_debt", params, "id")
	if err != nil {
		return nil, err
	}
	return &RemoveDebt{DebtID: id}, nil
}

func createUpdateDebtBalance(params map[string]string) (ProfileTransform, error) {
	id, err := requireParam("update_debt_balance", params, "id")
	if err != nil {
		return nil, err
	}
	balance, err := decimalParam("update_debt_balance", params, "balance")
	if err != nil {
		return nil, err
	}
	return &UpdateDebtBalance{DebtID: id, Balance: balance}, nil
}

func createUpdateDebtPayment(params map[string]string) (ProfileTransform, error) {
	id, err := requireParam("update_debt_payment", params, "id")
	if err != nil {
		return nil, err
	}
	payment, err := decimalParam("update_debt_payment", params, "payment")
	if err != nil {
		return nil, err
	}
	return &UpdateDebtPayment{DebtID: id, Payment: payment}, nil
}

func createSetFixedExpense(params map[string]string) (ProfileTransform, error) {
	category, err := requireParam("set_fixed_expense", params, "category")
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam("set_fixed_expense", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetFixedExpense{Category: category, Amount: amount}, nil
}

func createScaleVariableExpenses(params map[string]string) (ProfileTransform, error) {
	pct, err := decimalParam("scale_variable_expenses", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleVariableExpenses{Percent: pct}, nil
}

func createAgeProfile(params map[string]string) (ProfileTransform, error) {
	years, err := intParam("age_profile", params, "years")
	if err != nil {
		return nil, err
	}
	return &AgeProfile{Years: years}, nil
}

func createSetDreamTargetAge(params map[string]string) (ProfileTransform, error) {
	age, err := intParam("set_dream_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetDreamTargetAge{Age: age}, nil
}
