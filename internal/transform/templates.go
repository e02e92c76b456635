package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates builds the common household what-ifs for a profile.
// Templates that make no sense for the profile (no debts, no dream) are left out.
func CreateBuiltInTemplates(profile domain.FinancialProfile) *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, pct := range []int64{5, 10} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%dpct", pct),
			Description: fmt.Sprintf("Income rises %d%%", pct),
			Transforms:  []ProfileTransform{&AdjustIncome{Percent: decimal.NewFromInt(pct)}},
		})
	}
	registry.Register(Template{
		Name:        "pay_cut_10pct",
		Description: "Income falls 10%",
		Transforms:  []ProfileTransform{&AdjustIncome{Percent: decimal.NewFromInt(-10)}},
	})

	for _, pct := range []int64{10, 20} {
		registry.Register(Template{
			Name:        fmt.Sprintf("trim_spending_%dpct", pct),
			Description: fmt.Sprintf("Variable spending cut %d%%", pct),
			Transforms:  []ProfileTransform{&ScaleVariableExpenses{Percent: decimal.NewFromInt(-pct)}},
		})
	}

	if profile.Fixed.Childcare.IsPositive() {
		registry.Register(Template{
			Name:        "no_childcare",
			Description: "Childcare costs end",
			Transforms:  []ProfileTransform{&SetFixedExpense{Category: "childcare", Amount: decimal.Zero}},
		})
	}

	if len(profile.Debts) > 0 {
		payoffs := make([]ProfileTransform, 0, len(profile.Debts))
		for _, d := range profile.Debts {
			payoffs = append(payoffs, &RemoveDebt{DebtID: d.ID})
		}
		registry.Register(Template{
			Name:        "debt_free",
			Description: "Every current debt is paid off",
			Transforms:  payoffs,
		})
	}

	if profile.Dream != nil {
		registry.Register(Template{
			Name:        "dream_later_5yr",
			Description: "North Star pushed back 5 years",
			Transforms:  []ProfileTransform{&SetDreamTargetAge{Age: profile.Dream.TargetAge + 5}},
		})
		if profile.Dream.TargetAge-5 > profile.Dream.CurrentAge {
			registry.Register(Template{
				Name:        "dream_sooner_5yr",
				Description: "North Star brought forward 5 years",
				Transforms:  []ProfileTransform{&SetDreamTargetAge{Age: profile.Dream.TargetAge - 5}},
			})
		}
	}

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base domain.FinancialProfile, template Template) (domain.FinancialProfile, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}
	return sb.String()
}
