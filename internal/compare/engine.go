package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"github.com/rgehrsitz/dreamplan/internal/transform"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseScenarioName labels the unmodified profile in a comparison
const DefaultBaseScenarioName = "current"

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Engine            *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry // nil uses the built-in templates for each profile
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(engine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(engine),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string              // Label for the unmodified profile
	Templates        []string            // Template names to apply
	Strategy         domain.StrategyName // Allocation strategy for every scenario
	Available        *decimal.Decimal    // Fixed amount to allocate; nil uses each scenario's disposable income
	ConfigPath       string
}

// Compare evaluates the base profile and one what-if scenario per template.
// Scenarios are evaluated concurrently; results keep the template order.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	profile domain.FinancialProfile,
	options CompareOptions,
) (*ComparisonSet, error) {

	// Built-in templates depend on the profile (only applicable ones are registered)
	registry := ce.TemplateRegistry
	if registry == nil {
		registry = transform.CreateBuiltInTemplates(profile)
	}
	if options.BaseScenarioName == "" {
		options.BaseScenarioName = DefaultBaseScenarioName
	}
	if options.Strategy == "" {
		options.Strategy = domain.DefaultStrategy
	}

	// Resolve every template before doing any work
	templates := make([]transform.Template, 0, len(options.Templates))
	for _, name := range options.Templates {
		template, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found (available: %s)", name, strings.Join(registry.List(), ", "))
		}
		templates = append(templates, template)
	}

	baseResult, err := ce.MetricsCalculator.CalculateMetrics(options.BaseScenarioName, profile, options.Available, options.Strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := make([]ComparisonResult, len(templates))
	g, ctx := errgroup.WithContext(ctx)
	for i, template := range templates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			modified, err := transform.ApplyTemplate(profile, template)
			if err != nil {
				return fmt.Errorf("failed to apply template %s: %w", template.Name, err)
			}

			altResult, err := ce.MetricsCalculator.CalculateMetrics(
				options.BaseScenarioName+"_"+template.Name, modified, options.Available, options.Strategy)
			if err != nil {
				return fmt.Errorf("failed to calculate scenario %s: %w", template.Name, err)
			}
			altResult.Description = template.Description
			alternatives[i] = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseScenarioName,
		Strategy:           options.Strategy,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareTransforms compares the base profile with one scenario built from
// explicit transforms, such as those parsed from command-line specs.
func (ce *CompareEngine) CompareTransforms(
	ctx context.Context,
	profile domain.FinancialProfile,
	name string,
	transforms []transform.ProfileTransform,
	options CompareOptions,
) (*ComparisonSet, error) {
	if len(transforms) == 0 {
		return nil, fmt.Errorf("at least one transform is required")
	}
	if name == "" {
		name = "what_if"
	}

	registry := transform.NewTemplateRegistry()
	registry.Register(transform.Template{
		Name:        name,
		Description: transform.Describe(transforms),
		Transforms:  transforms,
	})

	scoped := &CompareEngine{
		Engine:            ce.Engine,
		MetricsCalculator: ce.MetricsCalculator,
		TemplateRegistry:  registry,
	}
	options.Templates = []string{name}
	return scoped.Compare(ctx, profile, options)
}

// StrategyComparison is one allocation strategy measured against the base strategy
type StrategyComparison struct {
	Result         domain.AllocationResult `json:"result"`
	FoundationDiff decimal.Decimal         `json:"foundationDiff"`
	DreamDiff      decimal.Decimal         `json:"dreamDiff"`
	LifeDiff       decimal.Decimal         `json:"lifeDiff"`
}

// AllocationComparison puts every configured strategy side by side
type AllocationComparison struct {
	Available       decimal.Decimal      `json:"available"`
	BaseStrategy    domain.StrategyName  `json:"baseStrategy"`
	Strategies      []StrategyComparison `json:"strategies"`
	Recommendations []string             `json:"recommendations"`
}

// CompareAllocations allocates the amount under every strategy and
// reports each one's difference from the balanced split.
func (ce *CompareEngine) CompareAllocations(ctx context.Context, available decimal.Decimal, profile domain.FinancialProfile) (*AllocationComparison, error) {
	results, err := ce.Engine.CompareStrategies(ctx, available, profile)
	if err != nil {
		return nil, err
	}

	base, ok := results[domain.DefaultStrategy]
	if !ok {
		return nil, fmt.Errorf("base strategy %s is not configured", domain.DefaultStrategy)
	}

	cmp := &AllocationComparison{
		Available:    available,
		BaseStrategy: domain.DefaultStrategy,
	}
	for _, name := range ce.Engine.Strategies.Names() {
		r := results[name]
		cmp.Strategies = append(cmp.Strategies, StrategyComparison{
			Result:         r,
			FoundationDiff: r.Foundation.Sub(base.Foundation),
			DreamDiff:      r.Dream.Sub(base.Dream),
			LifeDiff:       r.Life.Sub(base.Life),
		})
	}
	cmp.Recommendations = allocationRecommendations(cmp, profile)
	return cmp, nil
}

func allocationRecommendations(cmp *AllocationComparison, profile domain.FinancialProfile) []string {
	recs := []string{}
	if len(cmp.Strategies) == 0 || cmp.Strategies[0].Result.NoFunds {
		return recs
	}

	mostDream := cmp.Strategies[0]
	mostFoundation := cmp.Strategies[0]
	for _, s := range cmp.Strategies[1:] {
		if s.Result.Dream.GreaterThan(mostDream.Result.Dream) {
			mostDream = s
		}
		if s.Result.Foundation.GreaterThan(mostFoundation.Result.Foundation) {
			mostFoundation = s
		}
	}

	if profile.Dream != nil && mostDream.Result.Dream.IsPositive() {
		recs = append(recs, fmt.Sprintf("%s funds the dream fastest at $%s/month",
			mostDream.Result.Strategy, mostDream.Result.Dream.StringFixed(2)))
	}
	recs = append(recs, fmt.Sprintf("%s builds the foundation fastest at $%s/month",
		mostFoundation.Result.Strategy, mostFoundation.Result.Foundation.StringFixed(2)))

	for _, s := range cmp.Strategies {
		if s.Result.HasWarning(domain.WarnEmergencyFundLow) {
			recs = append(recs, "Emergency fund is below target; favour a strategy with a larger life bucket until it is rebuilt")
			break
		}
	}
	return recs
}

// CompareDebts runs the minimum-only schedule and each payoff strategy
// concurrently. With no strategies given, avalanche and snowball are used.
func (ce *CompareEngine) CompareDebts(ctx context.Context, debts []domain.Debt, extra decimal.Decimal, strategies ...string) (domain.DebtComparison, error) {
	if len(strategies) == 0 {
		strategies = []string{sequencing.Avalanche, sequencing.Snowball}
	}
	cmp := domain.DebtComparison{ExtraMonthly: extra}
	timelines := make([]domain.PayoffTimeline, len(strategies))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		minimum, err := ce.Engine.MinimumPaymentTimeline(debts)
		if err != nil {
			return fmt.Errorf("minimum payments: %w", err)
		}
		cmp.MinimumOnly = minimum
		return nil
	})
	for i, name := range strategies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := ce.Engine.PayoffTimeline(debts, name, extra)
			if err != nil {
				return fmt.Errorf("%s payoff: %w", name, err)
			}
			timelines[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.DebtComparison{ExtraMonthly: extra}, err
	}

	cmp.Strategies = timelines
	if best, ok := cmp.Best(); ok {
		cmp.Recommended = best.Strategy
	}
	return cmp, nil
}
