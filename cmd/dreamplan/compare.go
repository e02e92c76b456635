package main

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/compare"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the household against what-if scenarios",
	Long: `Compare the current household against scenario templates or ad hoc transforms.

Examples:
  # List the templates that apply to this household
  dreamplan compare household.yaml --list-templates

  # Compare a raise and paying off every debt
  dreamplan compare household.yaml --with raise_5pct,debt_free

  # Build a scenario from transforms
  dreamplan compare household.yaml --what-if adjust_income:percent=-10 --what-if set_fixed_expense:category=childcare,amount=0`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

var (
	compareBase          string
	compareWith          string
	compareWhatIf        []string
	compareWhatIfName    string
	compareStrategy      string
	compareAvailable     string
	compareListTemplates bool
)

func init() {
	compareCmd.Flags().StringVar(&compareBase, "base", compare.DefaultBaseScenarioName, "Label for the unmodified household")
	compareCmd.Flags().StringVar(&compareWith, "with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArrayVar(&compareWhatIf, "what-if", nil, "Transform spec name:key=value,... (repeatable)")
	compareCmd.Flags().StringVar(&compareWhatIfName, "name", "what_if", "Scenario name for --what-if transforms")
	compareCmd.Flags().StringVar(&compareStrategy, "strategy", "", "Allocation strategy for every scenario; default from file")
	compareCmd.Flags().StringVar(&compareAvailable, "available", "", "Fixed monthly amount for every scenario; default is each scenario's disposable income")
	compareCmd.Flags().BoolVar(&compareListTemplates, "list-templates", false, "List the templates that apply to the household")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	if compareListTemplates {
		fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(cfg.Profile)))
		fmt.Fprintf(cmd.OutOrStdout(), "\nTransforms for --what-if: %v\n", transform.NewTransformRegistry().List())
		return nil
	}

	templates := transform.ParseTemplateList(compareWith)
	if len(templates) == 0 && len(compareWhatIf) == 0 {
		return fmt.Errorf("nothing to compare: pass --with templates or --what-if transforms (see --list-templates)")
	}

	format, err := compareFormat()
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	strategy := cfg.Strategy
	if compareStrategy != "" {
		strategy = domain.StrategyName(compareStrategy)
	}
	if strategy == "" {
		strategy = domain.DefaultStrategy
	}
	available, err := parseAmount("available", compareAvailable)
	if err != nil {
		return err
	}
	if available == nil {
		available = cfg.AvailableMonthly
	}

	options := compare.CompareOptions{
		BaseScenarioName: compareBase,
		Templates:        templates,
		Strategy:         strategy,
		Available:        available,
		ConfigPath:       args[0],
	}
	ce := compare.NewCompareEngine(engine)

	var compSet *compare.ComparisonSet
	if len(compareWhatIf) > 0 {
		transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(compareWhatIf)
		if err != nil {
			return err
		}
		compSet, err = ce.CompareTransforms(cmd.Context(), cfg.Profile, compareWhatIfName, transforms, options)
		if err != nil {
			return err
		}
		if len(templates) > 0 {
			templated, err := ce.Compare(cmd.Context(), cfg.Profile, options)
			if err != nil {
				return err
			}
			compSet.AlternativeResults = append(compSet.AlternativeResults, templated.AlternativeResults...)
			compSet.Recommendations = compare.GenerateRecommendations(compSet)
		}
	} else {
		compSet, err = ce.Compare(cmd.Context(), cfg.Profile, options)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		text, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
	case "json":
		text, err := (&compare.JSONFormatter{Pretty: outputFormat == "json"}).Format(compSet)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
	default:
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
	}
	return nil
}
