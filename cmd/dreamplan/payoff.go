package main

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/compare"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/output"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var payoffCmd = &cobra.Command{
	Use:   "payoff [input-file]",
	Short: "Compare debt payoff strategies against paying only the minimums",
	Long: `Simulate paying off every debt under each payoff strategy, with an optional extra monthly amount.

Examples:
  dreamplan payoff household.yaml --extra 200
  dreamplan payoff household.yaml --strategies avalanche,snowball,cash_flow`,
	Args: cobra.ExactArgs(1),
	RunE: runPayoff,
}

var (
	payoffExtra      string
	payoffStrategies []string
)

func init() {
	payoffCmd.Flags().StringVar(&payoffExtra, "extra", "", "Extra monthly payment on top of the minimums; default from file")
	payoffCmd.Flags().StringSliceVar(&payoffStrategies, "strategies", nil, "Payoff strategies to compare (avalanche, snowball, cash_flow, custom)")

	rootCmd.AddCommand(payoffCmd)
}

func runPayoff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}
	if len(cfg.Profile.Debts) == 0 {
		return fmt.Errorf("%s has no debts to pay off", args[0])
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	extra := cfg.Payoff.ExtraMonthly
	override, err := parseAmount("extra", payoffExtra)
	if err != nil {
		return err
	}
	if override != nil {
		extra = *override
	}

	strategies := payoffStrategies
	if len(strategies) == 0 {
		strategies = defaultPayoffStrategies(cfg.Payoff.Strategy)
	}

	comparison, err := compareDebts(cmd, engine, cfg, extra, strategies)
	if err != nil {
		return err
	}

	timelines := make([]domain.DebtTimeline, 0, len(cfg.Profile.Debts))
	for _, d := range cfg.Profile.Debts {
		t, err := engine.DebtTimeline(d)
		if err != nil {
			return fmt.Errorf("debt %s: %w", d.Name, err)
		}
		timelines = append(timelines, t)
	}

	return emit(cmd, &output.Report{
		Title:         "DEBT PAYOFF PLAN",
		Household:     cfg.Profile.User.Name,
		GeneratedAt:   engine.Now(),
		Debts:         &comparison,
		DebtTimelines: timelines,
	})
}

// defaultPayoffStrategies is avalanche and snowball plus the file's own choice
func defaultPayoffStrategies(configured string) []string {
	out := []string{sequencing.Avalanche, sequencing.Snowball}
	if configured != "" && configured != sequencing.Avalanche && configured != sequencing.Snowball {
		out = append(out, configured)
	}
	return out
}

// compareDebts runs the named strategies concurrently. A custom ordering
// needs the file's sequence, so it is simulated separately.
func compareDebts(cmd *cobra.Command, engine *calculation.Engine, cfg *domain.Configuration, extra decimal.Decimal, strategies []string) (domain.DebtComparison, error) {
	named := make([]string, 0, len(strategies))
	custom := false
	for _, s := range strategies {
		if s == sequencing.Custom {
			custom = true
			continue
		}
		named = append(named, s)
	}
	if len(named) == 0 {
		named = []string{sequencing.Avalanche}
	}

	debts := cfg.Profile.Debts
	comparison, err := compare.NewCompareEngine(engine).CompareDebts(cmd.Context(), debts, extra, named...)
	if err != nil {
		return comparison, err
	}

	if custom {
		t, err := engine.SimulatePayoff(debts, sequencing.NewCustomOrdering(cfg.Payoff.CustomOrder), extra)
		if err != nil {
			return comparison, fmt.Errorf("custom payoff: %w", err)
		}
		comparison.Strategies = append(comparison.Strategies, t)
		if best, ok := comparison.Best(); ok {
			comparison.Recommended = best.Strategy
		}
	}
	return comparison, nil
}
