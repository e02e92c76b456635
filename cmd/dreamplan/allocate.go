package main

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/compare"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate [input-file]",
	Short: "Split the monthly surplus into Foundation, Dream and Life",
	Long: `Split the household's available monthly cash between the Foundation, Dream and Life buckets.

Examples:
  # Use the strategy and amount from the file
  dreamplan allocate household.yaml

  # Override the amount and compare every strategy
  dreamplan allocate household.yaml --available 2500 --compare

  # Keep at least $800 in Foundation and push the Dream harder
  dreamplan allocate household.yaml --min-foundation 800 --accelerate-dream`,
	Args: cobra.ExactArgs(1),
	RunE: runAllocate,
}

var (
	allocStrategy            string
	allocAvailable           string
	allocCompare             bool
	allocMinFoundation       string
	allocMaxDream            string
	allocPrioritizeEmergency bool
	allocAccelerateDream     bool
)

func init() {
	allocateCmd.Flags().StringVar(&allocStrategy, "strategy", "", "Allocation strategy (conservative, balanced, aggressive); default from file, else balanced")
	allocateCmd.Flags().StringVar(&allocAvailable, "available", "", "Monthly amount to allocate; default from file, else disposable income")
	allocateCmd.Flags().BoolVar(&allocCompare, "compare", false, "Compare every configured strategy side by side")
	allocateCmd.Flags().StringVar(&allocMinFoundation, "min-foundation", "", "Minimum monthly Foundation amount")
	allocateCmd.Flags().StringVar(&allocMaxDream, "max-dream", "", "Maximum monthly Dream amount")
	allocateCmd.Flags().BoolVar(&allocPrioritizeEmergency, "prioritize-emergency", false, "Shift Dream money to Life while the emergency fund is short")
	allocateCmd.Flags().BoolVar(&allocAccelerateDream, "accelerate-dream", false, "Shift Life money to the Dream")

	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	available := cfg.Available()
	override, err := parseAmount("available", allocAvailable)
	if err != nil {
		return err
	}
	if override != nil {
		available = *override
	}

	if allocCompare {
		return runAllocationComparison(cmd, engine, cfg, available)
	}

	strategy := cfg.Strategy
	if allocStrategy != "" {
		strategy = domain.StrategyName(allocStrategy)
	}
	if strategy == "" {
		strategy = domain.DefaultStrategy
	}

	constraints := calculation.AllocationConstraints{}
	if constraints.MinFoundation, err = parseAmount("min-foundation", allocMinFoundation); err != nil {
		return err
	}
	if constraints.MaxDream, err = parseAmount("max-dream", allocMaxDream); err != nil {
		return err
	}
	goals := calculation.AllocationGoals{
		PrioritizeEmergencyFund: allocPrioritizeEmergency,
		AccelerateDream:         allocAccelerateDream,
	}

	result, err := engine.Optimize(available, cfg.Profile, strategy, constraints, goals)
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}
	health, err := engine.HealthScore(cfg.Profile)
	if err != nil {
		return fmt.Errorf("health score failed: %w", err)
	}

	return emit(cmd, &output.Report{
		Title:       "MONTHLY ALLOCATION",
		Household:   cfg.Profile.User.Name,
		GeneratedAt: engine.Now(),
		Allocation:  &result,
		Health:      &health,
	})
}

func runAllocationComparison(cmd *cobra.Command, engine *calculation.Engine, cfg *domain.Configuration, available decimal.Decimal) error {
	format, err := compareFormat()
	if err != nil {
		return err
	}
	cmp, err := compare.NewCompareEngine(engine).CompareAllocations(cmd.Context(), available, cfg.Profile)
	if err != nil {
		return err
	}

	var text string
	switch format {
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: outputFormat == "json"}).FormatAllocations(cmp)
	case "csv":
		return fmt.Errorf("csv output is not available for strategy comparisons; use json or table")
	default:
		text = (&compare.TableFormatter{}).FormatAllocations(cmp)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
