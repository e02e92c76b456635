package main

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/breakeven"
	"github.com/rgehrsitz/dreamplan/internal/sequencing"
	"github.com/spf13/cobra"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [input-file]",
	Short: "Find the smallest extra monthly payment that meets a payoff goal",
	Long: `Search for the smallest extra monthly payment that either clears every debt within --months
or keeps total interest at or below --max-interest.

Examples:
  dreamplan breakeven household.yaml --months 36
  dreamplan breakeven household.yaml --max-interest 2500 --strategies avalanche,snowball`,
	Args: cobra.ExactArgs(1),
	RunE: runBreakeven,
}

var (
	breakevenMonths      int
	breakevenMaxInterest string
	breakevenStrategy    string
	breakevenStrategies  []string
)

func init() {
	breakevenCmd.Flags().IntVar(&breakevenMonths, "months", 0, "Target number of months until debt-free")
	breakevenCmd.Flags().StringVar(&breakevenMaxInterest, "max-interest", "", "Maximum total interest to pay")
	breakevenCmd.Flags().StringVar(&breakevenStrategy, "strategy", "", "Payoff strategy; default from file, else avalanche")
	breakevenCmd.Flags().StringSliceVar(&breakevenStrategies, "strategies", nil, "Solve for each of these strategies and compare")
	breakevenCmd.MarkFlagsMutuallyExclusive("months", "max-interest")
	breakevenCmd.MarkFlagsMutuallyExclusive("strategy", "strategies")

	rootCmd.AddCommand(breakevenCmd)
}

func runBreakeven(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}
	if len(cfg.Profile.Debts) == 0 {
		return fmt.Errorf("%s has no debts to pay off", args[0])
	}

	req := breakeven.ExtraPaymentRequest{Debts: cfg.Profile.Debts}
	maxInterest, err := parseAmount("max-interest", breakevenMaxInterest)
	if err != nil {
		return err
	}
	switch {
	case maxInterest != nil:
		req.Target = breakeven.TargetTotalInterest
		req.MaxInterest = *maxInterest
	case breakevenMonths > 0:
		req.Target = breakeven.TargetPayoffMonths
		req.TargetMonths = breakevenMonths
	default:
		return fmt.Errorf("set a goal with --months or --max-interest")
	}

	req.Strategy = breakevenStrategy
	if req.Strategy == "" {
		req.Strategy = cfg.Payoff.Strategy
	}
	if req.Strategy == "" {
		req.Strategy = sequencing.Avalanche
	}

	format, err := compareFormat()
	if err != nil {
		return err
	}
	if format == "csv" {
		return fmt.Errorf("breakeven supports table and json output")
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	solver := breakeven.NewDefaultSolver(engine)
	out := cmd.OutOrStdout()

	if len(breakevenStrategies) > 0 {
		result, err := solver.SolveAcrossStrategies(cmd.Context(), req, breakevenStrategies...)
		if err != nil {
			return err
		}
		if format == "json" {
			text, err := (&breakeven.JSONFormatter{Pretty: outputFormat == "json"}).FormatAcrossStrategies(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
			return nil
		}
		fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatAcrossStrategies(result))
		return nil
	}

	result, err := solver.SolveExtraPayment(cmd.Context(), req)
	if err != nil {
		return err
	}
	if format == "json" {
		text, err := (&breakeven.JSONFormatter{Pretty: outputFormat == "json"}).Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}
	fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
	return nil
}
