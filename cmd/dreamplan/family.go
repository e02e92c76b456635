package main

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/output"
	"github.com/spf13/cobra"
)

var familyCmd = &cobra.Command{
	Use:   "family [input-file]",
	Short: "Project how children's costs change the allocation year by year",
	Long: `Project child costs by age band, the resulting allocation for each year, and when the Dream recovers.

Children come from the file's family section, or from --child-ages. Negative ages are planned children
(-2 means born in two years).

Examples:
  dreamplan family household.yaml
  dreamplan family household.yaml --child-ages 4,1,-2 --years 30`,
	Args: cobra.ExactArgs(1),
	RunE: runFamily,
}

var (
	familyAges  []int
	familyYears int
)

func init() {
	familyCmd.Flags().IntSliceVar(&familyAges, "child-ages", nil, "Children's current ages, overriding the file")
	familyCmd.Flags().IntVar(&familyYears, "years", 0, "Projection horizon in years; default from file, else 25")

	rootCmd.AddCommand(familyCmd)
}

func runFamily(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	plan := domain.FamilyPlan{}
	if cfg.Family != nil {
		plan = *cfg.Family
	}
	ages := plan.Ages()
	plans := plan.CollegePlans()
	if len(familyAges) > 0 {
		ages = familyAges
		plans = domain.CollegePlans{}
	}
	if len(ages) == 0 {
		return fmt.Errorf("no children configured: add a family section to %s or pass --child-ages", args[0])
	}

	years := plan.Years
	if familyYears > 0 {
		years = familyYears
	}
	if years <= 0 {
		years = calculation.DefaultProjectionYears
	}

	analysis, err := engine.AnalyzeFamily(ages, plans, cfg.Profile, years)
	if err != nil {
		return fmt.Errorf("family projection failed: %w", err)
	}

	return emit(cmd, &output.Report{
		Title:       "FAMILY COST PROJECTION",
		Household:   cfg.Profile.User.Name,
		GeneratedAt: engine.Now(),
		Family:      &analysis,
	})
}
