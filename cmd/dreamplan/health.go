package main

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/output"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health [input-file]",
	Short: "Score the household's financial health from 0 to 100",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine()
		if err != nil {
			return err
		}
		score, err := engine.HealthScore(cfg.Profile)
		if err != nil {
			return fmt.Errorf("health score failed: %w", err)
		}
		return emit(cmd, &output.Report{
			Title:       "FINANCIAL HEALTH",
			Household:   cfg.Profile.User.Name,
			GeneratedAt: engine.Now(),
			Health:      &score,
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
