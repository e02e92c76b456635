package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/config"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	assumptionsPath string
	outputFormat    string
	debugMode       bool
)

var rootCmd = &cobra.Command{
	Use:   "dreamplan",
	Short: "Personal finance planner for debt payoff and dream funding",
	Long: `dreamplan splits a household's monthly surplus between Foundation, Dream and Life,
compares debt payoff strategies and projects how children change the picture.`,
	SilenceUsage: true,
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dreamplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && debugMode {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newEngine builds an engine from the assumptions file, falling back to the
// built-in tables when no file is configured.
func newEngine() (*calculation.Engine, error) {
	settings, err := config.LoadEngineSettings(assumptionsPath)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewEngineWithSettings(settings)
	if err != nil {
		return nil, err
	}
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine, nil
}

func loadConfiguration(path string) (*domain.Configuration, error) {
	return config.NewInputParser().LoadFromFile(path)
}

// emit renders report with the formatter selected by --format
func emit(cmd *cobra.Command, report *output.Report) error {
	f := output.GetFormatterByName(outputFormat)
	if f == nil {
		return fmt.Errorf("unsupported format %q (available: %s)", outputFormat,
			strings.Join(append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// compareFormat maps --format onto the comparison formatters, which only
// offer table, json and csv.
func compareFormat() (string, error) {
	switch outputFormat {
	case "console", "table", "text", "verbose":
		return "table", nil
	case "json", "json-compact":
		return "json", nil
	case "csv":
		return "csv", nil
	}
	return "", fmt.Errorf("unsupported format %q (available: table, json, csv)", outputFormat)
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a household file and the assumptions in use",
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

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration file %s is valid\n", args[0])
		for _, d := range cfg.Profile.Debts {
			if err := d.Validate(); err != nil {
				fmt.Fprintf(out, "⚠ %s: %v\n", d.Name, err)
			}
		}
		if cfg.Profile.Dream == nil {
			fmt.Fprintln(out, "ℹ no north_star configured; the Dream bucket will use the fallback share")
		}
		fmt.Fprintf(out, "Strategies: %s\n", joinStrategies(engine.Strategies.Names()))
		return nil
	},
}

func joinStrategies(names []domain.StrategyName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&assumptionsPath, "assumptions", "", "Path to an assumptions TOML file (default: $XDG_CONFIG_HOME/dreamplan/assumptions.toml if present)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format (console, json, json-compact, csv)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging of engine decisions")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
