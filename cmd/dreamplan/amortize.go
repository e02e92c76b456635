package main

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/calculation"
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/rgehrsitz/dreamplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize [input-file]",
	Short: "Show the month-by-month schedule of a single debt",
	Long: `Walk one debt month by month at its payment plus an optional extra amount.

Examples:
  # A debt from a household file
  dreamplan amortize household.yaml --debt car

  # A loan described on the command line
  dreamplan amortize --balance 10000 --payment 200 --rate 6 --term 36`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmortize,
}

var (
	amortDebtID  string
	amortBalance string
	amortPayment string
	amortRate    string
	amortExtra   string
	amortTerm    int
	amortRows    int
)

func init() {
	amortizeCmd.Flags().StringVar(&amortDebtID, "debt", "", "Id or name of the debt in the input file")
	amortizeCmd.Flags().StringVar(&amortBalance, "balance", "", "Loan balance when no input file is given")
	amortizeCmd.Flags().StringVar(&amortPayment, "payment", "", "Monthly payment when no input file is given")
	amortizeCmd.Flags().StringVar(&amortRate, "rate", "0", "Annual interest rate in percent when no input file is given")
	amortizeCmd.Flags().StringVar(&amortExtra, "extra", "", "Extra monthly payment")
	amortizeCmd.Flags().IntVar(&amortTerm, "term", 0, "Also report the level payment that retires the balance in this many months")
	amortizeCmd.Flags().IntVar(&amortRows, "rows", 0, "Show only the first N months (0 shows all)")

	rootCmd.AddCommand(amortizeCmd)
}

func runAmortize(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	debt, household, err := amortizationDebt(args)
	if err != nil {
		return err
	}

	payment := debt.MonthlyPayment
	extra, err := parseAmount("extra", amortExtra)
	if err != nil {
		return err
	}
	if extra != nil {
		payment = payment.Add(*extra)
	}

	schedule, err := calculation.SimulateAmortization(debt.Balance, payment, debt.InterestRate, engine.Assumptions.MaxPayoffMonths)
	if err != nil {
		return fmt.Errorf("amortize %s: %w", debt.Name, err)
	}

	report := &output.Report{
		Title:       "AMORTIZATION: " + debt.Name,
		Household:   household,
		GeneratedAt: engine.Now(),
		Notes: []string{fmt.Sprintf("Debt-free in %s with $%s/month",
			calculation.PayoffDate(engine.Now(), schedule.Months).Format("January 2006"), payment.StringFixed(2))},
	}

	if amortTerm > 0 {
		standard, err := calculation.StandardPayment(debt.Balance, debt.InterestRate, amortTerm)
		if err != nil {
			return err
		}
		report.Notes = append(report.Notes, fmt.Sprintf("Paying $%s/month retires it in %d months", standard.StringFixed(2), amortTerm))
	}

	if amortRows > 0 && amortRows < len(schedule.Rows) {
		report.Notes = append(report.Notes, fmt.Sprintf("Showing %d of %d months", amortRows, len(schedule.Rows)))
		schedule.Rows = schedule.Rows[:amortRows]
	}
	report.Schedule = &schedule

	return emit(cmd, report)
}

// amortizationDebt picks the debt from the input file or builds one from flags
func amortizationDebt(args []string) (domain.Debt, string, error) {
	if len(args) == 1 {
		cfg, err := loadConfiguration(args[0])
		if err != nil {
			return domain.Debt{}, "", err
		}
		if amortDebtID == "" && len(cfg.Profile.Debts) == 1 {
			return cfg.Profile.Debts[0], cfg.Profile.User.Name, nil
		}
		for _, d := range cfg.Profile.Debts {
			if d.ID == amortDebtID || d.Name == amortDebtID {
				return d, cfg.Profile.User.Name, nil
			}
		}
		return domain.Debt{}, "", fmt.Errorf("debt %q not found in %s (use --debt with an id or name)", amortDebtID, args[0])
	}

	balance, err := parseAmount("balance", amortBalance)
	if err != nil {
		return domain.Debt{}, "", err
	}
	payment, err := parseAmount("payment", amortPayment)
	if err != nil {
		return domain.Debt{}, "", err
	}
	rate, err := parseAmount("rate", amortRate)
	if err != nil {
		return domain.Debt{}, "", err
	}
	if balance == nil || payment == nil {
		return domain.Debt{}, "", fmt.Errorf("either an input file or --balance and --payment are required")
	}
	annualRate := decimal.Zero
	if rate != nil {
		annualRate = *rate
	}
	return domain.NewDebt("loan", domain.DebtOther, *balance, *payment, annualRate), "", nil
}
