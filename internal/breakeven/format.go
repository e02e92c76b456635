package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solver result
func (tf *TableFormatter) Format(result *ExtraPaymentResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN EXTRA PAYMENT\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	sb.WriteString(fmt.Sprintf("Strategy:     %s\n", result.Timeline.Strategy))
	sb.WriteString(fmt.Sprintf("Target:       %s\n", tf.describeTarget(result.Request)))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED PAYMENT\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Extra per month:   $%s\n", tf.formatCurrency(result.ExtraMonthly)))
	sb.WriteString(fmt.Sprintf("Months to payoff:  %d\n", result.Timeline.TotalMonths))
	sb.WriteString(fmt.Sprintf("Debt-free:         %s\n", result.Timeline.PayoffDate))
	sb.WriteString(fmt.Sprintf("Total interest:    $%s\n", tf.formatCurrency(result.Timeline.TotalInterest)))
	sb.WriteString("\n")

	if result.Baseline != nil {
		sb.WriteString("COMPARISON TO NO EXTRA PAYMENT\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("Baseline months:   %d\n", result.Baseline.TotalMonths))
		sb.WriteString(fmt.Sprintf("Months saved:      %d\n", result.MonthsSaved))
		sb.WriteString(fmt.Sprintf("Interest saved:    %s$%s\n",
			tf.deltaSymbol(result.InterestSaved), tf.formatCurrency(result.InterestSaved.Abs())))
		sb.WriteString("\n")
	} else {
		sb.WriteString("Minimum payments alone never retire this debt set.\n\n")
	}

	if len(result.Timeline.Debts) > 0 {
		sb.WriteString("PAYOFF ORDER\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("%-28s %8s %14s\n", "Debt", "Month", "Interest"))
		for _, id := range result.Timeline.PayoffOrder {
			for _, d := range result.Timeline.Debts {
				if d.DebtID != id {
					continue
				}
				name := d.Name
				if name == "" {
					name = d.DebtID
				}
				sb.WriteString(fmt.Sprintf("%-28s %8d %14s\n",
					tf.truncate(name, 28), d.PayoffMonth, "$"+tf.formatCurrency(d.InterestPaid)))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatAcrossStrategies formats a per-strategy comparison
func (tf *TableFormatter) FormatAcrossStrategies(result *StrategySolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN BY STRATEGY\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %14s %8s %14s %12s\n", "Strategy", "Extra/Month", "Months", "Interest", "Status"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range result.Results {
		sb.WriteString(fmt.Sprintf("%-14s %14s %8d %14s %12s\n",
			tf.truncate(r.Timeline.Strategy, 14),
			"$"+tf.formatCurrency(r.ExtraMonthly),
			r.Timeline.TotalMonths,
			"$"+tf.formatCurrency(r.Timeline.TotalInterest),
			tf.shortStatus(r.Success)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *ExtraPaymentResult) (string, error) {
	return jf.marshal(result)
}

// FormatAcrossStrategies formats a per-strategy comparison as JSON
func (jf *JSONFormatter) FormatAcrossStrategies(result *StrategySolveResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) describeTarget(req ExtraPaymentRequest) string {
	if req.Target == TargetTotalInterest {
		return fmt.Sprintf("total interest at most $%s", tf.formatCurrency(req.MaxInterest))
	}
	return fmt.Sprintf("debt-free within %d months", req.TargetMonths)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) shortStatus(success bool) string {
	if success {
		return "converged"
	}
	return "partial"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
