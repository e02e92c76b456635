package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3AA99F"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#879A39"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D14D41"))
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString(headingStyle.Render("WHAT-IF SCENARIO COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	sb.WriteString(fmt.Sprintf("Strategy:      %s\n", compSet.Strategy))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 11

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Disposable",
		numWidth, "Foundation",
		numWidth, "Dream",
		numWidth, "Life",
		numWidth, "Health"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\n" + headingStyle.Render("COMPARISON TO BASE") + "\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(" " + alt.Description)
			}
			sb.WriteString("\n")

			sb.WriteString(fmt.Sprintf("  Disposable Income: %s (%s%%)\n",
				tf.formatDelta(alt.DisposableDiff), alt.DisposablePctDiff.StringFixed(1)))
			sb.WriteString(fmt.Sprintf("  Foundation:        %s\n", tf.formatDelta(alt.FoundationDiff)))
			sb.WriteString(fmt.Sprintf("  Dream:             %s\n", tf.formatDelta(alt.DreamDiff)))
			sb.WriteString(fmt.Sprintf("  Life:              %s\n", tf.formatDelta(alt.LifeDiff)))

			if !alt.HealthScoreDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Health Score:      %s%s\n",
					tf.deltaSymbol(alt.HealthScoreDiff), alt.HealthScoreDiff.Abs().StringFixed(1)))
			}
			if alt.DebtFreeMonthsDiff != 0 {
				// Fewer months is better
				sb.WriteString(fmt.Sprintf("  Debt-Free:         %+d months\n", alt.DebtFreeMonthsDiff))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\n" + headingStyle.Render("RECOMMENDATIONS") + "\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatAllocations renders every strategy's split next to the base strategy
func (tf *TableFormatter) FormatAllocations(cmp *AllocationComparison) string {
	var sb strings.Builder

	sb.WriteString(headingStyle.Render("ALLOCATION STRATEGY COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Available: $%s/month   Base: %s\n\n", cmp.Available.StringFixed(2), cmp.BaseStrategy))

	sb.WriteString(fmt.Sprintf("%-14s %18s %18s %18s\n", "Strategy", "Foundation", "Dream", "Life"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, s := range cmp.Strategies {
		r := s.Result
		sb.WriteString(fmt.Sprintf("%-14s %18s %18s %18s\n",
			r.Strategy,
			fmt.Sprintf("$%s (%s%%)", r.Foundation.StringFixed(2), r.Percentages.Foundation.StringFixed(0)),
			fmt.Sprintf("$%s (%s%%)", r.Dream.StringFixed(2), r.Percentages.Dream.StringFixed(0)),
			fmt.Sprintf("$%s (%s%%)", r.Life.StringFixed(2), r.Percentages.Life.StringFixed(0))))
	}
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	if len(cmp.Recommendations) > 0 {
		sb.WriteString("\n" + headingStyle.Render("RECOMMENDATIONS") + "\n")
		for _, rec := range cmp.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	health := result.HealthScore.StringFixed(1) + " " + result.HealthGrade

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.DisposableIncome),
		numWidth, "$"+tf.formatDecimal(result.Allocation.Foundation),
		numWidth, "$"+tf.formatDecimal(result.Allocation.Dream),
		numWidth, "$"+tf.formatDecimal(result.Allocation.Life),
		numWidth, health)
}

// formatDecimal formats a decimal for display, abbreviating thousands
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(2)
}

// formatDelta renders a signed dollar change, coloured by direction
func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	text := tf.deltaSymbol(delta) + "$" + delta.Abs().StringFixed(2)
	switch {
	case delta.IsPositive():
		return positiveStyle.Render(text)
	case delta.IsNegative():
		return negativeStyle.Render(text)
	}
	return text
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

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		dreamChange := "="
		if alt.DreamDiff.IsPositive() {
			dreamChange = fmt.Sprintf("dream +$%s", alt.DreamDiff.StringFixed(2))
		} else if alt.DreamDiff.IsNegative() {
			dreamChange = fmt.Sprintf("dream -$%s", alt.DreamDiff.Abs().StringFixed(2))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, dreamChange))
	}

	return sb.String()
}
