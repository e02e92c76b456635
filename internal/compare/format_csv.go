package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Disposable Income",
		"Foundation",
		"Dream",
		"Life",
		"Health Score",
		"Health Grade",
		"Debt-Free Months",
		"Disposable Diff from Base",
		"Disposable % Change",
		"Foundation Diff",
		"Dream Diff",
		"Life Diff",
		"Health Score Diff",
		"Debt-Free Months Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	debtFree := ""
	if result.DebtFree {
		debtFree = strconv.Itoa(result.DebtFreeMonths)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.DisposableIncome.StringFixed(2),
		result.Allocation.Foundation.StringFixed(2),
		result.Allocation.Dream.StringFixed(2),
		result.Allocation.Life.StringFixed(2),
		result.HealthScore.StringFixed(1),
		result.HealthGrade,
		debtFree,
		result.DisposableDiff.StringFixed(2),
		result.DisposablePctDiff.StringFixed(2),
		result.FoundationDiff.StringFixed(2),
		result.DreamDiff.StringFixed(2),
		result.LifeDiff.StringFixed(2),
		result.HealthScoreDiff.StringFixed(1),
		strconv.Itoa(result.DebtFreeMonthsDiff),
	}
}
