package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a report as styled terminal text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	title := report.Title
	if title == "" {
		title = "DREAMPLAN REPORT"
	}
	b.WriteString(RenderTitle(title) + "\n")
	if report.Household != "" {
		b.WriteString(RenderKeyValue("Household", report.Household) + "\n")
	}
	if !report.GeneratedAt.IsZero() {
		b.WriteString(RenderKeyValue("As of", report.GeneratedAt.Format("2006-01-02")) + "\n")
	}
	b.WriteString("\n")

	if report.Allocation != nil {
		writeAllocation(&b, report.Allocation)
	}
	if report.Health != nil {
		writeHealth(&b, report.Health)
	}
	if report.Debts != nil {
		writeDebtComparison(&b, report.Debts)
	}
	if len(report.DebtTimelines) > 0 {
		writeDebtTimelines(&b, report.DebtTimelines)
	}
	if report.Schedule != nil {
		writeSchedule(&b, report.Schedule)
	}
	if report.Family != nil {
		writeFamily(&b, report.Family)
	}
	if len(report.Notes) > 0 {
		b.WriteString(RenderSection("NOTES") + "\n")
		for _, note := range report.Notes {
			b.WriteString("  • " + note + "\n")
		}
	}

	return []byte(b.String()), nil
}

func writeAllocation(b *strings.Builder, r *domain.AllocationResult) {
	b.WriteString(RenderSection(fmt.Sprintf("MONTHLY ALLOCATION (%s)", strings.ToUpper(string(r.Strategy)))) + "\n")
	b.WriteString(RenderKeyValue("Available", FormatCurrency(r.Available)) + "\n")

	if r.NoFunds {
		b.WriteString("  " + badStyle.Render("Nothing to allocate this month") + "\n\n")
		writeWarnings(b, r.Warnings)
		return
	}

	rows := [][]string{
		{"Foundation", FormatCurrency(r.Foundation), FormatPercentage(r.Percentages.Foundation), RenderBar(r.Percentages.Foundation.InexactFloat64(), 20)},
		{"Dream", FormatCurrency(r.Dream), FormatPercentage(r.Percentages.Dream), RenderBar(r.Percentages.Dream.InexactFloat64(), 20)},
		{"Life", FormatCurrency(r.Life), FormatPercentage(r.Percentages.Life), RenderBar(r.Percentages.Life.InexactFloat64(), 20)},
		{"---"},
		{"Total", FormatCurrency(r.Total), "", ""},
	}
	b.WriteString(RenderTable(Table{Headers: []string{"Bucket", "Monthly", "Share", ""}, Rows: rows}))

	b.WriteString(RenderKeyValue("Minimum foundation", FormatCurrency(r.MinimumFoundation)) + "\n")
	if r.DreamRequired.IsPositive() {
		b.WriteString(RenderKeyValue("Dream required", FormatCurrency(r.DreamRequired)) + "\n")
	}
	b.WriteString(RenderKeyValue("Emergency fund target", FormatCurrency(r.EmergencyTarget)) + "\n\n")
	writeWarnings(b, r.Warnings)
}

func writeWarnings(b *strings.Builder, warnings []domain.Warning) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString(RenderSection("WARNINGS") + "\n")
	for _, w := range warnings {
		b.WriteString("  " + severityMark(w.Severity) + " " + w.Message + "\n")
	}
	b.WriteString("\n")
}

func severityMark(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return badStyle.Render("✗")
	case domain.SeverityWarning:
		return warnStyle.Render("⚠")
	}
	return mutedStyle.Render("ℹ")
}

func writeHealth(b *strings.Builder, h *domain.HealthScore) {
	b.WriteString(RenderSection("FINANCIAL HEALTH") + "\n")
	b.WriteString(RenderKeyValue("Score", fmt.Sprintf("%s / 100 (%s)", h.Score.StringFixed(1), gradeStyle(h.Grade))) + "\n")

	c := h.Components
	b.WriteString(RenderTable(Table{
		Headers: []string{"Component", "Points"},
		Rows: [][]string{
			{"Emergency fund", c.EmergencyFund.StringFixed(1)},
			{"Debt to income", c.DebtToIncome.StringFixed(1)},
			{"Savings rate", c.SavingsRate.StringFixed(1)},
			{"Net worth", c.NetWorth.StringFixed(1)},
		},
	}))
	if len(h.Recommendations) > 0 {
		for _, rec := range h.Recommendations {
			b.WriteString("  " + severityMark(rec.Severity) + " " + rec.Message + "\n")
		}
	}
	b.WriteString("\n")
}

func gradeStyle(grade string) string {
	switch {
	case strings.HasPrefix(grade, "A"), strings.HasPrefix(grade, "B"):
		return goodStyle.Render(grade)
	case strings.HasPrefix(grade, "C"):
		return warnStyle.Render(grade)
	}
	return badStyle.Render(grade)
}

func writeDebtComparison(b *strings.Builder, c *domain.DebtComparison) {
	b.WriteString(RenderSection("DEBT PAYOFF STRATEGIES") + "\n")
	b.WriteString(RenderKeyValue("Extra per month", FormatCurrency(c.ExtraMonthly)) + "\n")

	rows := [][]string{timelineRow("minimum only", c.MinimumOnly, "", ""), {"---"}}
	for _, t := range c.Strategies {
		name := t.Strategy
		if name == c.Recommended {
			name += " ★"
		}
		rows = append(rows, timelineRow(name, t, FormatCurrency(c.InterestSaved(t)), strconv.Itoa(c.MonthsSaved(t))))
	}
	b.WriteString(RenderTable(Table{
		Headers: []string{"Strategy", "Months", "Debt-free", "Interest", "Interest saved", "Months saved"},
		Rows:    rows,
	}))

	if best, ok := c.Best(); ok {
		b.WriteString(RenderKeyValue("Recommended", goodStyle.Render(best.Strategy)) + "\n")
		if len(best.PayoffOrder) > 0 {
			b.WriteString(RenderKeyValue("Payoff order", strings.Join(best.PayoffOrder, " → ")) + "\n")
		}
		writeWarnings(b, best.Warnings)
	}
	b.WriteString("\n")
}

func timelineRow(name string, t domain.PayoffTimeline, saved, months string) []string {
	return []string{name, strconv.Itoa(t.TotalMonths), t.PayoffDate, FormatCurrency(t.TotalInterest), saved, months}
}

func writeDebtTimelines(b *strings.Builder, timelines []domain.DebtTimeline) {
	rows := make([][]string, 0, len(timelines))
	for _, t := range timelines {
		rows = append(rows, []string{
			t.Name,
			strconv.Itoa(t.RemainingMonths),
			t.PayoffDate,
			FormatCurrency(t.TotalInterest),
			FormatCurrency(t.StandardPayment),
		})
	}
	b.WriteString(RenderTable(Table{
		Title:   "DEBT TIMELINES AT CURRENT PAYMENTS",
		Headers: []string{"Debt", "Months", "Paid off", "Interest", "Std payment"},
		Rows:    rows,
	}))
	b.WriteString("\n")
}

func writeSchedule(b *strings.Builder, s *domain.AmortizationSchedule) {
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{
			strconv.Itoa(r.Month),
			FormatCurrency(r.Payment),
			FormatCurrency(r.Interest),
			FormatCurrency(r.Principal),
			FormatCurrency(r.Balance),
		})
	}
	b.WriteString(RenderTable(Table{
		Title:   "AMORTIZATION SCHEDULE",
		Headers: []string{"Month", "Payment", "Interest", "Principal", "Balance"},
		Rows:    rows,
	}))
	b.WriteString(RenderKeyValue("Months", strconv.Itoa(s.Months)) + "\n")
	b.WriteString(RenderKeyValue("Total interest", FormatCurrency(s.TotalInterest)) + "\n")
	b.WriteString(RenderKeyValue("Total paid", FormatCurrency(s.TotalPaid)) + "\n\n")
}

func writeFamily(b *strings.Builder, f *domain.FamilyAnalysis) {
	rows := make([][]string, 0, len(f.Projections))
	for _, p := range f.Projections {
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(p.ActiveChildren),
			string(p.DominantPhase),
			FormatCurrency(p.ChildCost),
			FormatCurrency(p.DisposableIncome),
			FormatCurrency(p.Allocation.Foundation),
			FormatCurrency(p.Allocation.Dream),
			FormatCurrency(p.Allocation.Life),
		})
	}
	b.WriteString(RenderTable(Table{
		Title:   "FAMILY COST PROJECTION",
		Headers: []string{"Year", "Kids", "Phase", "Child cost", "Disposable", "Foundation", "Dream", "Life"},
		Rows:    rows,
	}))

	if len(f.Transitions) > 0 {
		b.WriteString(RenderSection("PHASE TRANSITIONS") + "\n")
		for _, t := range f.Transitions {
			line := fmt.Sprintf("  Year %d: %s → %s, child costs %s/month", t.Year, t.FromPhase, t.ToPhase, formatSigned(t.CostChange))
			if t.IsOpportunity {
				line += "  " + goodStyle.Render("dream acceleration opportunity")
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(f.Milestones) > 0 {
		b.WriteString(RenderSection("MILESTONES") + "\n")
		for _, m := range f.Milestones {
			b.WriteString(fmt.Sprintf("  Year %d: child %d %s\n", m.Year, m.ChildIndex+1, strings.ReplaceAll(string(m.Kind), "_", " ")))
		}
		b.WriteString("\n")
	}

	if len(f.CollegeSavings) > 0 {
		rows := make([][]string, 0, len(f.CollegeSavings))
		for _, s := range f.CollegeSavings {
			rows = append(rows, []string{
				fmt.Sprintf("child %d", s.ChildIndex+1),
				string(s.CollegeType),
				strconv.Itoa(s.YearsUntil),
				FormatCurrency(s.TotalCost),
				FormatCurrency(s.MonthlyNeeded),
				FormatCurrency(s.Recommended),
			})
		}
		b.WriteString(RenderTable(Table{
			Title:   "COLLEGE SAVINGS",
			Headers: []string{"Child", "Type", "Years", "Total cost", "Needed/mo", "Recommended/mo"},
			Rows:    rows,
		}))
	}

	r := f.Recovery
	b.WriteString(RenderSection("DREAM RECOVERY") + "\n")
	b.WriteString(RenderKeyValue("Child-free dream", FormatCurrency(r.Baseline)) + "\n")
	b.WriteString(RenderKeyValue("Lowest dream", FormatCurrency(r.LowestDream)) + "\n")
	b.WriteString(RenderKeyValue("Partial recovery", yearOrNever(r.PartialYear)) + "\n")
	b.WriteString(RenderKeyValue("Full recovery", yearOrNever(r.FullYear)) + "\n\n")
}

func yearOrNever(year *int) string {
	if year == nil {
		return mutedStyle.Render("not within the projection")
	}
	return "year " + strconv.Itoa(*year)
}

// formatSigned renders a change with an explicit sign
func formatSigned(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatCurrency(d)
	}
	return FormatCurrency(d)
}
