package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/dreamplan/internal/domain"
)

// CSVFormatter writes one block per report section. Every block starts with
// a header row whose first field names the section, and blocks are separated
// by an empty line.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var blocks [][][]string
	if r := report.Allocation; r != nil {
		blocks = append(blocks, allocationRecords(r))
	}
	if h := report.Health; h != nil {
		blocks = append(blocks, [][]string{
			{"health", "score", "grade", "emergency_fund", "debt_to_income", "savings_rate", "net_worth"},
			{"", h.Score.StringFixed(1), h.Grade, h.Components.EmergencyFund.StringFixed(1), h.Components.DebtToIncome.StringFixed(1),
				h.Components.SavingsRate.StringFixed(1), h.Components.NetWorth.StringFixed(1)},
		})
	}
	if d := report.Debts; d != nil {
		blocks = append(blocks, debtRecords(d))
	}
	if len(report.DebtTimelines) > 0 {
		records := [][]string{{"debt", "name", "remaining_months", "payoff_date", "total_interest", "standard_payment"}}
		for _, t := range report.DebtTimelines {
			records = append(records, []string{t.DebtID, t.Name, strconv.Itoa(t.RemainingMonths), t.PayoffDate,
				t.TotalInterest.StringFixed(2), t.StandardPayment.StringFixed(2)})
		}
		blocks = append(blocks, records)
	}
	if s := report.Schedule; s != nil {
		records := [][]string{{"month", "payment", "interest", "principal", "balance"}}
		for _, r := range s.Rows {
			records = append(records, []string{strconv.Itoa(r.Month), r.Payment.StringFixed(2), r.Interest.StringFixed(2),
				r.Principal.StringFixed(2), r.Balance.StringFixed(2)})
		}
		blocks = append(blocks, records)
	}
	if f := report.Family; f != nil {
		blocks = append(blocks, familyRecords(f))
	}

	for i, block := range blocks {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := w.WriteAll(block); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func allocationRecords(r *domain.AllocationResult) [][]string {
	records := [][]string{{"bucket", "amount", "percent"}}
	records = append(records,
		[]string{"foundation", r.Foundation.StringFixed(2), r.Percentages.Foundation.StringFixed(2)},
		[]string{"dream", r.Dream.StringFixed(2), r.Percentages.Dream.StringFixed(2)},
		[]string{"life", r.Life.StringFixed(2), r.Percentages.Life.StringFixed(2)},
		[]string{"total", r.Total.StringFixed(2), ""},
	)
	return records
}

func debtRecords(d *domain.DebtComparison) [][]string {
	records := [][]string{{"strategy", "total_months", "payoff_date", "total_interest", "interest_saved", "months_saved", "recommended"}}
	records = append(records, []string{"minimum_only", strconv.Itoa(d.MinimumOnly.TotalMonths), d.MinimumOnly.PayoffDate,
		d.MinimumOnly.TotalInterest.StringFixed(2), "0.00", "0", "false"})
	for _, t := range d.Strategies {
		records = append(records, []string{t.Strategy, strconv.Itoa(t.TotalMonths), t.PayoffDate, t.TotalInterest.StringFixed(2),
			d.InterestSaved(t).StringFixed(2), strconv.Itoa(d.MonthsSaved(t)), strconv.FormatBool(t.Strategy == d.Recommended)})
	}
	return records
}

func familyRecords(f *domain.FamilyAnalysis) [][]string {
	records := [][]string{{"year", "active_children", "dominant_phase", "child_cost", "debt_payments", "disposable", "foundation", "dream", "life"}}
	for _, p := range f.Projections {
		records = append(records, []string{strconv.Itoa(p.Year), strconv.Itoa(p.ActiveChildren), string(p.DominantPhase),
			p.ChildCost.StringFixed(2), p.DebtPayments.StringFixed(2), p.DisposableIncome.StringFixed(2),
			p.Allocation.Foundation.StringFixed(2), p.Allocation.Dream.StringFixed(2), p.Allocation.Life.StringFixed(2)})
	}
	return records
}
