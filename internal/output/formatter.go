package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Report carries whatever one command produced. Formatters render the
// sections that are set and skip the rest.
type Report struct {
	Title         string                       `json:"title"`
	Household     string                       `json:"household,omitempty"`
	GeneratedAt   time.Time                    `json:"generatedAt"`
	Allocation    *domain.AllocationResult     `json:"allocation,omitempty"`
	Health        *domain.HealthScore          `json:"health,omitempty"`
	Debts         *domain.DebtComparison       `json:"debts,omitempty"`
	DebtTimelines []domain.DebtTimeline        `json:"debtTimelines,omitempty"`
	Schedule      *domain.AmortizationSchedule `json:"schedule,omitempty"`
	Family        *domain.FamilyAnalysis       `json:"family,omitempty"`
	Notes         []string                     `json:"notes,omitempty"`
}

// Formatter renders a report into bytes.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"json-compact": JSONFormatter{},
	"csv":          CSVFormatter{},
}

var aliases = map[string]string{
	"table":   "console",
	"text":    "console",
	"verbose": "console",
}

// GetFormatterByName resolves a formatter or alias name, nil when unknown.
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders report and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := fmt.Sprintf("dreamplan_report_%s.%s", stamp.Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(1) + "%"
}
