package domain

import (
	"github.com/shopspring/decimal"
)

// Severity ranks a warning
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityHigh    Severity = "high"
)

// Warning codes attached to results
const (
	WarnUnknownStrategy       = "unknown_strategy"
	WarnNoFunds               = "no_funds"
	WarnNoNorthStar           = "no_north_star"
	WarnFoundationBelowMin    = "foundation_below_minimum"
	WarnFoundationFloorForced = "foundation_floor_applied"
	WarnDreamUnderfunded      = "dream_underfunded"
	WarnDreamCapped           = "dream_capped"
	WarnEmergencyFundLow      = "emergency_fund_low"
	WarnUnknownOrdering       = "unknown_payoff_strategy"
)

// Warning is a non-fatal condition the caller should surface
type Warning struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// HasWarning reports whether code appears in warnings
func HasWarning(warnings []Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// BucketPercentages are each bucket's share of the available amount, in percent
type BucketPercentages struct {
	Foundation decimal.Decimal `json:"foundation"`
	Dream      decimal.Decimal `json:"dream"`
	Life       decimal.Decimal `json:"life"`
}

// AllocationResult is the split of one month's available cash.
// Foundation+Dream+Life == Total <= Available always holds.
type AllocationResult struct {
	Strategy          StrategyName      `json:"strategy"`
	Available         decimal.Decimal   `json:"available"`
	Foundation        decimal.Decimal   `json:"foundation"`
	Dream             decimal.Decimal   `json:"dream"`
	Life              decimal.Decimal   `json:"life"`
	Total             decimal.Decimal   `json:"total"`
	Percentages       BucketPercentages `json:"percentages"`
	MinimumFoundation decimal.Decimal   `json:"minimum_foundation"`
	DreamRequired     decimal.Decimal   `json:"dream_required"`
	EmergencyTarget   decimal.Decimal   `json:"emergency_fund_target"`
	Warnings          []Warning         `json:"warnings"`
	NoFunds           bool              `json:"no_funds"`
}

// Err returns a NoFundsAvailableError for a no-funds result and nil otherwise
func (r AllocationResult) Err() error {
	if r.NoFunds {
		return &NoFundsAvailableError{Available: r.Available}
	}
	return nil
}

// HasWarning reports whether the result carries the given warning code
func (r AllocationResult) HasWarning(code string) bool {
	return HasWarning(r.Warnings, code)
}

// HealthComponents are the four 25-point sub-scores
type HealthComponents struct {
	EmergencyFund decimal.Decimal `json:"emergency_fund"`
	DebtToIncome  decimal.Decimal `json:"debt_to_income"`
	SavingsRate   decimal.Decimal `json:"savings_rate"`
	NetWorth      decimal.Decimal `json:"net_worth"`
}

// HealthScore is a 0-100 summary of a profile's financial position
type HealthScore struct {
	Score           decimal.Decimal  `json:"score"`
	Grade           string           `json:"grade"`
	Components      HealthComponents `json:"components"`
	Recommendations []Warning        `json:"recommendations"`
}
