package breakeven

import (
	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget defines what the extra payment has to achieve
type SolveTarget string

const (
	TargetPayoffMonths  SolveTarget = "payoff_months"  // debt-free within TargetMonths
	TargetTotalInterest SolveTarget = "total_interest" // total interest at or below MaxInterest
)

// ExtraPaymentRequest defines the parameters for a solver run
type ExtraPaymentRequest struct {
	Debts        []domain.Debt   `json:"debts"`
	Strategy     string          `json:"strategy"`
	Target       SolveTarget     `json:"target"`
	TargetMonths int             `json:"target_months,omitempty"`
	MaxInterest  decimal.Decimal `json:"max_interest,omitempty"`

	MaxIterations int             `json:"-"` // zero uses the solver default
	Tolerance     decimal.Decimal `json:"-"` // dollars; zero uses the solver default
}

// ExtraPaymentResult contains the outcome of a solver run
type ExtraPaymentResult struct {
	Request         ExtraPaymentRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Smallest extra monthly amount found that meets the target
	ExtraMonthly decimal.Decimal       `json:"extra_monthly"`
	Timeline     domain.PayoffTimeline `json:"timeline"`

	// Baseline is the schedule with no extra payment; nil when it never finishes
	Baseline      *domain.PayoffTimeline `json:"baseline,omitempty"`
	MonthsSaved   int                    `json:"months_saved"`
	InterestSaved decimal.Decimal        `json:"interest_saved"`
}

// StrategySolveResult holds one solver run per payoff strategy
type StrategySolveResult struct {
	Results         []ExtraPaymentResult `json:"results"`
	Cheapest        *ExtraPaymentResult  `json:"cheapest,omitempty"`
	LeastInterest   *ExtraPaymentResult  `json:"least_interest,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // width of the final bracket in dollars
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 60,
	}
}

var minTolerance = decimal.New(1, -2)

// Validate checks the request is internally consistent
func (r ExtraPaymentRequest) Validate() error {
	if len(r.Debts) == 0 {
		return &SolverError{Operation: "validate_request", Message: "at least one debt is required"}
	}
	switch r.Target {
	case TargetPayoffMonths, "":
		if r.TargetMonths < 1 {
			return &SolverError{Operation: "validate_request", Message: "target_months must be at least 1"}
		}
	case TargetTotalInterest:
		if r.MaxInterest.IsNegative() {
			return &SolverError{Operation: "validate_request", Message: "max_interest cannot be negative"}
		}
	default:
		return &SolverError{Operation: "validate_request", Message: "unsupported target: " + string(r.Target)}
	}
	if r.MaxIterations < 0 {
		return &SolverError{Operation: "validate_request", Message: "max_iterations cannot be negative"}
	}
	if !r.Tolerance.IsZero() && r.Tolerance.LessThan(minTolerance) {
		return &SolverError{Operation: "validate_request", Message: "tolerance must be at least one cent"}
	}
	return nil
}

// SolverError represents errors from the break-even solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
