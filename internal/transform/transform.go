package transform

import (
	"fmt"

	"github.com/rgehrsitz/dreamplan/internal/domain"
)

// ProfileTransform is a composable what-if edit of a financial profile.
// Transforms never mutate their input; Apply returns a new profile.
type ProfileTransform interface {
	// Apply returns a modified copy of base
	Apply(base domain.FinancialProfile) (domain.FinancialProfile, error)

	// Name returns a short identifier (e.g., "adjust_income")
	Name() string

	// Description returns a human-readable summary of the edit
	Description() string

	// Validate checks the parameters against base without applying them
	Validate(base domain.FinancialProfile) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one. The base profile is never modified.
func ApplyTransforms(base domain.FinancialProfile, transforms []ProfileTransform) (domain.FinancialProfile, error) {
	current := base.Clone()
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// Describe joins the descriptions of a transform chain
func Describe(transforms []ProfileTransform) string {
	out := ""
	for i, t := range transforms {
		if i > 0 {
			out += "; "
		}
		out += t.Description()
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
