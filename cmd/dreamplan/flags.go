package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// parseAmount parses a dollar flag; empty means unset
func parseAmount(flag, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: invalid amount %q: %w", flag, value, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("--%s: amount must not be negative, got %s", flag, value)
	}
	return &d, nil
}
