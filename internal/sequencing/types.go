package sequencing

import (
	"github.com/rgehrsitz/dreamplan/internal/domain"
)

// Ordering names accepted by CreateOrdering
const (
	Avalanche = "avalanche"
	Snowball  = "snowball"
	CashFlow  = "cash_flow"
	Custom    = "custom"
)

// PayoffOrdering decides which debt receives extra payments first.
// Order returns a new slice and never modifies its input.
type PayoffOrdering interface {
	Name() string
	Order(debts []domain.Debt) []domain.Debt
}

// OrderIDs returns the ids of debts in the ordering's priority
func OrderIDs(o PayoffOrdering, debts []domain.Debt) []string {
	ordered := o.Order(debts)
	ids := make([]string, len(ordered))
	for i, d := range ordered {
		ids[i] = d.ID
	}
	return ids
}
