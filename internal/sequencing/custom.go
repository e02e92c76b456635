package sequencing

import (
	"github.com/rgehrsitz/dreamplan/internal/domain"
)

// CustomOrdering pays debts in a user-specified id sequence. Debts missing from
// the sequence follow in avalanche order; unknown ids are ignored.
type CustomOrdering struct {
	Sequence []string
}

func NewCustomOrdering(sequence []string) *CustomOrdering {
	return &CustomOrdering{Sequence: sequence}
}

func (s *CustomOrdering) Name() string { return Custom }

func (s *CustomOrdering) Order(debts []domain.Debt) []domain.Debt {
	byID := make(map[string]domain.Debt, len(debts))
	for _, d := range debts {
		byID[d.ID] = d
	}

	out := make([]domain.Debt, 0, len(debts))
	used := map[string]bool{}
	for _, id := range s.Sequence {
		d, ok := byID[id]
		if !ok || used[id] {
			continue
		}
		used[id] = true
		out = append(out, d)
	}

	rest := make([]domain.Debt, 0, len(debts)-len(out))
	for _, d := range debts {
		if !used[d.ID] {
			rest = append(rest, d)
		}
	}
	return append(out, NewAvalancheOrdering().Order(rest)...)
}
