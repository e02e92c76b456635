package sequencing

import (
	"sort"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
)

// sortDebts copies debts and stable-sorts them by less, breaking ties by id
func sortDebts(debts []domain.Debt, less func(a, b domain.Debt) int) []domain.Debt {
	out := append([]domain.Debt(nil), debts...)
	sort.SliceStable(out, func(i, j int) bool {
		if c := less(out[i], out[j]); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AvalancheOrdering pays the highest interest rate first
type AvalancheOrdering struct{}

func NewAvalancheOrdering() *AvalancheOrdering { return &AvalancheOrdering{} }

func (s *AvalancheOrdering) Name() string { return Avalanche }

func (s *AvalancheOrdering) Order(debts []domain.Debt) []domain.Debt {
	return sortDebts(debts, func(a, b domain.Debt) int {
		return b.InterestRate.Cmp(a.InterestRate)
	})
}

// SnowballOrdering pays the smallest balance first
type SnowballOrdering struct{}

func NewSnowballOrdering() *SnowballOrdering { return &SnowballOrdering{} }

func (s *SnowballOrdering) Name() string { return Snowball }

func (s *SnowballOrdering) Order(debts []domain.Debt) []domain.Debt {
	return sortDebts(debts, func(a, b domain.Debt) int {
		return a.Balance.Cmp(b.Balance)
	})
}

// CashFlowOrdering pays the debt with the lowest balance-to-payment ratio
// first, freeing monthly cash flow soonest.
type CashFlowOrdering struct{}

func NewCashFlowOrdering() *CashFlowOrdering { return &CashFlowOrdering{} }

func (s *CashFlowOrdering) Name() string { return CashFlow }

func (s *CashFlowOrdering) Order(debts []domain.Debt) []domain.Debt {
	return sortDebts(debts, func(a, b domain.Debt) int {
		return cashFlowIndex(a).Cmp(cashFlowIndex(b))
	})
}

func cashFlowIndex(d domain.Debt) decimal.Decimal {
	if !d.MonthlyPayment.IsPositive() {
		return d.Balance
	}
	return d.Balance.Div(d.MonthlyPayment)
}
