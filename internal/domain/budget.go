package domain

import (
	"github.com/shopspring/decimal"
)

func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FixedExpenses are the monthly obligations that do not vary month to month
type FixedExpenses struct {
	Housing        decimal.Decimal `yaml:"housing" json:"housing"`
	Utilities      decimal.Decimal `yaml:"utilities" json:"utilities"`
	Insurance      decimal.Decimal `yaml:"insurance" json:"insurance"`
	Transportation decimal.Decimal `yaml:"transportation" json:"transportation"`
	Subscriptions  decimal.Decimal `yaml:"subscriptions" json:"subscriptions"`
	Childcare      decimal.Decimal `yaml:"childcare" json:"childcare"`
	Other          decimal.Decimal `yaml:"other" json:"other"`
}

// Total is always derived from the categories
func (f FixedExpenses) Total() decimal.Decimal {
	return sum(f.Housing, f.Utilities, f.Insurance, f.Transportation, f.Subscriptions, f.Childcare, f.Other)
}

func (f FixedExpenses) fields() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"housing": f.Housing, "utilities": f.Utilities, "insurance": f.Insurance,
		"transportation": f.Transportation, "subscriptions": f.Subscriptions,
		"childcare": f.Childcare, "other": f.Other,
	}
}

// VariableExpenses are the monthly discretionary categories
type VariableExpenses struct {
	Food          decimal.Decimal `yaml:"food" json:"food"`
	Entertainment decimal.Decimal `yaml:"entertainment" json:"entertainment"`
	Shopping      decimal.Decimal `yaml:"shopping" json:"shopping"`
	Healthcare    decimal.Decimal `yaml:"healthcare" json:"healthcare"`
	Travel        decimal.Decimal `yaml:"travel" json:"travel"`
	Education     decimal.Decimal `yaml:"education" json:"education"`
	Gifts         decimal.Decimal `yaml:"gifts" json:"gifts"`
	Miscellaneous decimal.Decimal `yaml:"miscellaneous" json:"miscellaneous"`
}

// Total is always derived from the categories
func (v VariableExpenses) Total() decimal.Decimal {
	return sum(v.Food, v.Entertainment, v.Shopping, v.Healthcare, v.Travel, v.Education, v.Gifts, v.Miscellaneous)
}

func (v VariableExpenses) fields() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"food": v.Food, "entertainment": v.Entertainment, "shopping": v.Shopping,
		"healthcare": v.Healthcare, "travel": v.Travel, "education": v.Education,
		"gifts": v.Gifts, "miscellaneous": v.Miscellaneous,
	}
}

// CurrentAssets is a point-in-time snapshot of what the household owns
type CurrentAssets struct {
	Checking         decimal.Decimal `yaml:"checking" json:"checking"`
	Savings          decimal.Decimal `yaml:"savings" json:"savings"`
	MoneyMarket      decimal.Decimal `yaml:"money_market" json:"money_market"`
	CashOnHand       decimal.Decimal `yaml:"cash_on_hand" json:"cash_on_hand"`
	Retirement401k   decimal.Decimal `yaml:"retirement_401k" json:"retirement_401k"`
	RetirementIRA    decimal.Decimal `yaml:"retirement_ira" json:"retirement_ira"`
	RetirementRoth   decimal.Decimal `yaml:"retirement_roth" json:"retirement_roth"`
	Brokerage        decimal.Decimal `yaml:"brokerage" json:"brokerage"`
	OtherInvestments decimal.Decimal `yaml:"other_investments" json:"other_investments"`
	RealEstateEquity decimal.Decimal `yaml:"real_estate_equity" json:"real_estate_equity"`
	Personal         decimal.Decimal `yaml:"personal" json:"personal"`
	Business         decimal.Decimal `yaml:"business" json:"business"`
}

// Liquid sums cash and cash-equivalent accounts
func (a CurrentAssets) Liquid() decimal.Decimal {
	return sum(a.Checking, a.Savings, a.MoneyMarket, a.CashOnHand)
}

// Investments sums retirement and brokerage accounts
func (a CurrentAssets) Investments() decimal.Decimal {
	return sum(a.Retirement401k, a.RetirementIRA, a.RetirementRoth, a.Brokerage, a.OtherInvestments)
}

// Total is always derived from the categories
func (a CurrentAssets) Total() decimal.Decimal {
	return sum(a.Liquid(), a.Investments(), a.RealEstateEquity, a.Personal, a.Business)
}

func (a CurrentAssets) fields() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"checking": a.Checking, "savings": a.Savings, "money_market": a.MoneyMarket,
		"cash_on_hand": a.CashOnHand, "retirement_401k": a.Retirement401k,
		"retirement_ira": a.RetirementIRA, "retirement_roth": a.RetirementRoth,
		"brokerage": a.Brokerage, "other_investments": a.OtherInvestments,
		"real_estate_equity": a.RealEstateEquity, "personal": a.Personal, "business": a.Business,
	}
}
