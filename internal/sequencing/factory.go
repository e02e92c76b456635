package sequencing

// CreateOrdering returns the ordering for name. Unknown names fall back to
// avalanche; the bool reports whether name was recognised.
func CreateOrdering(name string, customSequence []string) (PayoffOrdering, bool) {
	switch name {
	case Avalanche, "":
		return NewAvalancheOrdering(), name != ""
	case Snowball:
		return NewSnowballOrdering(), true
	case CashFlow:
		return NewCashFlowOrdering(), true
	case Custom:
		return NewCustomOrdering(customSequence), true
	default:
		return NewAvalancheOrdering(), false
	}
}

// Names lists the built-in orderings
func Names() []string {
	return []string{Avalanche, Snowball, CashFlow, Custom}
}
