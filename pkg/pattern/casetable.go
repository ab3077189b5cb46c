package pattern

// CaseTable represents declared benchmark cases with their expected
// outcomes.
type CaseTable struct {
	Label string
	Rows  []CaseRow
}

// CaseRow is a single declared case.
type CaseRow struct {
	Suite   string
	Method  string // bare signature
	Args    string // formatted literal tuple, e.g. "(0)" or "([I: 1, 2])"
	Outcome string
}

func (c *CaseTable) Type() PatternType { return PatternTypeCaseTable }
