package pattern

// CountTable represents per-suite distinct-outcome counts, the core
// report shape: one row per suite plus a grand total.
type CountTable struct {
	Label     string
	Rows      []CountRow
	Total     int
	Malformed int // skipped input lines, 0 when the log was clean
}

// CountRow is a single suite's count.
type CountRow struct {
	Suite string
	Count int
}

func (c *CountTable) Type() PatternType { return PatternTypeCountTable }
