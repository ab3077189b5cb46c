package pattern

// Coverage represents observed outcomes measured against the declared
// case catalog.
type Coverage struct {
	Label    string
	Rows     []CoverageRow
	Expected int
	Observed int
	Extra    int
	Percent  float64
}

// CoverageRow is one suite's observed-vs-expected standing.
type CoverageRow struct {
	Suite    string
	Expected int
	Observed int
	Extra    int
	Missing  []string // expected keys never seen in the log
}

func (c *Coverage) Type() PatternType { return PatternTypeCoverage }
