package pattern

// SummaryKind identifies the report source for dispatch (avoids string-prefix matching).
type SummaryKind string

const (
	SummaryKindReport   SummaryKind = "report"
	SummaryKindCoverage SummaryKind = "coverage"
	SummaryKindCatalog  SummaryKind = "catalog"
)

// Summary represents high-level metrics and counts.
type Summary struct {
	Label   string
	Kind    SummaryKind // dispatch key for renderers
	Metrics []SummaryItem
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string // e.g., "Distinct keys", "Malformed"
	Value string // formatted value
	Kind  string // "success", "error", "warning", "info"; affects coloring
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
