// Package pattern defines the semantic data types for tally's output.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of output pattern.
type PatternType string

const (
	PatternTypeSummary    PatternType = "summary"
	PatternTypeCountTable PatternType = "count-table"
	PatternTypeCaseTable  PatternType = "case-table"
	PatternTypeCoverage   PatternType = "coverage"
	PatternTypeSparkline  PatternType = "sparkline"
)

// Pattern is the interface all output patterns implement.
// Patterns hold data; renderers decide how to present it.
type Pattern interface {
	Type() PatternType
}
