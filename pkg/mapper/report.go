// Package mapper converts aggregation and catalog results to
// renderable patterns.
package mapper

import (
	"fmt"

	"github.com/dkoosis/tally/pkg/pattern"
	"github.com/dkoosis/tally/pkg/tally"
)

// FromReport converts an aggregation result into patterns.
// Returns: Summary + CountTable.
func FromReport(rep tally.Report) []pattern.Pattern {
	rows := make([]pattern.CountRow, 0, len(rep.Suites))
	for _, sc := range rep.Suites {
		rows = append(rows, pattern.CountRow{Suite: sc.Suite, Count: sc.Count})
	}

	metrics := []pattern.SummaryItem{
		{Label: "Distinct", Value: fmt.Sprintf("%d", rep.Total), Kind: "info"},
		{Label: "Suites", Value: fmt.Sprintf("%d", len(rep.Suites)), Kind: "info"},
	}
	if rep.Malformed > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Malformed", Value: fmt.Sprintf("%d lines", rep.Malformed), Kind: "warning",
		})
	}

	label := fmt.Sprintf("%d distinct outcomes in %d suites", rep.Total, len(rep.Suites))
	if rep.Total == 0 {
		label = "no outcomes recorded"
	}

	return []pattern.Pattern{
		&pattern.Summary{Label: label, Kind: pattern.SummaryKindReport, Metrics: metrics},
		&pattern.CountTable{Label: "suites", Rows: rows, Total: rep.Total, Malformed: rep.Malformed},
	}
}
