package mapper

import (
	"fmt"

	"github.com/dkoosis/tally/pkg/pattern"
	"github.com/dkoosis/tally/pkg/tally"
)

// FromCoverage converts a coverage result into patterns.
// Returns: Summary + Coverage.
func FromCoverage(cov tally.CoverageReport) []pattern.Pattern {
	rows := make([]pattern.CoverageRow, 0, len(cov.Suites))
	for _, sc := range cov.Suites {
		rows = append(rows, pattern.CoverageRow{
			Suite:    sc.Suite,
			Expected: sc.Expected,
			Observed: sc.Observed,
			Extra:    sc.Extra,
			Missing:  sc.Missing,
		})
	}

	missing := cov.Expected - cov.Observed
	missingKind := "success"
	if missing > 0 {
		missingKind = "error"
	}
	metrics := []pattern.SummaryItem{
		{Label: "Expected", Value: fmt.Sprintf("%d", cov.Expected), Kind: "info"},
		{Label: "Observed", Value: fmt.Sprintf("%d", cov.Observed), Kind: "info"},
		{Label: "Missing", Value: fmt.Sprintf("%d", missing), Kind: missingKind},
	}
	if cov.Extra > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Extra", Value: fmt.Sprintf("%d keys outside the catalog", cov.Extra), Kind: "warning",
		})
	}
	if cov.Malformed > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Malformed", Value: fmt.Sprintf("%d lines", cov.Malformed), Kind: "warning",
		})
	}

	label := fmt.Sprintf("%.1f%% of expected keys observed", cov.Percent())

	return []pattern.Pattern{
		&pattern.Summary{Label: label, Kind: pattern.SummaryKindCoverage, Metrics: metrics},
		&pattern.Coverage{
			Label:    "coverage",
			Rows:     rows,
			Expected: cov.Expected,
			Observed: cov.Observed,
			Extra:    cov.Extra,
			Percent:  cov.Percent(),
		},
	}
}
