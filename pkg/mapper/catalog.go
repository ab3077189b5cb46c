package mapper

import (
	"fmt"

	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/jvm"
	"github.com/dkoosis/tally/pkg/pattern"
)

// FromCatalog converts declared cases into a listing in declaration
// order. An empty suite lists every case; fn buckets methods into
// suites, nil meaning the default rule.
func FromCatalog(reg *catalog.Registry, suite string, fn jvm.SuiteFunc) []pattern.Pattern {
	if fn == nil {
		fn = jvm.DefaultSuite
	}

	var rows []pattern.CaseRow
	methods := make(map[string]struct{})
	unknown := 0
	for c := range reg.All() {
		s := fn(c.Method.String())
		if suite != "" && s != suite {
			continue
		}
		rows = append(rows, pattern.CaseRow{
			Suite:   s,
			Method:  c.Method.String(),
			Args:    c.Args.String(),
			Outcome: string(c.Outcome),
		})
		methods[c.Method.String()] = struct{}{}
		if !c.Outcome.Known() {
			unknown++
		}
	}

	metrics := []pattern.SummaryItem{
		{Label: "Cases", Value: fmt.Sprintf("%d", len(rows)), Kind: "info"},
		{Label: "Methods", Value: fmt.Sprintf("%d", len(methods)), Kind: "info"},
	}
	if unknown > 0 {
		// Likely outcome typos; the registry stores any non-empty label.
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Unknown Outcomes", Value: fmt.Sprintf("%d", unknown), Kind: "warning",
		})
	}

	label := fmt.Sprintf("%d cases across %d methods", len(rows), len(methods))
	if suite != "" {
		label = fmt.Sprintf("%s: %d cases across %d methods", suite, len(rows), len(methods))
	}

	tableLabel := "declared cases"
	if suite != "" {
		tableLabel = "declared cases: " + suite
	}

	return []pattern.Pattern{
		&pattern.Summary{Label: label, Kind: pattern.SummaryKindCatalog, Metrics: metrics},
		&pattern.CaseTable{Label: tableLabel, Rows: rows},
	}
}
