package tally

import (
	"sort"

	"github.com/dkoosis/tally/pkg/catalog"
)

// SuiteCoverage compares one suite's observed keys against its declared
// expectations.
type SuiteCoverage struct {
	Suite    string   `json:"suite"`
	Expected int      `json:"expected"`
	Observed int      `json:"observed"`
	Extra    int      `json:"extra,omitempty"`
	Missing  []string `json:"missing,omitempty"`
}

// CoverageReport summarizes observed keys against a case catalog.
// Observed counts only keys the catalog expects; keys the catalog does
// not know about are Extra.
type CoverageReport struct {
	Suites    []SuiteCoverage `json:"suites"`
	Expected  int             `json:"expected"`
	Observed  int             `json:"observed"`
	Extra     int             `json:"extra,omitempty"`
	Malformed int             `json:"malformed,omitempty"`
}

// Percent returns observed coverage as a percentage of expectations. An
// empty catalog is fully covered.
func (r CoverageReport) Percent() float64 {
	if r.Expected == 0 {
		return 100
	}
	return float64(r.Observed) / float64(r.Expected) * 100
}

// Coverage measures the aggregator's seen keys against reg's declared
// cases, grouped under the aggregator's suite rule.
func (a *Aggregator) Coverage(reg *catalog.Registry) CoverageReport {
	expected := reg.ExpectedKeys(a.suiteFn)

	observed := make(map[string]map[string]bool)
	for key := range a.seen {
		sig, _, ok := splitKey(key)
		if !ok {
			continue
		}
		suite := a.suiteFn(sig)
		if observed[suite] == nil {
			observed[suite] = make(map[string]bool)
		}
		observed[suite][key] = true
	}

	names := make(map[string]bool)
	for suite := range expected {
		names[suite] = true
	}
	for suite := range observed {
		names[suite] = true
	}
	order := make([]string, 0, len(names))
	for suite := range names {
		order = append(order, suite)
	}
	sort.Strings(order)

	report := CoverageReport{Malformed: a.malformed}
	for _, suite := range order {
		sc := SuiteCoverage{Suite: suite, Expected: len(expected[suite])}
		for _, key := range expected[suite] {
			if observed[suite][key] {
				sc.Observed++
			} else {
				sc.Missing = append(sc.Missing, key)
			}
		}
		sc.Extra = len(observed[suite]) - sc.Observed
		report.Suites = append(report.Suites, sc)
		report.Expected += sc.Expected
		report.Observed += sc.Observed
		report.Extra += sc.Extra
	}
	return report
}
