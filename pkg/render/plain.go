package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/tally/pkg/pattern"
)

// Plain renders patterns as unstyled deterministic text for piping and
// machine consumption. Zero ANSI codes. The count table body is the
// stable report form downstream tooling parses: one "suite: count" line
// per suite, then "Total: count", nothing else. Summary and sparkline
// patterns are presentation-only and skipped.
type Plain struct{}

// NewPlain creates a plain text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render formats all patterns as plain text.
func (p *Plain) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, pat := range patterns {
		var s string
		switch v := pat.(type) {
		case *pattern.CountTable:
			s = p.renderCountTable(v)
		case *pattern.CaseTable:
			s = p.renderCaseTable(v)
		case *pattern.Coverage:
			s = p.renderCoverage(v)
		}
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (p *Plain) renderCountTable(c *pattern.CountTable) string {
	var sb strings.Builder
	for _, row := range c.Rows {
		fmt.Fprintf(&sb, "%s: %d\n", row.Suite, row.Count)
	}
	fmt.Fprintf(&sb, "Total: %d\n", c.Total)
	return sb.String()
}

// renderCaseTable writes one case per line in the log form, so the
// listing round-trips through the declaration parser.
func (p *Plain) renderCaseTable(c *pattern.CaseTable) string {
	var sb strings.Builder
	for _, row := range c.Rows {
		fmt.Fprintf(&sb, "%s %s -> %s\n", row.Method, row.Args, row.Outcome)
	}
	return sb.String()
}

func (p *Plain) renderCoverage(c *pattern.Coverage) string {
	var sb strings.Builder
	for _, row := range c.Rows {
		fmt.Fprintf(&sb, "%s: %d/%d\n", row.Suite, row.Observed, row.Expected)
		if row.Extra > 0 {
			fmt.Fprintf(&sb, "  extra: %d\n", row.Extra)
		}
		for _, key := range row.Missing {
			fmt.Fprintf(&sb, "  missing: %s\n", key)
		}
	}
	fmt.Fprintf(&sb, "Coverage: %.1f%% (%d/%d)\n", c.Percent, c.Observed, c.Expected)
	return sb.String()
}
