package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/tally/pkg/pattern"
)

// caserWrapper wraps a cases.Caser to allow pointer storage in sync.Pool.
type caserWrapper struct {
	caser cases.Caser
}

// titleCaserPool pools cases.Title instances. cases.Title is not safe
// for concurrent use, so instances are pooled rather than shared.
var titleCaserPool = sync.Pool{
	New: func() interface{} {
		return &caserWrapper{caser: cases.Title(language.English)}
	},
}

func titleCase(s string) string {
	wrapper, ok := titleCaserPool.Get().(*caserWrapper)
	if !ok || wrapper == nil {
		return cases.Title(language.English).String(s)
	}
	defer titleCaserPool.Put(wrapper)
	return wrapper.caser.String(s)
}

// visualWidth returns the display width of a string in terminal cells,
// handling East Asian Wide characters and other multi-cell runes.
func visualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.CountTable:
		return t.renderCountTable(v)
	case *pattern.CaseTable:
		return t.renderCaseTable(v)
	case *pattern.Coverage:
		return t.renderCoverage(v)
	case *pattern.Sparkline:
		return t.renderSparkline(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Bold.Render(s.Label))
		sb.WriteString("\n")
	}
	for _, m := range s.Metrics {
		sb.WriteString("  ")
		icon, style := t.iconStyle(m.Kind)
		sb.WriteString(style.Render(icon + " " + m.Label + ": " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderCountTable(c *pattern.CountTable) string {
	var sb strings.Builder
	if c.Label != "" {
		sb.WriteString(t.theme.Bold.Render(titleCase(c.Label)))
		sb.WriteString("\n")
	}

	maxSuite := visualWidth("Total")
	maxCount := len(fmt.Sprint(c.Total))
	for _, row := range c.Rows {
		if w := visualWidth(row.Suite); w > maxSuite {
			maxSuite = w
		}
		if w := len(fmt.Sprint(row.Count)); w > maxCount {
			maxCount = w
		}
	}

	for _, row := range c.Rows {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(t.theme.Icons.Bullet + " "))
		sb.WriteString(t.theme.Primary.Render(padRight(row.Suite, maxSuite)))
		sb.WriteString("  ")
		sb.WriteString(padLeft(fmt.Sprint(row.Count), maxCount))
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	sb.WriteString(t.theme.Muted.Render(t.theme.Icons.Bullet + " "))
	sb.WriteString(t.theme.Bold.Render(padRight("Total", maxSuite)))
	sb.WriteString("  ")
	sb.WriteString(t.theme.Bold.Render(padLeft(fmt.Sprint(c.Total), maxCount)))
	sb.WriteString("\n")

	if c.Malformed > 0 {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(fmt.Sprintf("%s %d malformed lines skipped", t.theme.Icons.Warn, c.Malformed)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderCaseTable(c *pattern.CaseTable) string {
	if len(c.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	if c.Label != "" {
		sb.WriteString(t.theme.Bold.Render(titleCase(c.Label)))
		sb.WriteString("\n")
	}

	maxSig := 0
	for _, row := range c.Rows {
		if w := visualWidth(row.Method + " " + row.Args); w > maxSig {
			maxSig = w
		}
	}
	// Leave room for the icon gutter and the outcome column.
	sigCap := t.width - 24
	if sigCap < 32 {
		sigCap = 32
	}
	if maxSig > sigCap {
		maxSig = sigCap
	}

	for _, row := range c.Rows {
		sb.WriteString("  ")
		icon, style := t.outcomeIconStyle(row.Outcome)
		sb.WriteString(style.Render(icon + " "))

		sig := row.Method + " " + row.Args
		if visualWidth(sig) > maxSig {
			sig = runewidth.Truncate(sig, maxSig, "...")
		}
		sb.WriteString(padRight(sig, maxSig))
		sb.WriteString("  ")
		sb.WriteString(style.Render(row.Outcome))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderCoverage(c *pattern.Coverage) string {
	var sb strings.Builder
	if c.Label != "" {
		sb.WriteString(t.theme.Bold.Render(titleCase(c.Label)))
		sb.WriteString("\n")
	}

	maxSuite := 0
	for _, row := range c.Rows {
		if w := visualWidth(row.Suite); w > maxSuite {
			maxSuite = w
		}
	}

	for _, row := range c.Rows {
		sb.WriteString("  ")
		icon, style := t.iconStyle(coverageKind(row))
		sb.WriteString(style.Render(icon + " "))
		sb.WriteString(t.theme.Primary.Render(padRight(row.Suite, maxSuite)))
		sb.WriteString(fmt.Sprintf("  %d/%d", row.Observed, row.Expected))
		if row.Extra > 0 {
			sb.WriteString(t.theme.Warning.Render(fmt.Sprintf("  +%d outside catalog", row.Extra)))
		}
		sb.WriteString("\n")

		show := len(row.Missing)
		if show > 5 {
			show = 5
		}
		for _, key := range row.Missing[:show] {
			sb.WriteString("      ")
			sb.WriteString(t.theme.Muted.Render("missing " + key))
			sb.WriteString("\n")
		}
		if len(row.Missing) > show {
			sb.WriteString("      ")
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("... (%d more)", len(row.Missing)-show)))
			sb.WriteString("\n")
		}
	}

	kind := "success"
	if c.Observed < c.Expected {
		kind = "warning"
	}
	icon, style := t.iconStyle(kind)
	sb.WriteString("  ")
	sb.WriteString(style.Render(fmt.Sprintf("%s %.1f%% covered (%d/%d)", icon, c.Percent, c.Observed, c.Expected)))
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) renderSparkline(s *pattern.Sparkline) string {
	if len(s.Values) == 0 {
		return ""
	}
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Primary.Render(s.Label + ": "))
	}

	minVal, maxVal := s.Min, s.Max
	if minVal == 0 && maxVal == 0 {
		minVal, maxVal = s.Values[0], s.Values[0]
		for _, v := range s.Values {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	valueRange := maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	var spark strings.Builder
	for _, v := range s.Values {
		idx := int((v - minVal) / valueRange * 7)
		if idx < 0 {
			idx = 0
		}
		if idx > 7 {
			idx = 7
		}
		spark.WriteRune(blocks[idx])
	}
	sb.WriteString(t.theme.Success.Render(spark.String()))

	latest := s.Values[len(s.Values)-1]
	sb.WriteString(t.theme.Muted.Render(" " + formatSparkValue(latest, s.Unit)))
	sb.WriteString("\n")
	return sb.String()
}

func formatSparkValue(v float64, unit string) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f %s", v, unit)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

func coverageKind(row pattern.CoverageRow) string {
	switch {
	case row.Expected > 0 && row.Observed == row.Expected:
		return "success"
	case row.Observed == 0:
		return "error"
	default:
		return "warning"
	}
}

func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.Icons.Pass, t.theme.Success
	case "error":
		return t.theme.Icons.Fail, t.theme.Error
	case "warning":
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

// outcomeIconStyle picks the icon for a declared outcome. Non-ok
// outcomes are expectations, not failures, so they get the warning
// treatment rather than error red.
func (t *Terminal) outcomeIconStyle(outcome string) (string, lipgloss.Style) {
	switch outcome {
	case "ok":
		return t.theme.Icons.Pass, t.theme.Success
	case "*":
		return t.theme.Icons.WIP, t.theme.Muted
	default:
		return t.theme.Icons.Warn, t.theme.Warning
	}
}

func padRight(s string, width int) string {
	if w := visualWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := visualWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
