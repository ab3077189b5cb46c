package watch

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/tally/pkg/pattern"
	"github.com/dkoosis/tally/pkg/render"
	"github.com/dkoosis/tally/pkg/tally"
)

// Options configures a watch session.
type Options struct {
	Path      string
	FromStart bool
	Interval  time.Duration // 0 means DefaultInterval
	Theme     render.Theme
	AggOpts   []tally.Option
}

// Run follows the log at opts.Path and drives the TUI until the user
// quits or ctx ends. The returned report reflects everything counted,
// so the caller can print the final state after the screen is torn down.
func Run(ctx context.Context, opts Options) (tally.Report, error) {
	// Malformed-line warnings would tear the TUI; the count stays
	// visible in the footer table instead.
	aggOpts := append([]tally.Option{tally.WithLogger(slog.New(slog.DiscardHandler))}, opts.AggOpts...)
	agg := tally.New(aggOpts...)

	lines, err := TailLines(ctx, opts.Path, opts.FromStart, opts.Interval)
	if err != nil {
		return tally.Report{}, err
	}

	program := tea.NewProgram(newModel(agg, lines, opts), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		// An interrupt lands as a context cancel; the counts so far are
		// still the answer.
		if errors.Is(err, tea.ErrProgramKilled) {
			return agg.Report(), nil
		}
		return agg.Report(), err
	}
	if m, ok := finalModel.(model); ok && m.err != nil {
		return agg.Report(), m.err
	}
	return agg.Report(), nil
}

type model struct {
	agg      *tally.Aggregator
	lines    <-chan LineEvent
	path     string
	theme    render.Theme
	renderer *render.Terminal
	viewport viewport.Model
	recent   []string  // most recent accepted keys, newest first
	history  []float64 // total over time, for the sparkline
	ready    bool
	done     bool
	err      error
	width    int
	height   int
}

func newModel(agg *tally.Aggregator, lines <-chan LineEvent, opts Options) model {
	vp := viewport.New(0, 0)
	vp.SetContent("Waiting for records...")
	return model{
		agg:      agg,
		lines:    lines,
		path:     opts.Path,
		theme:    opts.Theme,
		renderer: render.NewTerminal(opts.Theme, 80),
		viewport: vp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.listenLines(), m.tick())
}

type tickMsg struct{}
type lineMsg LineEvent
type closedMsg struct{}

func (m model) listenLines() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.lines
		if !ok {
			return closedMsg{}
		}
		return lineMsg(event)
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/4, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		// Remaining keys scroll the recent-keys pane.
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer = render.NewTerminal(m.theme, msg.Width)
		m.viewport.Width = msg.Width - 4
		vh := msg.Height - 14
		if vh < 3 {
			vh = 3
		}
		m.viewport.Height = vh
		m.ready = true
	case tickMsg:
		m.history = append(m.history, float64(m.agg.Total()))
		if len(m.history) > 60 {
			m.history = m.history[len(m.history)-60:]
		}
		return m, m.tick()
	case lineMsg:
		event := LineEvent(msg)
		if event.Err != nil {
			m.err = event.Err
			m.done = true
			return m, nil
		}
		line := strings.TrimSpace(event.Line)
		if line == "" {
			return m, m.listenLines()
		}
		if rec, ok := tally.ParseLine(line); ok {
			if m.agg.AddRecord(rec) {
				m.recent = append([]string{rec.Key()}, m.recent...)
				if len(m.recent) > 100 {
					m.recent = m.recent[:100]
				}
				m.viewport.SetContent(strings.Join(m.recent, "\n"))
			}
		} else {
			// Add tracks the line as malformed.
			m.agg.Add(line)
		}
		return m, m.listenLines()
	case closedMsg:
		m.done = true
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return "Starting watch..."
	}

	title := "\n" + m.theme.Bold.Render("tally watch") + " " + m.theme.Muted.Render(m.path)

	report := m.agg.Report()
	rows := make([]pattern.CountRow, 0, len(report.Suites))
	for _, sc := range report.Suites {
		rows = append(rows, pattern.CountRow{Suite: sc.Suite, Count: sc.Count})
	}
	patterns := []pattern.Pattern{
		&pattern.CountTable{Label: "suites", Rows: rows, Total: report.Total, Malformed: report.Malformed},
	}
	if len(m.history) > 1 {
		patterns = append(patterns, &pattern.Sparkline{Label: "keys", Values: m.history, Unit: "keys"})
	}
	body := m.renderer.Render(patterns)

	recentHeader := m.theme.Bold.Render("Recent Keys")

	status := "following " + m.path + " • q quit"
	if m.done {
		status = "log closed • q quit"
	}
	footer := m.theme.Muted.Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, title, body, recentHeader, m.viewport.View(), footer)
}
