package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/tally/internal/config"
	"github.com/dkoosis/tally/internal/logging"
	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/jvm"
	"github.com/dkoosis/tally/pkg/render"
	"github.com/dkoosis/tally/pkg/tally"
)

// cliFlags holds the flag targets a subcommand registers. Only flags the
// command actually declared reach the resolver.
type cliFlags struct {
	format       string
	theme        string
	suiteSegment int
	jobs         int
	strict       bool
}

// addFormatFlags registers the rendering flags shared by report, cases,
// coverage, and watch.
func addFormatFlags(cmd *cobra.Command, f *cliFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.format, "format", config.DefaultFormat, "Output format: auto, terminal, plain, json")
	fl.StringVar(&f.theme, "theme", config.DefaultTheme, "Theme: default, orca, mono")
	fl.IntVar(&f.suiteSegment, "suite-segment", config.DefaultSuiteSegment, "Dot-separated signature segment naming the suite")
}

// resolveConfig folds the command's flags into the precedence chain
// (flags > env > file > defaults) and initializes logging.
func resolveConfig(cmd *cobra.Command, f *cliFlags) (*config.Resolved, error) {
	set := cmd.Flags().Changed
	flags := config.CliFlags{
		Format:       f.format,
		Theme:        f.theme,
		SuiteSegment: f.suiteSegment,
		Jobs:         f.jobs,
		Strict:       f.strict,

		FormatSet:       set("format"),
		ThemeSet:        set("theme"),
		SuiteSegmentSet: set("suite-segment"),
		JobsSet:         set("jobs"),
		StrictSet:       set("strict"),
	}
	cfg, err := config.Resolve(flags)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level, "text", cmd.ErrOrStderr())
	return cfg, nil
}

// resolveFormat maps "auto" to terminal on a TTY and plain otherwise.
func resolveFormat(cfg *config.Resolved, w io.Writer) string {
	if cfg.Format != "auto" {
		return cfg.Format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) && !cfg.NoColor {
		return "terminal"
	}
	return "plain"
}

func selectRenderer(cfg *config.Resolved, w io.Writer) render.Renderer {
	switch resolveFormat(cfg, w) {
	case "json":
		return render.NewJSON()
	case "terminal":
		theme := render.ThemeByName(cfg.Theme)
		if cfg.NoColor {
			theme = render.MonoTheme()
		}
		width := 80
		if f, ok := w.(*os.File); ok {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				width = tw
			}
		}
		return render.NewTerminal(theme, width)
	default:
		return render.NewPlain()
	}
}

// loadCatalogs returns the builtin registry, or a fresh one combining
// the builtin cases with extra files.
func loadCatalogs(files []string) (*catalog.Registry, error) {
	if len(files) == 0 {
		return catalog.Builtin()
	}
	reg := catalog.NewRegistry()
	if err := catalog.LoadBuiltin(reg); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := catalog.LoadFile(reg, f); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// aggregate folds the given logs into one aggregator. No paths, or the
// path "-", means stdin.
func aggregate(cmd *cobra.Command, cfg *config.Resolved, paths []string) (*tally.Aggregator, error) {
	opts := []tally.Option{
		tally.WithSuiteFunc(jvm.SegmentRule(cfg.SuiteSegment)),
		tally.WithLogger(logging.New("aggregator")),
	}

	useStdin := len(paths) == 0
	var files []string
	for _, p := range paths {
		if p == "-" {
			useStdin = true
			continue
		}
		files = append(files, p)
	}

	if len(files) == 0 {
		agg := tally.New(opts...)
		if err := agg.Consume(cmd.InOrStdin()); err != nil {
			return nil, err
		}
		return agg, nil
	}

	agg, err := tally.AggregateFiles(cmd.Context(), files, cfg.Jobs, opts...)
	if err != nil {
		return nil, err
	}
	if useStdin {
		stdin := tally.New(opts...)
		if err := stdin.Consume(cmd.InOrStdin()); err != nil {
			return nil, err
		}
		agg.Merge(stdin)
	}
	return agg, nil
}
