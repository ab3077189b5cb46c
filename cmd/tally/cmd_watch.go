package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/pkg/jvm"
	"github.com/dkoosis/tally/pkg/mapper"
	"github.com/dkoosis/tally/pkg/render"
	"github.com/dkoosis/tally/pkg/tally"
	"github.com/dkoosis/tally/pkg/watch"
)

func newWatchCmd() *cobra.Command {
	var f cliFlags
	var fromStart bool
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch <log>",
		Short: "Follow a growing outcome log in a live view",
		Long: "watch tails the log and live-renders per-suite distinct counts.\n" +
			"Quit with q or ctrl-c; the final counts are then printed to stdout\n" +
			"in the same shape report prints.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &f)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			theme := render.ThemeByName(cfg.Theme)
			if cfg.NoColor {
				theme = render.MonoTheme()
			}
			rep, err := watch.Run(ctx, watch.Options{
				Path:      args[0],
				FromStart: fromStart,
				Interval:  interval,
				Theme:     theme,
				AggOpts:   []tally.Option{tally.WithSuiteFunc(jvm.SegmentRule(cfg.SuiteSegment))},
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), selectRenderer(cfg, cmd.OutOrStdout()).Render(mapper.FromReport(rep)))
			return nil
		},
	}
	addFormatFlags(cmd, &f)
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "Read the log from the beginning instead of the current end")
	cmd.Flags().DurationVar(&interval, "interval", watch.DefaultInterval, "Poll interval for new log data")
	return cmd
}
