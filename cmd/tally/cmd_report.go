package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/pkg/mapper"
)

func newReportCmd() *cobra.Command {
	var f cliFlags
	cmd := &cobra.Command{
		Use:   "report [log...]",
		Short: "Aggregate outcome logs into per-suite distinct counts",
		Long: "report reads outcome logs (stdin when no paths are given, \"-\" for\n" +
			"stdin alongside files), deduplicates lines by bare signature and\n" +
			"outcome, and prints one count per suite plus the grand total.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &f)
			if err != nil {
				return err
			}
			agg, err := aggregate(cmd, cfg, args)
			if err != nil {
				return err
			}
			rep := agg.Report()
			fmt.Fprint(cmd.OutOrStdout(), selectRenderer(cfg, cmd.OutOrStdout()).Render(mapper.FromReport(rep)))
			if cfg.Strict && rep.Malformed > 0 {
				return fail("%d malformed line(s) skipped in strict mode", rep.Malformed)
			}
			return nil
		},
	}
	addFormatFlags(cmd, &f)
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "Parallel log readers (0 = one per CPU)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit nonzero when malformed lines were skipped")
	return cmd
}
