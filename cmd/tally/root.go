package main

import (
	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "Count distinct method outcomes against the benchmark catalog",
		Long: "tally reads \"signature (args) -> outcome\" log lines, deduplicates\n" +
			"them by bare signature and outcome, and reports per-suite counts,\n" +
			"with the declared case catalog as the oracle.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.AddCommand(newReportCmd())
	root.AddCommand(newCasesCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newCoverageCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())
	return root
}
