package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/pkg/mapper"
)

func newCoverageCmd() *cobra.Command {
	var f cliFlags
	var files []string
	var min float64
	cmd := &cobra.Command{
		Use:   "coverage [log...]",
		Short: "Measure observed outcome keys against the declared catalog",
		Long: "coverage aggregates outcome logs the same way report does, then\n" +
			"compares the distinct keys seen against the keys the catalog\n" +
			"declares, per suite: observed, missing, and extra.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &f)
			if err != nil {
				return err
			}
			reg, err := loadCatalogs(files)
			if err != nil {
				return err
			}
			agg, err := aggregate(cmd, cfg, args)
			if err != nil {
				return err
			}
			cov := agg.Coverage(reg)
			fmt.Fprint(cmd.OutOrStdout(), selectRenderer(cfg, cmd.OutOrStdout()).Render(mapper.FromCoverage(cov)))
			if min > 0 && cov.Percent() < min {
				return fail("coverage %.1f%% is below the required %.1f%%", cov.Percent(), min)
			}
			return nil
		},
	}
	addFormatFlags(cmd, &f)
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "Parallel log readers (0 = one per CPU)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Extra case files (YAML), loaded after the builtin catalog")
	cmd.Flags().Float64Var(&min, "min", 0, "Fail when the coverage percentage falls below this value")
	return cmd
}
