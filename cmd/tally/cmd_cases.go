package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/pkg/jvm"
	"github.com/dkoosis/tally/pkg/mapper"
)

func newCasesCmd() *cobra.Command {
	var f cliFlags
	var suite string
	var files []string
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List the declared benchmark cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, &f)
			if err != nil {
				return err
			}
			reg, err := loadCatalogs(files)
			if err != nil {
				return err
			}
			patterns := mapper.FromCatalog(reg, suite, jvm.SegmentRule(cfg.SuiteSegment))
			fmt.Fprint(cmd.OutOrStdout(), selectRenderer(cfg, cmd.OutOrStdout()).Render(patterns))
			return nil
		},
	}
	addFormatFlags(cmd, &f)
	cmd.Flags().StringVar(&suite, "suite", "", "Only list cases in this suite")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Extra case files (YAML), loaded after the builtin catalog")
	return cmd
}
