package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/pkg/catalog"
)

func newCheckCmd() *cobra.Command {
	var files []string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate catalog consistency",
		Long: "check loads the builtin catalog plus any extra case files and rejects\n" +
			"conflicting declarations: the same method and inputs must never be\n" +
			"declared with two different outcomes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := catalog.NewRegistry()
			// Keep loading past a bad file so one run reports every source
			// of trouble.
			var errs []error
			if err := catalog.LoadBuiltin(reg); err != nil {
				errs = append(errs, err)
			}
			for _, f := range files {
				if err := catalog.LoadFile(reg, f); err != nil {
					errs = append(errs, err)
				}
			}
			if err := reg.Validate(); err != nil {
				errs = append(errs, err)
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d cases across %d methods\n",
				reg.Len(), len(reg.Methods()))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&files, "file", nil, "Extra case files (YAML) to check against the builtin catalog")
	return cmd
}
