package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmapper/internal/diagnostic"
	"docmapper/internal/mapping"
)

func newCheckCmd() *cobra.Command {
	var verboseInfos bool

	cmd := &cobra.Command{
		Use:     "check <mapping.yaml>...",
		Short:   "Validate mapping definitions",
		Example: "docmapper check orders.yaml invoices.yaml",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFor(cmd)
			failed := 0

			for _, path := range args {
				mf, err := mapping.LoadFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++

					continue
				}

				res := mapping.Validate(mf)
				for _, d := range res.All() {
					if d.Severity == diagnostic.SeverityInfo && !verboseInfos {
						continue
					}

					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", path, d.Severity, d)
				}

				log.V(1).Info("Checked mapping", "path", path,
					"errors", len(res.Errors), "warnings", len(res.Warnings))

				if res.HasErrors() {
					failed++
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d mapping files are invalid", failed, len(args))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&verboseInfos, "infos", false, "also print informational records")

	return cmd
}
