package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmapper/internal/fieldpath"
)

func newPathsCmd() *cobra.Command {
	var segments bool

	cmd := &cobra.Command{
		Use:   "paths <path>...",
		Short: "Parse path expressions and print their canonical form",
		Example: `docmapper paths "/Order/items[]/@sku" "/Order/ns:total"
docmapper paths --segments "/Order/costs{shipping}"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, raw := range args {
				p, err := fieldpath.Parse(raw)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++

					continue
				}

				fmt.Fprintln(out, p.String())

				if !segments {
					continue
				}

				for i, seg := range p.Segments() {
					kind := "element"
					if seg.IsAttribute() {
						kind = "attribute"
					}

					fmt.Fprintf(out, "  %d %s %s collection=%s wildcard=%t\n",
						i, kind, seg.QualifiedName(), seg.Collection(), seg.IsWildcard())
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d paths are invalid", failed, len(args))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&segments, "segments", false, "print the parsed segments of each path")

	return cmd
}
