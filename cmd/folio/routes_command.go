package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newRoutesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := ctx.site(cmd)
			if err != nil {
				return err
			}
			_, routes, err := site.Plan()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(routes))
			for _, r := range routes {
				rows = append(rows, []string{r.Path, r.Kind.String(), folio.OutputPath(site.Config.OutputDir, r.Path)})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Path", "Kind", "File"}, rows))
			fmt.Fprintf(out, "%d routes\n", len(routes))
			return nil
		},
	}
}
