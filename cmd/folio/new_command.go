package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

func newNewCommand() *cobra.Command {
	var siteURL, author string

	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a new folio project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			now := time.Now()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Creating new folio project: %s\n\n", dir)
			created, err := scaffold.Generate(dir, scaffold.Data{
				SiteName: scaffold.ToTitle(filepath.Base(dir)),
				SiteURL:  siteURL,
				Author:   author,
				Date:     now.Format(time.DateOnly),
				Year:     now.Format("2006"),
			})
			for _, p := range created {
				fmt.Fprintf(out, "  created %s\n", p)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Done! Next steps:")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  cd %s\n", dir)
			fmt.Fprintln(out, "  folio build")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Replace dist/index.html with your app's built index.html; keep its markers.")
			return nil
		},
	}

	cmd.Flags().StringVar(&siteURL, "url", "http://localhost:3000", "Canonical site URL")
	cmd.Flags().StringVar(&author, "author", "", "Author name")
	return cmd
}
