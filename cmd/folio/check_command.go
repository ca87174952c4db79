package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate content, routes and the template without writing output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := ctx.site(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var problems []error
			content, err := folio.LoadContent(site.Config, site.Logger())
			problems = append(problems, flattenErrors(err)...)

			if _, err := folio.CollectRoutes(content, site.Now(), site.Config.TimezoneOffset); err != nil {
				problems = append(problems, flattenErrors(err)...)
			}

			tpl, err := folio.LoadTemplate(site.Config.TemplatePath)
			if err != nil {
				problems = append(problems, err)
			} else {
				for _, issue := range tpl.Issues() {
					problems = append(problems, fmt.Errorf("template %s", issue))
				}
			}

			fmt.Fprintf(out, "%d posts, %d portfolio items\n", len(content.Posts), len(content.Items))
			if len(problems) == 0 {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(out, "  - %v\n", p)
			}
			return fmt.Errorf("check found %d problem(s)", len(problems))
		},
	}
}

// flattenErrors expands errors.Join trees into their leaves.
func flattenErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flattenErrors(e)...)
		}
		return out
	}
	return []error{err}
}
