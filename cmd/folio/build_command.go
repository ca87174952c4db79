package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Prerender every route and write sitemap.xml and feed.xml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := ctx.site(cmd)
			if err != nil {
				return err
			}
			report, err := site.Build(cmd.Context())
			if report.Routes > 0 {
				printBuildReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
}

func printBuildReport(w io.Writer, r folio.BuildReport) {
	rows := [][]string{
		{"Build", r.BuildID},
		{"Routes", strconv.Itoa(r.Routes)},
		{"Written", strconv.Itoa(r.Prerender.Success)},
		{"Degraded", strconv.Itoa(r.Prerender.Degraded)},
		{"Failed", strconv.Itoa(r.Prerender.Failed)},
		{"Posts", fmt.Sprintf("%d of %d published", r.PublishedPosts, r.Posts)},
		{"Portfolio items", strconv.Itoa(r.Items)},
		{"Size", humanize.Bytes(uint64(r.BytesWritten()))},
		{"Duration", r.Duration.Round(time.Millisecond).String()},
	}
	fmt.Fprintln(w, renderTable(w, []string{"Metric", "Value"}, rows))

	var problems [][]string
	for _, rr := range r.Prerender.Routes {
		if rr.Outcome == folio.OutcomeSuccess {
			continue
		}
		msg := ""
		if rr.Err != nil {
			msg = rr.Err.Error()
		}
		problems = append(problems, []string{rr.Path, rr.Outcome.String(), msg})
	}
	if len(problems) > 0 {
		fmt.Fprintln(w, renderTable(w, []string{"Route", "Outcome", "Error"}, problems))
	}
}
