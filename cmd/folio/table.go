package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// errorColumnWidth bounds the Error column; longer messages wrap.
const errorColumnWidth = 60

// columnDefaults holds the per-column layout of the tables folio prints,
// keyed by header. Columns not listed are left aligned and unbounded.
var columnDefaults = map[string]table.ColumnConfig{
	"Value":   {Align: text.AlignRight},
	"Outcome": {Align: text.AlignCenter},
	"Error":   {WidthMax: errorColumnWidth, WidthMaxEnforcer: text.WrapSoft},
}

// renderTable renders rows under headers, with rounded borders on a terminal
// and plain ASCII otherwise. Short rows are padded.
func renderTable(w io.Writer, headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, len(headers))
	configs := make([]table.ColumnConfig, 0, len(headers))
	for i, h := range headers {
		header[i] = h
		cfg := columnDefaults[h]
		cfg.Number = i + 1
		cfg.AlignHeader = text.AlignLeft
		configs = append(configs, cfg)
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
