package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"appresolve/internal/resolve"
)

// printRunSummary writes the run outcome counters. Interactive terminals
// get a rendered table; pipes and files get plain key/value lines so the
// output stays grep-friendly.
func printRunSummary(out io.Writer, dir, runID string, stats resolve.RunStats) {
	rows := summaryRows(stats)

	if isTerminal(out) {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Outcome", "Count"})
		for _, row := range rows {
			tw.AppendRow(table.Row{row[0], row[1]})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		})
		fmt.Fprintln(out, tw.Render())
	} else {
		for _, row := range rows {
			fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
		}
	}

	fmt.Fprintf(out, "Run %s complete; reports written to %s\n", runID, dir)
}

func summaryRows(stats resolve.RunStats) [][2]string {
	return [][2]string{
		{"Queries", strconv.Itoa(stats.Queries)},
		{"Confirmed", strconv.Itoa(stats.Confirmed)},
		{"Needs review", strconv.Itoa(stats.NeedsReview)},
		{"No match", strconv.Itoa(stats.NoMatch)},
		{"Duplicates dropped", strconv.Itoa(stats.DuplicatesDropped)},
		{"Search failures", strconv.Itoa(stats.SearchFailures)},
		{"Lookup failures", strconv.Itoa(stats.LookupFailures)},
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
