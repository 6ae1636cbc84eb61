package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vuejsx/internal/driver"
	"vuejsx/internal/observ"
	"vuejsx/internal/source"
)

type statsTotals struct {
	files, changed, cached     int
	elements, fragments, typed int
	inBytes, outBytes          uint64
	totalMS                    float64
}

// printStats renders a per-file summary table of the run.
func printStats(w io.Writer, results []*driver.FileResult, fallback *source.FileSet) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"File", "Elements", "Fragments", "Typed", "Imports", "In", "Out", "Time", "Cache"})

	var tot statsTotals
	reports := make([]*observ.Report, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		fs := r.FileSet
		if fs == nil {
			fs = fallback
		}
		var in uint64
		if r.FileSet != nil {
			in = uint64(len(r.FileSet.Get(r.FileID).Content))
		}
		out := uint64(len(r.Output))
		ms := 0.0
		if r.Timing != nil {
			ms = r.Timing.TotalMS
			reports = append(reports, r.Timing)
		}
		cache := ""
		if r.Cached {
			cache = "hit"
			tot.cached++
		}
		tot.files++
		if r.Changed() {
			tot.changed++
		}
		tot.elements += r.Result.Elements
		tot.fragments += r.Result.Fragments
		tot.typed += r.Result.TypedComponents
		tot.inBytes += in
		tot.outBytes += out
		tot.totalMS += ms

		tbl.AppendRow(table.Row{
			displayPath(fs, r),
			r.Result.Elements,
			r.Result.Fragments,
			r.Result.TypedComponents,
			len(r.Result.Imports),
			humanize.Bytes(in),
			humanize.Bytes(out),
			fmt.Sprintf("%.2f ms", ms),
			cache,
		})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d files, %d changed", tot.files, tot.changed),
		tot.elements,
		tot.fragments,
		tot.typed,
		"",
		humanize.Bytes(tot.inBytes),
		humanize.Bytes(tot.outBytes),
		fmt.Sprintf("%.2f ms", tot.totalMS),
		fmt.Sprintf("%d hits", tot.cached),
	})
	right := text.AlignRight
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: right},
		{Number: 3, Align: right},
		{Number: 4, Align: right},
		{Number: 5, Align: right},
		{Number: 6, Align: right},
		{Number: 7, Align: right},
		{Number: 8, Align: right},
	})
	tbl.Render()
	if run := observ.Merge(reports...); len(run.Phases) > 0 {
		fmt.Fprintf(w, "phases: %s\n", run.Line())
	}
}

// displayPath shows r.Path relative to the FileSet base when possible.
func displayPath(fs *source.FileSet, r *driver.FileResult) string {
	if fs == nil || r.FileSet == nil {
		return r.Path
	}
	return r.FileSet.Get(r.FileID).FormatPath("relative", fs.BaseDir())
}
