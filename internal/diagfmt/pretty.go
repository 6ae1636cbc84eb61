package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := lookupFile(fs, d.Primary)
	if f != nil {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: ", displayPath(fs, f, opts.PathMode), start.Line, start.Col)
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	if f != nil {
		writeSnippet(w, fs, f, d.Primary, opts.Context, pal)
	}

	if opts.ShowNotes || d.Code == diag.ObsTimings {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), note.Msg)
			if nf := lookupFile(fs, note.Span); nf != nil && opts.ShowNotes {
				writeSnippet(w, fs, nf, note.Span, 0, pal)
			}
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("fix:"), fix.Title)
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    - %s\n", line)
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    + %s\n", line)
				}
			}
		}
	}
}

// writeSnippet prints the primary line with up to ctx lines before it and
// underlines the span on the primary line.
func writeSnippet(w io.Writer, fs *source.FileSet, f *source.File, span source.Span, ctx int8, pal palette) {
	start, end := fs.Resolve(span)
	first := start.Line
	if ctx > 0 && start.Line > uint32(ctx) {
		first = start.Line - uint32(ctx)
	} else if ctx > 0 {
		first = 1
	}
	width := len(strconv.FormatUint(uint64(start.Line), 10))
	pad := strings.Repeat(" ", width)

	for n := first; n <= start.Line; n++ {
		num := fmt.Sprintf("%*d", width, n)
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), f.GetLine(n))
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	lead := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", "    "))
	length := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := min(int(end.Col)-1, len(line))
		length = max(1, runewidth.StringWidth(line[col:stop]))
	}
	marker := "^" + strings.Repeat("~", length-1)
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"), strings.Repeat(" ", lead), pal.caret.Sprint(marker))
}

// lookupFile returns the file a span points into; synthesized spans have none.
func lookupFile(fs *source.FileSet, span source.Span) *source.File {
	if fs == nil || span.IsSynthetic() || int(span.File) >= fs.Len() {
		return nil
	}
	return fs.Get(span.File)
}

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}
