package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// lineDiff computes a line-level diff of before and after.
func lineDiff(before, after string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			out = append(out, diffLine{op: d.Type, text: line})
		}
	}
	return out
}

// writeDiff prints a unified-style diff of the transformation; unchanged
// regions longer than twice the context collapse into a "@@" separator.
func writeDiff(w io.Writer, path string, before, after []byte, colored bool) {
	if string(before) == string(after) {
		return
	}
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	hunk := color.New(color.FgCyan)
	for _, c := range []*color.Color{del, ins, hunk} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	fmt.Fprintf(w, "--- %s\n+++ %s\n", path, path)
	lines := lineDiff(string(before), string(after))
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		for j := max(0, i-diffContext); j <= min(len(lines)-1, i+diffContext); j++ {
			keep[j] = true
		}
	}

	skipped := false
	for i, l := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped || i == 0 {
			fmt.Fprintln(w, hunk.Sprintf("@@ line %d @@", i+1))
			skipped = false
		}
		switch l.op {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintln(w, del.Sprint("-"+l.text))
		case diffmatchpatch.DiffInsert:
			fmt.Fprintln(w, ins.Sprint("+"+l.text))
		default:
			fmt.Fprintln(w, " "+l.text)
		}
	}
}
