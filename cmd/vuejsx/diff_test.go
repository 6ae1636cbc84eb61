package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

func TestLineDiff(t *testing.T) {
	got := lineDiff("a\nb\nc\n", "a\nB\nc\n")
	want := []diffLine{
		{diffmatchpatch.DiffEqual, "a"},
		{diffmatchpatch.DiffDelete, "b"},
		{diffmatchpatch.DiffInsert, "B"},
		{diffmatchpatch.DiffEqual, "c"},
	}
	require.Equal(t, want, got)
}

func TestWriteDiffCollapsesContext(t *testing.T) {
	var before, after strings.Builder
	for i := range 20 {
		line := strings.Repeat("x", i+1) + "\n"
		before.WriteString(line)
		if i == 10 {
			line = "changed\n"
		}
		after.WriteString(line)
	}

	var buf bytes.Buffer
	writeDiff(&buf, "App.tsx", []byte(before.String()), []byte(after.String()), false)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "--- App.tsx\n+++ App.tsx\n"))
	require.Contains(t, out, "@@ line 8 @@")
	require.Contains(t, out, "-"+strings.Repeat("x", 11))
	require.Contains(t, out, "+changed")
	require.NotContains(t, out, " x\n", "lines far from the change must be collapsed")
}

func TestWriteDiffUnchanged(t *testing.T) {
	var buf bytes.Buffer
	writeDiff(&buf, "App.tsx", []byte("same\n"), []byte("same\n"), false)
	require.Empty(t, buf.String())
}
