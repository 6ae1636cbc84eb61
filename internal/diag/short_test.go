package diag

import (
	"testing"

	"vuejsx/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/src/App.tsx", []byte("a\nb\n"), 0)
	vendored := fs.Add("/workspace/node_modules/x/index.jsx", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     DirectiveNeedsExpression,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: vendored, Start: 0, End: 0}, Msg: "skip me"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     TypeUnresolvable,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "error VJX2001 src/App.tsx:1:1 first line second\n" +
		"note VJX2001 src/App.tsx:2:1 note line\n" +
		"warning VJX3003 src/App.tsx:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortKeepsVendored(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/w")
	id := fs.Add("/w/node_modules/lib/a.jsx", []byte("x"), 0)
	diags := []Diagnostic{NewError(ParseSyntaxError, source.Span{File: id, Start: 0, End: 1}, "bad")}

	want := "error VJX1001 node_modules/lib/a.jsx:1:1 bad"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got := FormatGoldenDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("golden output must skip node_modules, got %q", got)
	}
}

func TestFormatShortSyntheticSpan(t *testing.T) {
	fs := source.NewFileSet()
	fs.Add("/w/App.tsx", []byte("x"), 0)
	diags := []Diagnostic{NewError(IOWriteFailed, source.Span{}, "write out/App.ts: denied")}

	want := "error VJX4002 write out/App.ts: denied"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
