package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs, bag, _ := modelBag("/home/user/app/src/App.tsx")

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeRelative}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "VJX2002",
			Message:  "v-models must be an array literal",
			Location: LocationJSON{
				File:      "src/App.tsx",
				StartByte: 18,
				EndByte:   33,
				StartLine: 1,
				StartCol:  19,
				EndLine:   1,
				EndCol:    34,
			},
		}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs, bag, _ := modelBag("App.tsx")
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.EndCol != 0 {
		t.Fatalf("positions must be omitted: %+v", loc)
	}
	if loc.File != "App.tsx" || loc.StartByte != 18 {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("App.tsx", []byte(modelSrc))
	bag := diag.NewBag(10)
	for i := range 5 {
		bag.Add(diag.NewError(diag.ParseSyntaxError, source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)}, "syntax error"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("Max must cap the output, got %d", out.Count)
	}
	if bag.Len() != 5 {
		t.Fatalf("Max must not touch the bag")
	}
}

func TestJSONNotesAndFixes(t *testing.T) {
	fs, _, fileID := modelBag("App.tsx")
	start := uint32(strings.Index(modelSrc, "model}"))
	span := source.Span{File: fileID, Start: start, End: start + 5}

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.VModelsNotArray, span, "v-models must be an array literal").
		WithNote(span, "wrap the binding in an array").
		WithFix("wrap in array", diag.FixEdit{Span: span, NewText: "[[model]]"}))

	bare := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(bare.Diagnostics[0].Notes) != 0 || len(bare.Diagnostics[0].Fixes) != 0 {
		t.Fatalf("notes and fixes must be opt-in")
	}

	full := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true, IncludeFixes: true, IncludePreviews: true})
	d := full.Diagnostics[0]
	if len(d.Notes) != 1 || d.Notes[0].Message != "wrap the binding in an array" {
		t.Fatalf("unexpected notes %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("unexpected fixes %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if diff := cmp.Diff([]string{"const el = <input vModels={[[model]]} />;"}, edit.AfterLines); diff != "" {
		t.Fatalf("after preview (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"const el = <input vModels={model} />;"}, edit.BeforeLines); diff != "" {
		t.Fatalf("before preview (-want +got):\n%s", diff)
	}
}

func TestJSONSyntheticLocation(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.IOWriteFailed, source.Span{}, "write out/App.js: permission denied"))
	out := BuildDiagnosticsOutput(bag, source.NewFileSet(), JSONOpts{IncludePositions: true})
	if out.Diagnostics[0].Location != (LocationJSON{}) {
		t.Fatalf("synthetic span must carry no location, got %+v", out.Diagnostics[0].Location)
	}
}
