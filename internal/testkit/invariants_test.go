package testkit

import (
	"strings"
	"testing"

	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

func fileWith(t *testing.T, src string, spans ...[2]uint32) (*ast.Builder, ast.FileID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tsx", []byte(src))
	b := ast.NewBuilder(ast.Hints{}, nil)
	fid := b.NewFile(source.Span{File: fileID, End: uint32(len(src))})
	file := b.Files.Get(fid)
	for _, sp := range spans {
		stmt := b.Stmts.NewRaw(source.Span{File: fileID, Start: sp[0], End: sp[1]}, "", nil)
		file = b.Files.Get(fid)
		file.Body = append(file.Body, stmt)
	}
	return b, fid, fs.Get(fileID)
}

func TestCheckSpanInvariants(t *testing.T) {
	b, fid, sf := fileWith(t, "a;\nb;\n", [2]uint32{0, 2}, [2]uint32{3, 5})
	if err := CheckSpanInvariants(b, fid, sf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckSpanInvariantsSkipsSynthetic(t *testing.T) {
	b, fid, sf := fileWith(t, "a;\n", [2]uint32{0, 2})
	file := b.Files.Get(fid)
	file.Body = append([]ast.StmtID{b.Stmts.NewRaw(source.Span{}, "let _slot;", nil)}, file.Body...)
	if err := CheckSpanInvariants(b, fid, sf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckSpanInvariantsViolations(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		spans [][2]uint32
		want  string
	}{
		{"outside", "a;\n", [][2]uint32{{0, 9}}, "outside file span"},
		{"overlap", "abcdef\n", [][2]uint32{{0, 4}, {2, 6}}, "overlaps"},
		{"inverted", "abc\n", [][2]uint32{{3, 1}}, "inverted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, fid, sf := fileWith(t, tt.src, tt.spans...)
			err := CheckSpanInvariants(b, fid, sf)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
}
