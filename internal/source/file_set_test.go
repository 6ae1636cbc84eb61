package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("App.tsx", []byte("const a = <div/>"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("App.tsx", []byte("const b = <span/>"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("App.tsx")
	if !exists || latestID != id2 {
		t.Fatalf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "const a = <div/>" {
		t.Errorf("unexpected first content %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.jsx", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestAddSourceKeepsCRLF(t *testing.T) {
	fs := NewFileSet()
	src := []byte("\xEF\xBB\xBFconst s = `a\r\nb`\r\n")
	id := fs.AddVirtual("crlf.tsx", src)
	file := fs.Get(id)

	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag")
	}
	if file.Flags&FileHasCRLF == 0 {
		t.Error("Expected FileHasCRLF flag")
	}
	if want := "const s = `a\r\nb`\r\n"; string(file.Content) != want {
		t.Fatalf("content must be preserved: want %q, got %q", want, file.Content)
	}
	if got := file.GetLine(1); got != "const s = `a" {
		t.Errorf("GetLine(1) = %q", got)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.jsx", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам перевод строки
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: want %+v, got %+v", tt.off, tt.want, start)
		}
	}
}

func TestTextAndSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.jsx", []byte("<A>{foo}</A>"))

	if got := fs.Text(Span{File: id, Start: 4, End: 7}); got != "foo" {
		t.Errorf("Text = %q", got)
	}
	if got := fs.Get(id).Slice(10, 100); got != "A>" {
		t.Errorf("clamped Slice = %q", got)
	}
	if got := fs.Get(id).Slice(5, 2); got != "" {
		t.Errorf("inverted Slice = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Comp.tsx")
	if err := os.WriteFile(path, []byte("export default () => <div/>\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f, ok := fs.GetByPath(path)
	if !ok || f.ID != id {
		t.Fatalf("GetByPath did not find loaded file")
	}
	if got := f.FormatPath("relative", dir); got != "Comp.tsx" {
		t.Errorf("relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "Comp.tsx" {
		t.Errorf("basename = %q", got)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.tsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
