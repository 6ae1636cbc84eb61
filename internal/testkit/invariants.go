// Package testkit holds structural checks shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a file:
// 1) file.Span starts at 0, ends at the content length and points at sf
// 2) every statement with a real span lies inside file.Span
// 3) real statement spans are ordered and do not overlap
// 4) comments are sorted and inside file.Span
//
// Synthesized statements (zero span) are skipped, so the check also holds
// after the transform injected its prelude.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start != 0 || f.Span.End != lenContent {
		return fmt.Errorf("file span %v does not cover content of %d bytes", f.Span, lenContent)
	}

	// 2) и 3)
	var prev source.Span
	havePrev := false
	for _, id := range f.Body {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := stmt.Span
		if sp.IsSynthetic() {
			continue
		}
		if sp.End < sp.Start {
			return fmt.Errorf("inverted statement span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("statement span %v is outside file span %v", sp, f.Span)
		}
		if havePrev && sp.Start < prev.End {
			return fmt.Errorf("statement span %v overlaps previous %v", sp, prev)
		}
		prev, havePrev = sp, true
	}

	// 4) comments
	for i, c := range f.Comments {
		if !f.Span.Contains(c.Span) {
			return fmt.Errorf("comment span %v is outside file span %v", c.Span, f.Span)
		}
		if i > 0 && c.Span.Start < f.Comments[i-1].Span.Start {
			return fmt.Errorf("comments are not sorted at %d", i)
		}
	}
	return nil
}
