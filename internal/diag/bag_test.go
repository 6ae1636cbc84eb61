package diag

import (
	"testing"

	"vuejsx/internal/source"
)

func TestBagLimitAndSeverity(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, TypeUnresolvable, source.Span{}, "w")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatal("severity predicates are wrong")
	}
	b.Add(NewError(ParseSyntaxError, source.Span{}, "e"))
	if b.Add(NewError(ParseSyntaxError, source.Span{}, "dropped")) {
		t.Fatal("limit must reject third diagnostic")
	}
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("unexpected bag state: len=%d", b.Len())
	}
}

func TestBagSortDedupMerge(t *testing.T) {
	a := NewBag(10)
	a.Add(NewError(TypeUnresolvable, source.Span{File: 0, Start: 10, End: 12}, "late"))
	a.Add(New(SevWarning, DirectiveNeedsExpression, source.Span{File: 0, Start: 1, End: 2}, "early"))

	other := NewBag(1)
	other.Add(NewError(TypeUnresolvable, source.Span{File: 0, Start: 10, End: 12}, "late"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merge: want 3, got %d", a.Len())
	}

	a.Dedup()
	a.Sort()
	items := a.Items()
	if len(items) != 2 {
		t.Fatalf("dedup: want 2, got %d", len(items))
	}
	if items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("sort order wrong: %q, %q", items[0].Message, items[1].Message)
	}
}

func TestReportBuilderAndDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	sp := source.Span{File: 0, Start: 3, End: 9}
	for range 2 {
		ReportError(r, DirectiveNeedsExpression, sp, "You have to use JSX Expression inside your `v-model`.").
			WithNote(sp, "attribute here").
			Emit()
	}
	if bag.Len() != 1 {
		t.Fatalf("want 1 diagnostic after dedup, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code.ID() != "VJX2001" || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}

	b := ReportWarning(r, TypeUnresolvable, sp, "Unresolvable type.")
	b.Emit()
	b.Emit()
	if bag.Len() != 2 {
		t.Fatalf("builder must emit once, got %d", bag.Len())
	}
}

func TestCodeStrings(t *testing.T) {
	if got := TypeFromOtherModule.String(); got != "[VJX3002]: Type declared in another module" {
		t.Fatalf("String = %q", got)
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Fatalf("Title fallback = %q", got)
	}
	if ObsTimings.ID() != "OBS6001" {
		t.Fatalf("ID = %q", ObsTimings.ID())
	}
}
