package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{1, 0, 3}, Span{1, 10, 12}, Span{1, 0, 12}},
		{"nested", Span{1, 0, 20}, Span{1, 5, 6}, Span{1, 0, 20}},
		{"other file ignored", Span{1, 5, 6}, Span{2, 0, 100}, Span{1, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSpanPredicates(t *testing.T) {
	var zero Span
	if !zero.IsSynthetic() || !zero.Empty() {
		t.Fatal("zero span must be synthetic and empty")
	}
	s := Span{File: 0, Start: 4, End: 9}
	if s.IsSynthetic() {
		t.Fatal("real span reported as synthetic")
	}
	if s.Len() != 5 {
		t.Fatalf("Len = %d", s.Len())
	}
	if !s.Contains(Span{File: 0, Start: 4, End: 9}) || s.Contains(Span{File: 0, Start: 3, End: 5}) {
		t.Fatal("Contains is wrong")
	}
	if s.String() != "0:4-9" {
		t.Fatalf("String = %q", s.String())
	}
}
