package source

import "testing"

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID должен возвращать пустую строку, получили: %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("createVNode")
	if id1 == NoStringID {
		t.Error("Intern не должен возвращать NoStringID для непустой строки")
	}
	if id2 := interner.InternBytes([]byte("createVNode")); id1 != id2 {
		t.Errorf("одинаковые строки должны давать одинаковые ID: %d != %d", id1, id2)
	}
	if s := interner.MustLookup(id1); s != "createVNode" {
		t.Errorf("MustLookup вернул %q", s)
	}
	if id3 := interner.Intern("Fragment"); id3 == id1 {
		t.Error("разные строки должны иметь разные ID")
	}
	if interner.Len() != 3 {
		t.Errorf("Len должен быть 3, получили: %d", interner.Len())
	}
	if _, ok := interner.Lookup(StringID(42)); ok {
		t.Error("Lookup невалидного ID должен вернуть false")
	}
	if snap := interner.Snapshot(); len(snap) != 3 || snap[2] != "Fragment" {
		t.Errorf("Snapshot = %v", snap)
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewInterner().MustLookup(StringID(7))
}
