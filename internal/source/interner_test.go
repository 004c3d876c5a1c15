package source

import "testing"

func TestInternIdempotent(t *testing.T) {
	in := NewInterner()
	a := in.Intern("frobnicate")
	b := in.Intern("frobnicate")
	if a != b {
		t.Fatalf("expected same symbol, got %d vs %d", a, b)
	}
	if in.Get(a) != "frobnicate" {
		t.Fatalf("round-trip failed: %q", in.Get(a))
	}
}

func TestKeywordsPreinterned(t *testing.T) {
	in := NewInterner()
	sym := in.Keyword("fn")
	if !in.IsKeyword(sym) {
		t.Fatalf("expected %q to be a keyword symbol", "fn")
	}
	other := in.Intern("totally_not_a_keyword")
	if in.IsKeyword(other) {
		t.Fatalf("ordinary identifier misclassified as keyword")
	}
}

func TestInternDistinctStrings(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	if a == b {
		t.Fatalf("distinct strings got same symbol")
	}
}
