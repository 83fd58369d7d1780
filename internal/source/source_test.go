package source

import (
	"testing"
)

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("writeln")
	b := in.Intern("writeln")
	if a != b {
		t.Fatalf("expected identical IDs, got %d and %d", a, b)
	}
	if got := in.MustLookup(a); got != "writeln" {
		t.Fatalf("expected writeln, got %q", got)
	}
}

func TestInternerEmptyStringIsSentinel(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("expected NoStringID for empty string, got %d", id)
	}
	if in.Len() != 1 {
		t.Fatalf("expected only the sentinel entry, got %d", in.Len())
	}
}

func TestInternerLookupUnknown(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatalf("expected lookup miss for unknown ID")
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 1, Start: 10, End: 100}
	inner := Span{File: 1, Start: 10, End: 40}
	if !outer.Contains(inner) {
		t.Fatalf("expected %v to contain %v", outer, inner)
	}
	if outer.Contains(Span{File: 2, Start: 10, End: 40}) {
		t.Fatalf("containment must not cross files")
	}
	if outer.Contains(Span{File: 1, Start: 5, End: 40}) {
		t.Fatalf("span starting before outer must not be contained")
	}
}

func TestSpanCover(t *testing.T) {
	s := Span{File: 1, Start: 20, End: 30}
	got := s.Cover(Span{File: 1, Start: 5, End: 25})
	if got.Start != 5 || got.End != 30 {
		t.Fatalf("unexpected cover result: %v", got)
	}
}

func TestFileSetAddAndLookup(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("lib/io.d")
	if !id.IsValid() {
		t.Fatalf("expected valid file ID")
	}
	if again := fs.Add("lib/io.d"); again != id {
		t.Fatalf("expected same ID for same path, got %d and %d", id, again)
	}
	found, ok := fs.Lookup("lib/io.d")
	if !ok || found != id {
		t.Fatalf("lookup failed: %d %v", found, ok)
	}
	if fs.Len() != 1 {
		t.Fatalf("expected one file, got %d", fs.Len())
	}
}

func TestFileStem(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("src/std/stdio.d")
	if got := fs.Get(id).Stem(); got != "stdio" {
		t.Fatalf("expected stem stdio, got %q", got)
	}
}
