package navigation

import (
	"testing"

	"github.com/roveo/flexls/index"
	"github.com/roveo/flexls/languages"
	"github.com/roveo/flexls/languages/flexia"
)

func pos(line, char int) languages.Position {
	return languages.Position{Line: line, Character: char}
}

func TestWordAt(t *testing.T) {
	tests := []struct {
		text string
		at   languages.Position
		want string
	}{
		{"foo bar", pos(0, 0), "foo"},
		{"foo bar", pos(0, 3), "foo"},
		{"foo bar", pos(0, 4), "bar"},
		{"obj.method()", pos(0, 6), "method"},
		{"obj.method()", pos(0, 2), "obj"},
		{"a  b", pos(0, 2), ""},
		{"x\nvalue_2", pos(1, 7), "value_2"},
		{"", pos(0, 0), ""},
		{"x", pos(3, 0), ""},
	}

	for _, tt := range tests {
		if got := WordAt(tt.text, tt.at); got != tt.want {
			t.Errorf("WordAt(%q, %+v) = %q, want %q", tt.text, tt.at, got, tt.want)
		}
	}
}

func TestReferences(t *testing.T) {
	refs := References("file:///a.fx", "foo bar foo", pos(0, 1))
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d: %v", len(refs), refs)
	}
	if refs[0].Range.Start != pos(0, 0) || refs[1].Range.Start != pos(0, 8) {
		t.Errorf("unexpected positions %v", refs)
	}
	if refs[1].Range.End != pos(0, 11) {
		t.Errorf("reference should span the word, got %+v", refs[1].Range)
	}
	if refs[0].URI != "file:///a.fx" {
		t.Errorf("unexpected uri %q", refs[0].URI)
	}
}

func TestReferencesMultiline(t *testing.T) {
	text := "Function area\nx = area(1)\n\"area\" // area"
	refs := References("u", text, pos(1, 5))
	want := []languages.Position{pos(0, 9), pos(1, 4), pos(2, 1), pos(2, 10)}
	if len(refs) != len(want) {
		t.Fatalf("expected %d references, got %v", len(want), refs)
	}
	for i, w := range want {
		if refs[i].Range.Start != w {
			t.Errorf("ref %d at %+v, want %+v", i, refs[i].Range.Start, w)
		}
	}
}

func TestReferencesSubstringAndOverlap(t *testing.T) {
	// Literal search: "id" inside "idle" counts, and hits do not overlap.
	refs := References("u", "id idle", pos(0, 0))
	if len(refs) != 2 {
		t.Errorf("expected 2 references, got %v", refs)
	}

	refs = Occurrences("u", "aaaa", "aa")
	if len(refs) != 2 || refs[1].Range.Start != pos(0, 2) {
		t.Errorf("expected non-overlapping hits at 0 and 2, got %v", refs)
	}
}

func TestReferencesEmpty(t *testing.T) {
	refs := References("u", "a  b", pos(0, 2))
	if refs == nil || len(refs) != 0 {
		t.Errorf("expected empty result for no word, got %v", refs)
	}
	if refs := Occurrences("u", "abc", ""); len(refs) != 0 {
		t.Errorf("expected empty result for empty word, got %v", refs)
	}
}

func TestDefinition(t *testing.T) {
	idx := index.New()
	a := "Function area\nint area"
	b := "Class Shape\nx = area(1)"
	idx.Record("file:///a.fx", flexia.Scan(a, "file:///a.fx"))
	idx.Record("file:///b.fx", flexia.Scan(b, "file:///b.fx"))

	locs := Definition(idx, b, pos(1, 6))
	if len(locs) != 2 {
		t.Fatalf("expected 2 definitions, got %v", locs)
	}
	if locs[0].URI != "file:///a.fx" || locs[0].Range.Start != pos(0, 0) {
		t.Errorf("first definition = %v", locs[0])
	}
	if locs[1].Range.Start != pos(1, 0) {
		t.Errorf("second definition = %v", locs[1])
	}

	if locs := Definition(idx, b, pos(1, 1)); len(locs) != 0 {
		t.Errorf("expected no definition for %q, got %v", "x", locs)
	}
	if locs := Definition(idx, "   ", pos(0, 1)); locs == nil || len(locs) != 0 {
		t.Errorf("expected empty result without a word, got %v", locs)
	}
}
