package index

import (
	"testing"

	"github.com/roveo/flexls/languages"
)

func sym(name string, kind languages.Kind, uri string, line, col int) languages.Symbol {
	pos := languages.Position{Line: line, Character: col}
	return languages.Symbol{
		Name:     name,
		Kind:     kind,
		Location: languages.Location{URI: uri, Range: languages.Range{Start: pos, End: pos}},
	}
}

func TestLookupUnknown(t *testing.T) {
	idx := New()
	locs := idx.Lookup("missing")
	if locs == nil {
		t.Fatal("Lookup returned nil, want empty slice")
	}
	if len(locs) != 0 {
		t.Errorf("expected no locations, got %v", locs)
	}
}

func TestRecordAccumulates(t *testing.T) {
	idx := New()
	s := sym("foo", languages.KindFunction, "file:///a.fx", 0, 0)

	idx.Record("file:///a.fx", []languages.Symbol{s})
	idx.Record("file:///a.fx", []languages.Symbol{s})

	locs := idx.Lookup("foo")
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations after recording twice, got %d", len(locs))
	}
	if locs[0] != s.Location || locs[1] != s.Location {
		t.Errorf("unexpected locations %v", locs)
	}

	st := idx.Stats()
	if st != (Stats{Names: 1, Entries: 2, Documents: 1, Records: 2}) {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestLookupOrderAcrossDocuments(t *testing.T) {
	idx := New()
	idx.Record("file:///b.fx", []languages.Symbol{
		sym("x", languages.KindVariable, "file:///b.fx", 3, 0),
		sym("y", languages.KindVariable, "file:///b.fx", 4, 0),
	})
	idx.Record("file:///a.fx", []languages.Symbol{
		sym("x", languages.KindClass, "file:///a.fx", 1, 2),
	})

	locs := idx.Lookup("x")
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	if locs[0].URI != "file:///b.fx" || locs[1].URI != "file:///a.fx" {
		t.Errorf("expected recording order, got %v", locs)
	}
	if idx.Lookup("X") == nil || len(idx.Lookup("X")) != 0 {
		t.Error("lookup must be an exact, case-sensitive match")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	idx := New()
	idx.Record("u", []languages.Symbol{sym("foo", languages.KindFunction, "u", 0, 0)})

	locs := idx.Lookup("foo")
	locs[0].URI = "changed"

	if got := idx.Lookup("foo")[0].URI; got != "u" {
		t.Errorf("caller mutation leaked into index: %q", got)
	}
}

func TestRecordEmptyScan(t *testing.T) {
	idx := New()
	idx.Record("u", []languages.Symbol{})

	st := idx.Stats()
	if st.Entries != 0 || st.Documents != 1 || st.Records != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
}
