// Package index keeps every declaration site seen across documents.
//
// The index is append-only. Recording a document again does not evict what
// an earlier scan of it recorded, so repeated edits accumulate duplicate and
// stale entries under the same names. Lookups observe that accumulation;
// Stats makes its growth visible.
package index

import "github.com/roveo/flexls/languages"

// Index maps a symbol name to every location it was recorded at, in
// recording order. It is not safe for concurrent use.
type Index struct {
	byName  map[string][]languages.Location
	entries int
	records map[string]int // records per document
}

// Stats summarizes the contents of an Index.
type Stats struct {
	Names     int // distinct names
	Entries   int // recorded locations, duplicates included
	Documents int // documents recorded at least once
	Records   int // Record calls
}

// New returns an empty index.
func New() *Index {
	return &Index{
		byName:  make(map[string][]languages.Location),
		records: make(map[string]int),
	}
}

// Record appends the location of each symbol under its name.
func (idx *Index) Record(uri string, symbols []languages.Symbol) {
	idx.records[uri]++
	for _, s := range symbols {
		idx.byName[s.Name] = append(idx.byName[s.Name], s.Location)
		idx.entries++
	}
}

// Lookup returns all locations recorded for name, in recording order.
// Unknown names yield an empty slice.
func (idx *Index) Lookup(name string) []languages.Location {
	locs := idx.byName[name]
	out := make([]languages.Location, len(locs))
	copy(out, locs)
	return out
}

// Stats reports the size of the index.
func (idx *Index) Stats() Stats {
	st := Stats{
		Names:     len(idx.byName),
		Entries:   idx.entries,
		Documents: len(idx.records),
	}
	for _, n := range idx.records {
		st.Records += n
	}
	return st
}
