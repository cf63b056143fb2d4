// Package workspace holds the editing session state: the language being
// served, the symbol index, the standard library catalog and the text of
// open documents.
//
// A Workspace is not safe for concurrent use. Front ends share one through a
// Dispatcher, which runs every event and query to completion, one at a time.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/roveo/flexls/catalog"
	"github.com/roveo/flexls/completion"
	"github.com/roveo/flexls/index"
	"github.com/roveo/flexls/languages"
	"github.com/roveo/flexls/logging"
	"github.com/roveo/flexls/navigation"
)

// scanCacheSize bounds the number of documents whose latest scan is kept.
const scanCacheSize = 256

// Options configure a Workspace.
type Options struct {
	Language languages.Language // documents of any other language are ignored
	Catalog  []catalog.Entry
	Locale   string
	Logger   *slog.Logger
}

// Workspace is the state shared by all requests of one server.
type Workspace struct {
	lang    languages.Language
	index   *index.Index
	catalog []catalog.Entry
	opts    completion.Options
	docs    map[string]string // open document text by URI
	scans   *lru.Cache[string, scanned]
	log     *slog.Logger
}

// scanned is the result of scanning one version of a document.
type scanned struct {
	text    string
	symbols []languages.Symbol
}

// New creates an empty workspace.
func New(opts Options) *Workspace {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	entries := opts.Catalog
	if entries == nil {
		entries = []catalog.Entry{}
	}
	scans, _ := lru.New[string, scanned](scanCacheSize) // fails only for size <= 0
	return &Workspace{
		lang:    opts.Language,
		index:   index.New(),
		catalog: entries,
		opts:    completion.Options{Locale: opts.Locale},
		docs:    make(map[string]string),
		scans:   scans,
		log:     log,
	}
}

// Language returns the language served.
func (w *Workspace) Language() languages.Language { return w.lang }

// Index returns the symbol index.
func (w *Workspace) Index() *index.Index { return w.index }

// Catalog returns the standard library entries offered by completion.
func (w *Workspace) Catalog() []catalog.Entry { return w.catalog }

// Open starts tracking a document. Documents tagged with another language
// are ignored and Open reports false.
func (w *Workspace) Open(uri, languageID, text string) bool {
	if languageID != w.lang.Name() {
		w.log.Debug("ignoring document", "uri", uri, "language", languageID)
		return false
	}
	w.docs[uri] = text
	w.record(uri, text)
	return true
}

// Change replaces the text of an open document and records its
// declarations again. Earlier entries for the document stay in the index.
// Change reports false for documents that were never opened.
func (w *Workspace) Change(uri, text string) bool {
	if _, ok := w.docs[uri]; !ok {
		return false
	}
	w.docs[uri] = text
	w.record(uri, text)
	return true
}

// Close stops tracking a document's text. Its index entries remain.
func (w *Workspace) Close(uri string) {
	delete(w.docs, uri)
}

// scan returns the declarations of text, reusing the previous result when
// the document has not changed since.
func (w *Workspace) scan(uri, text string) []languages.Symbol {
	if s, ok := w.scans.Get(uri); ok && s.text == text {
		return s.symbols
	}
	symbols := w.lang.Scan(text, uri)
	w.scans.Add(uri, scanned{text: text, symbols: symbols})
	return symbols
}

func (w *Workspace) record(uri, text string) {
	symbols := w.scan(uri, text)
	w.index.Record(uri, symbols)
	st := w.index.Stats()
	w.log.Debug("recorded symbols",
		"uri", uri,
		"symbols", len(symbols),
		"index_entries", st.Entries,
		"index_records", st.Records)
}

// Text returns the current text of an open document.
func (w *Workspace) Text(uri string) (string, bool) {
	text, ok := w.docs[uri]
	return text, ok
}

// Documents returns the URIs of open documents, sorted.
func (w *Workspace) Documents() []string {
	uris := make([]string, 0, len(w.docs))
	for uri := range w.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Symbols returns the declarations of an open document's current text.
func (w *Workspace) Symbols(uri string) []languages.Symbol {
	text, ok := w.docs[uri]
	if !ok {
		return []languages.Symbol{}
	}
	return slices.Clone(w.scan(uri, text))
}

// Complete returns the completion candidates at pos in an open document.
func (w *Workspace) Complete(uri string, pos languages.Position) []completion.Candidate {
	text, ok := w.docs[uri]
	if !ok {
		return []completion.Candidate{}
	}
	return completion.Resolve(text, pos, w.scan(uri, text), w.catalog, w.opts)
}

// Definition returns every recorded declaration of the word at pos.
func (w *Workspace) Definition(uri string, pos languages.Position) []languages.Location {
	text, ok := w.docs[uri]
	if !ok {
		return []languages.Location{}
	}
	return navigation.Definition(w.index, text, pos)
}

// References returns the occurrences of the word at pos in the document.
func (w *Workspace) References(uri string, pos languages.Position) []languages.Location {
	text, ok := w.docs[uri]
	if !ok {
		return []languages.Location{}
	}
	return navigation.References(uri, text, pos)
}

// IndexFile reads a file from disk and opens it, or records it again if it
// is already open. It returns the document URI.
func (w *Workspace) IndexFile(path string) (string, error) {
	if lang := languages.GetLanguageForFile(path); lang == nil || lang.Name() != w.lang.Name() {
		return "", fmt.Errorf("unsupported file type: %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	uri, err := FileURI(path)
	if err != nil {
		return "", err
	}
	if !w.Change(uri, string(content)) {
		w.Open(uri, w.lang.Name(), string(content))
	}
	return uri, nil
}
