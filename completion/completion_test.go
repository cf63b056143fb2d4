package completion

import (
	"testing"

	"github.com/roveo/flexls/catalog"
	"github.com/roveo/flexls/languages"
	"github.com/roveo/flexls/languages/flexia"
)

func pos(line, char int) languages.Position {
	return languages.Position{Line: line, Character: char}
}

func TestInString(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`x = "abc`, true},
		{`x = "abc"`, false},
		{`x = 'a`, true},
		{`x = 'a'`, false},
		{`x = "it's`, true},
		{`x = "a\"b`, false}, // escapes are not understood
		{`plain text`, false},
		{``, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := InString(tt.line, pos(0, languages.UTF16Len(tt.line)))
			if got != tt.want {
				t.Errorf("InString(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestInStringOnlyCountsPrefix(t *testing.T) {
	text := `say "hi" now`
	if InString(text, pos(0, 3)) {
		t.Error("cursor before the first quote is not inside a string")
	}
	if !InString(text, pos(0, 6)) {
		t.Error("cursor between the quotes is inside a string")
	}
	if InString("x = \"\nfoo", pos(1, 3)) {
		t.Error("quotes on earlier lines do not count")
	}
}

func TestWordRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		at        languages.Position
		wantOK    bool
		wantStart int
		wantEnd   int
	}{
		{"inside word", "call foo.bar(x)", pos(0, 7), true, 5, 12},
		{"end of word", "call foo", pos(0, 8), true, 5, 8},
		{"start of word", "call foo", pos(0, 5), true, 5, 8},
		{"between spaces", "a  b", pos(0, 2), false, 0, 0},
		{"empty line", "", pos(0, 0), false, 0, 0},
		{"second line", "x\n  abc", pos(1, 3), true, 2, 5},
		{"line out of range", "x", pos(4, 0), false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := WordRange(tt.text, tt.at)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if r.Start.Character != tt.wantStart || r.End.Character != tt.wantEnd {
				t.Errorf("got [%d, %d), want [%d, %d)", r.Start.Character, r.End.Character, tt.wantStart, tt.wantEnd)
			}
			if r.Start.Line != tt.at.Line || r.End.Line != tt.at.Line {
				t.Errorf("range left the cursor line: %+v", r)
			}
		})
	}
}

func TestWordRangeTouchingTwoWords(t *testing.T) {
	// The first word whose span contains the cursor wins.
	r, ok := WordRange("ab(cd", pos(0, 2))
	if !ok {
		t.Fatal("expected a word")
	}
	if r.Start.Character != 0 || r.End.Character != 2 {
		t.Errorf("got %+v", r)
	}
}

func TestResolveLocalBeforeCatalog(t *testing.T) {
	text := "Function add\nint add\n"
	at := pos(2, 0)

	got := Resolve(text, at, flexia.Scan(text, "u"), nil, Options{})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].Label != "add" || got[0].Kind != KindFunction {
		t.Errorf("first candidate = %+v", got[0])
	}
	if got[1].Label != "add" || got[1].Kind != KindVariable {
		t.Errorf("second candidate = %+v", got[1])
	}
	if got[0].Replace != nil {
		t.Error("no word at cursor, expected insert rather than replace")
	}
	if got[0].Detail != "[local] Function" {
		t.Errorf("detail = %q", got[0].Detail)
	}
}

func TestResolveMergesCatalog(t *testing.T) {
	text := "var print\npri"
	entries := []catalog.Entry{
		{Name: "print", Parameters: []string{"value"}, Source: "io"},
		{Name: "max", Parameters: []string{"a", "b"}, Source: "math"},
	}

	got := Resolve(text, pos(1, 3), flexia.Scan(text, "u"), entries, Options{})
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}

	// No dedup: the local variable and the catalog function both appear.
	if got[0].Label != "print" || got[0].Kind != KindVariable {
		t.Errorf("local candidate = %+v", got[0])
	}
	if got[1].Label != "print" || got[1].Kind != KindFunction {
		t.Errorf("catalog candidate = %+v", got[1])
	}
	if got[1].Detail != "(value) • io" || got[1].Documentation != "**print**(value)" {
		t.Errorf("catalog rendering = %q / %q", got[1].Detail, got[1].Documentation)
	}
	if got[0].Documentation != "" {
		t.Errorf("local candidates carry no documentation, got %q", got[0].Documentation)
	}

	for _, c := range got {
		if c.Replace == nil {
			t.Fatalf("%s: expected replace range", c.Label)
		}
		want := languages.Range{Start: pos(1, 0), End: pos(1, 3)}
		if *c.Replace != want {
			t.Errorf("%s: replace = %+v, want %+v", c.Label, *c.Replace, want)
		}
	}
}

func TestResolveSuppressedInString(t *testing.T) {
	text := "Function foo\nx = \"abc"
	entries := []catalog.Entry{{Name: "print", Source: "io"}}

	got := Resolve(text, pos(1, 8), flexia.Scan(text, "u"), entries, Options{})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}

	text = "Function foo\nx = \"abc\""
	got = Resolve(text, pos(1, 9), flexia.Scan(text, "u"), entries, Options{})
	if len(got) != 2 {
		t.Errorf("closed string should not suppress, got %d candidates", len(got))
	}
}

func TestResolveLocale(t *testing.T) {
	text := "Class Point"
	got := Resolve(text, pos(0, 0), flexia.Scan(text, "u"), nil, Options{Locale: "zh-CN"})
	if len(got) != 1 || got[0].Detail != "[本地] Class" {
		t.Errorf("got %+v", got)
	}
}

func TestLocalTag(t *testing.T) {
	tests := map[string]string{
		"":      "[local]",
		"en":    "[local]",
		"en_US": "[local]",
		"zh":    "[本地]",
		"ZH-tw": "[本地]",
		"fr":    "[local]",
	}
	for locale, want := range tests {
		if got := LocalTag(locale); got != want {
			t.Errorf("LocalTag(%q) = %q, want %q", locale, got, want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := map[languages.Kind]Kind{
		languages.KindFunction: KindFunction,
		languages.KindClass:    KindClass,
		languages.KindVariable: KindVariable,
		languages.KindUnknown:  KindText,
	}
	for in, want := range tests {
		if got := KindOf(in); got != want {
			t.Errorf("KindOf(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestTriggerCharacters(t *testing.T) {
	if len(TriggerCharacters) != 5+26+26 {
		t.Errorf("expected 57 trigger characters, got %d", len(TriggerCharacters))
	}
	seen := make(map[string]bool)
	for _, c := range TriggerCharacters {
		seen[c] = true
	}
	for _, c := range []string{".", "(", "<", "'", `"`, "a", "z", "A", "Z"} {
		if !seen[c] {
			t.Errorf("missing trigger character %q", c)
		}
	}
}
